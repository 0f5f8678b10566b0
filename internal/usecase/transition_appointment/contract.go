package transition_appointment

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetEmployeeID(ctx context.Context, id int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	LockEmployee(ctx context.Context, employeeID int64) error
	UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) (*domain.Appointment, error)
	InsertStatusChange(ctx context.Context, change *domain.AppointmentStatusChange) error
}

// OutboxRepository интерфейс хранилища исходящих событий
type OutboxRepository interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) (bool, error)
}

// CommissionDeliverer передаёт событие комиссии в реестр
type CommissionDeliverer interface {
	Deliver(ctx context.Context, event *domain.OutboxEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator сбрасывает закэшированные слоты сотрудника
type CacheInvalidator interface {
	Invalidate(ctx context.Context, employeeID int64) error
}

// NotificationPublisher отправляет уведомления о записи
type NotificationPublisher interface {
	Publish(ctx context.Context, appointment *domain.Appointment, eventKind string) bool
}

// Metrics метрики смены статусов
type Metrics interface {
	IncTransition(target, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
