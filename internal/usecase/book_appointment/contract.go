package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	LockEmployee(ctx context.Context, employeeID int64) error
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalog.Service, error)
}

// DirectoryClient интерфейс клиента справочника сотрудников
type DirectoryClient interface {
	GetEmployee(ctx context.Context, employeeID int64) (*directory.Employee, error)
}

// PolicyResolver возвращает политику бронирования салона (или значения по умолчанию)
type PolicyResolver interface {
	Resolve(ctx context.Context, salonID int64) (*domain.BookingPolicy, bool, error)
}

// WindowGenerator строит кандидатные окна по расписанию
type WindowGenerator interface {
	GenerateWindows(ctx context.Context, employeeID int64, dates availability.DateRange, granularityMinutes int) ([]domain.Interval, error)
	Location() *time.Location
}

// ConflictChecker вычитает занятые интервалы из окон
type ConflictChecker interface {
	FreeWindows(ctx context.Context, employeeID int64, candidates []domain.Interval, durationMinutes, bufferMinutes, granularityMinutes int) ([]time.Time, error)
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

// Metrics метрики бронирований
type Metrics interface {
	IncBooking(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
