package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория недельных шаблонов
type WorkingHoursRepository interface {
	ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.WorkingHours, error)
	ReplaceForEmployee(ctx context.Context, employeeID int64, hours []*domain.WorkingHours) error
}

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	ListByEmployee(ctx context.Context, employeeID int64, from, to *time.Time) ([]*domain.AvailabilityRule, error)
	Delete(ctx context.Context, employeeID, ruleID int64) error
}

// EmployeeLocker сериализует изменения календаря одного сотрудника внутри транзакции
type EmployeeLocker interface {
	LockEmployee(ctx context.Context, employeeID int64) error
}

// AvailabilityCache кэш доступных слотов
type AvailabilityCache interface {
	Invalidate(ctx context.Context, employeeID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
