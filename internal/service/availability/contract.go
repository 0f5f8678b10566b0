package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// WorkingHoursReader источник недельного шаблона сотрудника
type WorkingHoursReader interface {
	ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.WorkingHours, error)
}

// RuleReader источник правил доступности сотрудника
type RuleReader interface {
	ListByEmployee(ctx context.Context, employeeID int64, from, to *time.Time) ([]*domain.AvailabilityRule, error)
}

// AppointmentReader источник активных записей сотрудника
// Внутри транзакции реализация обязана блокировать прочитанные строки
type AppointmentReader interface {
	ListActiveByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.Appointment, error)
}
