package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	availabilityCache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

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

// Cache кэш рассчитанных слотов
type Cache interface {
	Get(ctx context.Context, key availabilityCache.Key) ([]time.Time, int64, bool, error)
	Set(ctx context.Context, key availabilityCache.Key, version int64, starts []time.Time) error
}

// Metrics метрики попаданий в кэш
type Metrics interface {
	IncAvailabilityCache(result string)
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
