package reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentReader чтение предстоящих записей; сканер никогда не меняет статус
type AppointmentReader interface {
	ListUpcoming(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

// NotificationPublisher отправляет уведомления о записи
type NotificationPublisher interface {
	Publish(ctx context.Context, appointment *domain.Appointment, eventKind string) bool
}

// MarkerStore отмечает записи, по которым напоминание уже отправлено
type MarkerStore interface {
	// TryMark атомарно ставит отметку; false, если она уже стоит
	TryMark(ctx context.Context, appointmentID int64) (bool, error)
	Release(ctx context.Context, appointmentID int64) error
}

// Metrics метрики напоминаний
type Metrics interface {
	IncReminderSent()
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
