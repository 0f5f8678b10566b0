package notifications

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
)

const (
	EventCreated  = "appointment.created"
	EventReminder = "appointment.reminder"

	defaultTimeout = 3 * time.Second
)

// Publisher отправляет события жизненного цикла записи
// Уведомления best-effort: ошибка логируется и никогда не возвращается вызывающему
type Publisher struct {
	dispatcher Dispatcher
	metrics    Metrics
	timeout    time.Duration
	logger     Logger
}

// NewPublisher создает publisher уведомлений
func NewPublisher(dispatcher Dispatcher, metrics Metrics, timeout time.Duration, logger Logger) *Publisher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Publisher{
		dispatcher: dispatcher,
		metrics:    metrics,
		timeout:    timeout,
		logger:     logger,
	}
}

// Publish отправляет уведомление о записи
// Вызывается после фиксации транзакции; отмена ctx вызывающего не прерывает отправку
func (p *Publisher) Publish(ctx context.Context, a *domain.Appointment, eventKind string) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err := p.dispatcher.Notify(ctx, notifier.Notification{
		AppointmentID: a.ID,
		CustomerID:    a.CustomerID,
		EmployeeID:    a.SalonEmployeeID,
		EventKind:     eventKind,
	})
	if err != nil {
		p.metrics.IncNotificationFailed(eventKind)
		p.logger.Warn("Publish: failed to notify %s for appointment id=%d: %v", eventKind, a.ID, err)
		return false
	}
	return true
}
