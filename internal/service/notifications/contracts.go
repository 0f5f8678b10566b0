package notifications

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
)

// Dispatcher клиент диспетчера уведомлений
type Dispatcher interface {
	Notify(ctx context.Context, n notifier.Notification) error
}

// Metrics счётчик неудачных уведомлений
type Metrics interface {
	IncNotificationFailed(event string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
