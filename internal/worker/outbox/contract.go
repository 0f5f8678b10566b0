package outbox

import "context"

// PendingDeliverer доставляет ожидающие события комиссии
type PendingDeliverer interface {
	DeliverPending(ctx context.Context, limit int) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
