package commission

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Ledger реестр комиссий
type Ledger interface {
	RecordCommission(ctx context.Context, idempotencyKey string, payload json.RawMessage) error
}

// OutboxRepository интерфейс хранилища исходящих событий
type OutboxRepository interface {
	FetchPending(ctx context.Context, kind string, limit int) ([]*domain.OutboxEvent, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
