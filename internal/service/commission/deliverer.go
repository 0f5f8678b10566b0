package commission

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Deliverer передаёт события комиссии из outbox в реестр
// Идентификатор события служит ключом идемпотентности, поэтому повторная доставка
// того же события не создаёт вторую комиссию
type Deliverer struct {
	ledger     Ledger
	outboxRepo OutboxRepository
	logger     Logger
}

// NewDeliverer создает доставщик событий комиссии
func NewDeliverer(ledger Ledger, outboxRepo OutboxRepository, logger Logger) *Deliverer {
	return &Deliverer{
		ledger:     ledger,
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

// Deliver доставляет одно событие и помечает его доставленным
func (d *Deliverer) Deliver(ctx context.Context, event *domain.OutboxEvent) error {
	if err := d.ledger.RecordCommission(ctx, event.ID.String(), event.Payload); err != nil {
		d.logger.Warn("Deliver: ledger rejected event id=%s for appointment id=%d: %v", event.ID, event.AggregateID, err)
		if markErr := d.outboxRepo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
			d.logger.Error("Deliver: failed to record attempt for event id=%s: %v", event.ID, markErr)
		}
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	if _, err := d.outboxRepo.MarkDelivered(ctx, event.ID); err != nil {
		// Событие будет доставлено повторно, реестр отбросит дубликат по ключу
		d.logger.Error("Deliver: failed to mark event id=%s delivered: %v", event.ID, err)
		return fmt.Errorf("%w: mark delivered: %v", ErrInternal, err)
	}

	d.logger.Info("Deliver: commission recorded for appointment id=%d", event.AggregateID)
	return nil
}

// DeliverPending доставляет до limit ожидающих событий и возвращает число успешно доставленных
func (d *Deliverer) DeliverPending(ctx context.Context, limit int) (int, error) {
	events, err := d.outboxRepo.FetchPending(ctx, domain.OutboxKindCommission, limit)
	if err != nil {
		return 0, fmt.Errorf("%w: DeliverPending - fetch: %v", ErrInternal, err)
	}

	delivered := 0
	for _, event := range events {
		if ctx.Err() != nil {
			return delivered, ctx.Err()
		}
		if err := d.Deliver(ctx, event); err == nil {
			delivered++
		}
	}
	return delivered, nil
}
