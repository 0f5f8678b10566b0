package outbox

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository хранилище исходящих событий (transactional outbox)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет событие. Повторное событие того же вида для того же агрегата
// игнорируется (ON CONFLICT DO NOTHING), в этом случае возвращается false.
func (r *Repository) Insert(ctx context.Context, event *domain.OutboxEvent) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("outbox_events").
		Columns("id", "aggregate_id", "kind", "payload").
		Values(event.ID, event.AggregateID, event.Kind, []byte(event.Payload)).
		Suffix("ON CONFLICT (aggregate_id, kind) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Insert - get rows affected: %w", ErrExecQuery, err)
	}

	return affected == 1, nil
}

// FetchPending получает недоставленные события в порядке создания
func (r *Repository) FetchPending(ctx context.Context, kind string, limit int) ([]*domain.OutboxEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "aggregate_id", "kind", "payload", "attempts", "last_error", "created_at").
		From("outbox_events").
		Where(squirrel.Eq{"kind": kind, "delivered_at": nil}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FetchPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchPending - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.OutboxEvent, 0)
	for rows.Next() {
		var event domain.OutboxEvent
		var payload []byte
		if err := rows.Scan(
			&event.ID,
			&event.AggregateID,
			&event.Kind,
			&payload,
			&event.Attempts,
			&event.LastError,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: FetchPending - scan row: %w", ErrScanRow, err)
		}
		event.Payload = append([]byte(nil), payload...)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchPending - rows error: %w", ErrScanRow, err)
	}

	return events, nil
}

// MarkDelivered помечает событие доставленным; false, если оно уже было помечено
func (r *Repository) MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("delivered_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "delivered_at": nil}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkDelivered - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkDelivered - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkDelivered - get rows affected: %w", ErrExecQuery, err)
	}

	return affected == 1, nil
}

// MarkFailed увеличивает счетчик попыток и сохраняет последнюю ошибку доставки
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", reason).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkFailed - execute update: %w", ErrExecQuery, err)
	}

	return nil
}
