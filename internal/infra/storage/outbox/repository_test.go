package outbox

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestRepository_Insert_Deduplicates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	event := &domain.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: 42,
		Kind:        domain.OutboxKindCommission,
		Payload:     json.RawMessage(`{"appointmentId":42}`),
	}

	mock.ExpectExec(`INSERT INTO outbox_events .+ ON CONFLICT \(aggregate_id, kind\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO outbox_events .+ ON CONFLICT \(aggregate_id, kind\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := repo.Insert(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Insert(context.Background(), event)
	require.NoError(t, err)
	assert.False(t, inserted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM outbox_events WHERE delivered_at IS NULL AND kind = \$1 ORDER BY created_at ASC LIMIT 10`).
		WithArgs(domain.OutboxKindCommission).
		WillReturnRows(sqlmock.NewRows([]string{"id", "aggregate_id", "kind", "payload", "attempts", "last_error", "created_at"}).
			AddRow(id.String(), int64(42), domain.OutboxKindCommission, []byte(`{"appointmentId":42}`), 1, "timeout", time.Now()))

	events, err := NewRepository(db).FetchPending(context.Background(), domain.OutboxKindCommission, 10)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, 1, events[0].Attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkDelivered(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(`UPDATE outbox_events SET delivered_at = NOW\(\) WHERE delivered_at IS NULL AND id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := NewRepository(db).MarkDelivered(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, ok)
}
