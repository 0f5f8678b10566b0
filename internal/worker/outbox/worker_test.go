package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/commission"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeLedger struct {
	mu   sync.Mutex
	fail bool
	keys map[string]int
}

func (l *fakeLedger) RecordCommission(ctx context.Context, key string, payload json.RawMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return errors.New("ledger unavailable")
	}
	l.keys[key]++
	return nil
}

func (l *fakeLedger) calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.keys {
		n += c
	}
	return n
}

func enqueue(t *testing.T, store *memory.OutboxStore, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		event, err := domain.NewCommissionEvent(&domain.Appointment{ID: int64(i), SalonEmployeeID: 7, ServicePrice: 1000})
		require.NoError(t, err)
		_, err = store.Insert(context.Background(), event)
		require.NoError(t, err)
	}
}

func TestRunOnce_DeliversAllBatches(t *testing.T) {
	store := memory.NewOutboxStore()
	ledger := &fakeLedger{keys: make(map[string]int)}
	enqueue(t, store, 7)

	w := NewWorker(commission.NewDeliverer(ledger, store, logger.Nop()), time.Minute, 3, logger.Nop())

	assert.Equal(t, 7, w.RunOnce(context.Background()))
	assert.Len(t, ledger.keys, 7)

	assert.Zero(t, w.RunOnce(context.Background()))
	assert.Equal(t, 7, ledger.calls())
}

func TestRunOnce_LedgerDownKeepsEvents(t *testing.T) {
	store := memory.NewOutboxStore()
	ledger := &fakeLedger{fail: true, keys: make(map[string]int)}
	enqueue(t, store, 2)

	w := NewWorker(commission.NewDeliverer(ledger, store, logger.Nop()), time.Minute, 10, logger.Nop())

	assert.Zero(t, w.RunOnce(context.Background()))
	pending, err := store.FetchPending(context.Background(), domain.OutboxKindCommission, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	ledger.mu.Lock()
	ledger.fail = false
	ledger.mu.Unlock()
	assert.Equal(t, 2, w.RunOnce(context.Background()))
}

func TestWorker_StartStop(t *testing.T) {
	store := memory.NewOutboxStore()
	ledger := &fakeLedger{keys: make(map[string]int)}
	enqueue(t, store, 2)

	w := NewWorker(commission.NewDeliverer(ledger, store, logger.Nop()), 10*time.Millisecond, 10, logger.Nop())
	w.Start(context.Background())
	defer w.Stop()

	assert.Eventually(t, func() bool { return ledger.calls() == 2 }, time.Second, 10*time.Millisecond)
}
