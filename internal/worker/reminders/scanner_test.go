package reminders

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/notifications"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

var msk = time.FixedZone("MSK", 3*60*60)

var now = time.Date(2025, 10, 19, 10, 0, 0, 0, msk)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakePublisher struct {
	mu   sync.Mutex
	fail bool
	sent []int64
}

func (p *fakePublisher) Publish(ctx context.Context, a *domain.Appointment, eventKind string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail || eventKind != notifications.EventReminder {
		return false
	}
	p.sent = append(p.sent, a.ID)
	return true
}

type countingMetrics struct{ sent int }

func (m *countingMetrics) IncReminderSent() { m.sent++ }

func book(t *testing.T, store *memory.AppointmentStore, employeeID int64, start time.Time, status domain.AppointmentStatus) int64 {
	t.Helper()
	a, err := store.Create(context.Background(), &domain.Appointment{
		CustomerID:      100,
		SalonEmployeeID: employeeID,
		ScheduledStart:  start,
		ScheduledEnd:    start.Add(30 * time.Minute),
		Status:          status,
	})
	require.NoError(t, err)
	return a.ID
}

func newScanner(store *memory.AppointmentStore, publisher *fakePublisher, markers MarkerStore, metrics *countingMetrics) *Scanner {
	cfg := DefaultConfig()
	cfg.RateLimit = 1000
	return NewScanner(cfg, store, publisher, markers, metrics, msk, logger.Nop()).
		WithTimeProvider(fixedTime{now: now})
}

func TestScan_SendsOneReminderPerAppointment(t *testing.T) {
	store := memory.NewAppointmentStore()
	tomorrow := now.Add(24 * time.Hour)

	inWindow := book(t, store, 1, tomorrow, domain.StatusPending)
	confirmed := book(t, store, 2, tomorrow.Add(4*time.Minute), domain.StatusConfirmed)
	book(t, store, 3, tomorrow.Add(5*time.Minute), domain.StatusConfirmed) // следующее окно
	book(t, store, 4, tomorrow.Add(-time.Minute), domain.StatusConfirmed)  // предыдущее окно
	book(t, store, 5, tomorrow, domain.StatusCancelled)

	publisher := &fakePublisher{}
	metrics := &countingMetrics{}
	scanner := newScanner(store, publisher, NewMemoryMarker(48*time.Hour), metrics)

	sent, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, []int64{inWindow, confirmed}, publisher.sent)
	assert.Equal(t, 2, metrics.sent)

	// Повторный запуск не дублирует напоминания
	sent, err = scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Len(t, publisher.sent, 2)
}

func TestScan_DoesNotChangeStatus(t *testing.T) {
	store := memory.NewAppointmentStore()
	id := book(t, store, 1, now.Add(24*time.Hour), domain.StatusPending)

	_, err := newScanner(store, &fakePublisher{}, NewMemoryMarker(time.Hour), &countingMetrics{}).
		Scan(context.Background())
	require.NoError(t, err)

	a, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, a.Status)
	assert.Empty(t, store.StatusChanges(id))
}

func TestScan_FailedPublishReleasesMarker(t *testing.T) {
	store := memory.NewAppointmentStore()
	id := book(t, store, 1, now.Add(24*time.Hour), domain.StatusConfirmed)

	publisher := &fakePublisher{fail: true}
	markers := NewMemoryMarker(time.Hour)
	scanner := newScanner(store, publisher, markers, &countingMetrics{})

	sent, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)

	publisher.fail = false
	sent, err = scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []int64{id}, publisher.sent)
}

func TestRedisMarker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	markers := NewRedisMarker(client, time.Hour)
	ctx := context.Background()

	ok, err := markers.TryMark(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = markers.TryMark(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(2 * time.Hour)
	ok, err = markers.TryMark(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, markers.Release(ctx, 42))
	assert.False(t, mr.Exists("reminder:sent:42"))
}

func TestMemoryMarker_Expires(t *testing.T) {
	markers := NewMemoryMarker(time.Hour)
	current := now
	markers.now = func() time.Time { return current }
	ctx := context.Background()

	ok, _ := markers.TryMark(ctx, 1)
	assert.True(t, ok)
	ok, _ = markers.TryMark(ctx, 1)
	assert.False(t, ok)

	current = current.Add(time.Hour)
	ok, _ = markers.TryMark(ctx, 1)
	assert.True(t, ok)
}

func TestStart_InvalidSchedule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Schedule = "every five minutes"
	scanner := NewScanner(cfg, memory.NewAppointmentStore(), &fakePublisher{}, NewMemoryMarker(time.Hour),
		&countingMetrics{}, msk, logger.Nop())

	err := scanner.Start(context.Background())

	assert.ErrorIs(t, err, ErrInvalidSchedule)
	scanner.Stop()
}

func TestStartStop(t *testing.T) {
	scanner := NewScanner(DefaultConfig(), memory.NewAppointmentStore(), &fakePublisher{}, NewMemoryMarker(time.Hour),
		&countingMetrics{}, msk, logger.Nop())

	require.NoError(t, scanner.Start(context.Background()))
	scanner.Stop()
}
