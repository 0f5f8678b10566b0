package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type outboxKey struct {
	aggregateID int64
	kind        string
}

// OutboxStore потокобезопасное in-memory хранилище исходящих событий
type OutboxStore struct {
	mu     sync.RWMutex
	items  map[uuid.UUID]domain.OutboxEvent
	unique map[outboxKey]uuid.UUID
}

func NewOutboxStore() *OutboxStore {
	return &OutboxStore{
		items:  make(map[uuid.UUID]domain.OutboxEvent),
		unique: make(map[outboxKey]uuid.UUID),
	}
}

func (s *OutboxStore) Insert(ctx context.Context, event *domain.OutboxEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := outboxKey{aggregateID: event.AggregateID, kind: event.Kind}
	if _, exists := s.unique[key]; exists {
		return false, nil
	}

	e := *event
	e.CreatedAt = time.Now()
	s.items[e.ID] = e
	s.unique[key] = e.ID

	onRollback(ctx, func() {
		s.mu.Lock()
		delete(s.items, e.ID)
		delete(s.unique, key)
		s.mu.Unlock()
	})
	return true, nil
}

func (s *OutboxStore) FetchPending(ctx context.Context, kind string, limit int) ([]*domain.OutboxEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.OutboxEvent, 0)
	for _, item := range s.items {
		e := item
		if e.Kind == kind && e.DeliveredAt == nil {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *OutboxStore) MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok || e.DeliveredAt != nil {
		return false, nil
	}
	now := time.Now()
	e.DeliveredAt = &now
	s.items[id] = e
	return true, nil
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		return nil
	}
	e.Attempts++
	e.LastError = &reason
	s.items[id] = e
	return nil
}
