package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	policyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
)

// PolicyStore потокобезопасное in-memory хранилище политик бронирования
type PolicyStore struct {
	mu    sync.RWMutex
	items map[int64]domain.BookingPolicy
}

func NewPolicyStore() *PolicyStore {
	return &PolicyStore{items: make(map[int64]domain.BookingPolicy)}
}

func (s *PolicyStore) GetBySalon(ctx context.Context, salonID int64) (*domain.BookingPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[salonID]
	if !ok {
		return nil, policyRepo.ErrPolicyNotFound
	}
	return &p, nil
}

func (s *PolicyStore) Upsert(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	previous, existed := s.items[p.SalonID]
	if existed {
		p.CreatedAt = previous.CreatedAt
	} else {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	s.items[p.SalonID] = *p

	salonID := p.SalonID
	onRollback(ctx, func() {
		s.mu.Lock()
		if existed {
			s.items[salonID] = previous
		} else {
			delete(s.items, salonID)
		}
		s.mu.Unlock()
	})

	out := *p
	return &out, nil
}
