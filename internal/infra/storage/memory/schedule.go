package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availabilityrule"
)

// WorkingHoursStore потокобезопасное in-memory хранилище недельных шаблонов
type WorkingHoursStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64][]domain.WorkingHours // employeeID -> шаблон
}

func NewWorkingHoursStore() *WorkingHoursStore {
	return &WorkingHoursStore{items: make(map[int64][]domain.WorkingHours)}
}

func (s *WorkingHoursStore) ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.WorkingHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.WorkingHours, 0, len(s.items[employeeID]))
	for _, item := range s.items[employeeID] {
		wh := item
		out = append(out, &wh)
	}
	return out, nil
}

func (s *WorkingHoursStore) ReplaceForEmployee(ctx context.Context, employeeID int64, hours []*domain.WorkingHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.items[employeeID]

	now := time.Now()
	replacement := make([]domain.WorkingHours, 0, len(hours))
	for _, wh := range hours {
		s.nextID++
		row := *wh
		row.ID = s.nextID
		row.EmployeeID = employeeID
		row.CreatedAt = now
		row.UpdatedAt = now
		replacement = append(replacement, row)
	}
	sort.Slice(replacement, func(i, j int) bool { return replacement[i].Weekday < replacement[j].Weekday })
	s.items[employeeID] = replacement

	onRollback(ctx, func() {
		s.mu.Lock()
		if existed {
			s.items[employeeID] = previous
		} else {
			delete(s.items, employeeID)
		}
		s.mu.Unlock()
	})
	return nil
}

// AvailabilityRuleStore потокобезопасное in-memory хранилище правил доступности
type AvailabilityRuleStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.AvailabilityRule
}

func NewAvailabilityRuleStore() *AvailabilityRuleStore {
	return &AvailabilityRuleStore{items: make(map[int64]domain.AvailabilityRule)}
}

func (s *AvailabilityRuleStore) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rule.ID = s.nextID
	rule.CreatedAt = time.Now()
	s.items[rule.ID] = *rule

	id := rule.ID
	onRollback(ctx, func() {
		s.mu.Lock()
		delete(s.items, id)
		s.mu.Unlock()
	})

	out := *rule
	return &out, nil
}

func (s *AvailabilityRuleStore) ListByEmployee(ctx context.Context, employeeID int64, from, to *time.Time) ([]*domain.AvailabilityRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.AvailabilityRule, 0)
	for _, item := range s.items {
		rule := item
		if rule.EmployeeID != employeeID {
			continue
		}
		if from != nil && domain.CivilDate(rule.DateEnd) < domain.CivilDate(*from) {
			continue
		}
		if to != nil && domain.CivilDate(rule.DateStart) > domain.CivilDate(*to) {
			continue
		}
		out = append(out, &rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateStart.Before(out[j].DateStart) })
	return out, nil
}

func (s *AvailabilityRuleStore) Delete(ctx context.Context, employeeID, ruleID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.items[ruleID]
	if !ok || rule.EmployeeID != employeeID {
		return ruleRepo.ErrRuleNotFound
	}
	delete(s.items, ruleID)

	onRollback(ctx, func() {
		s.mu.Lock()
		s.items[ruleID] = rule
		s.mu.Unlock()
	})
	return nil
}
