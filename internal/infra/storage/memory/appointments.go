package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// AppointmentStore потокобезопасное in-memory хранилище записей
// Возвращает те же ошибки, что и PostgreSQL репозиторий
type AppointmentStore struct {
	mu      sync.RWMutex
	nextID  int64
	items   map[int64]domain.Appointment
	changes []domain.AppointmentStatusChange
	now     func() time.Time
}

// NewAppointmentStore создает пустое хранилище записей
func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{
		items: make(map[int64]domain.Appointment),
		now:   time.Now,
	}
}

// Create сохраняет запись; пересечение с активной записью сотрудника отклоняется,
// как это делает EXCLUDE constraint в PostgreSQL
func (s *AppointmentStore) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.Status.IsNonTerminal() {
		for _, existing := range s.items {
			if existing.SalonEmployeeID == a.SalonEmployeeID &&
				existing.Status.IsNonTerminal() &&
				existing.Interval().Overlaps(a.Interval()) {
				return nil, appointmentRepo.ErrSlotConflict
			}
		}
	}

	s.nextID++
	now := s.now()
	a.ID = s.nextID
	a.CreatedAt = now
	a.UpdatedAt = now
	s.items[a.ID] = *a

	id := a.ID
	onRollback(ctx, func() {
		s.mu.Lock()
		delete(s.items, id)
		s.mu.Unlock()
	})

	out := *a
	return &out, nil
}

func (s *AppointmentStore) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (s *AppointmentStore) GetEmployeeID(ctx context.Context, id int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.items[id]
	if !ok {
		return 0, appointmentRepo.ErrAppointmentNotFound
	}
	return a.SalonEmployeeID, nil
}

func (s *AppointmentStore) ListByCustomer(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	out := s.filter(func(a *domain.Appointment) bool {
		return a.CustomerID == customerID && (status == nil || a.Status == *status)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledStart.After(out[j].ScheduledStart) })
	return out, nil
}

func (s *AppointmentStore) ListByEmployee(ctx context.Context, filter domain.EmployeeAppointmentsFilter) ([]*domain.Appointment, error) {
	out := s.filter(func(a *domain.Appointment) bool {
		if a.SalonEmployeeID != filter.EmployeeID {
			return false
		}
		if filter.From != nil && !a.ScheduledEnd.After(*filter.From) {
			return false
		}
		if filter.To != nil && !a.ScheduledStart.Before(*filter.To) {
			return false
		}
		if filter.Status != nil {
			return a.Status == *filter.Status
		}
		return filter.IncludeInactive || a.Status.IsNonTerminal()
	})
	sortByStart(out)
	return out, nil
}

func (s *AppointmentStore) ListActiveByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.Appointment, error) {
	window := domain.Interval{Start: from, End: to}
	out := s.filter(func(a *domain.Appointment) bool {
		return a.SalonEmployeeID == employeeID && a.Status.IsNonTerminal() && a.Interval().Overlaps(window)
	})
	sortByStart(out)
	return out, nil
}

func (s *AppointmentStore) ListUpcoming(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	out := s.filter(func(a *domain.Appointment) bool {
		return (a.Status == domain.StatusPending || a.Status == domain.StatusConfirmed) &&
			!a.ScheduledStart.Before(from) && a.ScheduledStart.Before(to)
	})
	sortByStart(out)
	return out, nil
}

func (s *AppointmentStore) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.items[id]
	if !ok || a.Status != from {
		return nil, appointmentRepo.ErrStatusConflict
	}

	previous := a
	a.Status = to
	a.UpdatedAt = s.now()
	s.items[id] = a

	onRollback(ctx, func() {
		s.mu.Lock()
		s.items[id] = previous
		s.mu.Unlock()
	})

	return &a, nil
}

func (s *AppointmentStore) InsertStatusChange(ctx context.Context, change *domain.AppointmentStatusChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *change
	c.ChangedAt = s.now()
	s.changes = append(s.changes, c)

	n := len(s.changes) - 1
	onRollback(ctx, func() {
		s.mu.Lock()
		s.changes = s.changes[:n]
		s.mu.Unlock()
	})
	return nil
}

// LockEmployee не требуется: TxManager уже сериализует транзакции
func (s *AppointmentStore) LockEmployee(ctx context.Context, employeeID int64) error {
	return nil
}

// StatusChanges возвращает копию аудита смен статуса записи
func (s *AppointmentStore) StatusChanges(appointmentID int64) []domain.AppointmentStatusChange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.AppointmentStatusChange, 0)
	for _, c := range s.changes {
		if c.AppointmentID == appointmentID {
			out = append(out, c)
		}
	}
	return out
}

func (s *AppointmentStore) filter(keep func(a *domain.Appointment) bool) []*domain.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Appointment, 0)
	for _, item := range s.items {
		a := item
		if keep(&a) {
			out = append(out, &a)
		}
	}
	return out
}

func sortByStart(items []*domain.Appointment) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].ScheduledStart.Equal(items[j].ScheduledStart) {
			return items[i].ID < items[j].ID
		}
		return items[i].ScheduledStart.Before(items[j].ScheduledStart)
	})
}
