package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	availabilityCache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalog"
	directoryClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	policyService "github.com/m04kA/SMC-AppointmentService/internal/service/policy"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

const (
	salonID    int64 = 3
	employeeID int64 = 7
	serviceID  int64 = 11
)

var msk = time.FixedZone("MSK", 3*60*60)

// 2025-10-20 понедельник
var monday = time.Date(2025, 10, 20, 0, 0, 0, 0, msk)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeDirectory struct {
	employees map[int64]*directoryClient.Employee
}

func (f *fakeDirectory) GetEmployee(ctx context.Context, id int64) (*directoryClient.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, directoryClient.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeCatalog struct {
	services map[int64]*catalogClient.Service
}

func (f *fakeCatalog) GetService(ctx context.Context, id int64) (*catalogClient.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogClient.ErrServiceNotFound
	}
	return s, nil
}

type cacheMetrics struct {
	results map[string]int
}

func (m *cacheMetrics) IncAvailabilityCache(result string) {
	m.results[result]++
}

type fixture struct {
	directory    *fakeDirectory
	catalog      *fakeCatalog
	policies     *memory.PolicyStore
	appointments *memory.AppointmentStore
	metrics      *cacheMetrics
	uc           *UseCase
}

func newFixture(t *testing.T, cache Cache) *fixture {
	t.Helper()
	ctx := context.Background()

	hours := memory.NewWorkingHoursStore()
	require.NoError(t, hours.ReplaceForEmployee(ctx, employeeID, []*domain.WorkingHours{
		{Weekday: int(time.Monday), IsWorking: true, OpenTime: "09:00", CloseTime: "17:00"},
	}))

	f := &fixture{
		directory: &fakeDirectory{employees: map[int64]*directoryClient.Employee{
			employeeID: {ID: employeeID, SalonID: salonID, IsActive: true},
			8:          {ID: 8, SalonID: salonID, IsActive: false},
		}},
		catalog: &fakeCatalog{services: map[int64]*catalogClient.Service{
			serviceID: {ID: serviceID, SalonID: salonID, DurationMinutes: 30, Price: 1500, IsActive: true},
			12:        {ID: 12, SalonID: salonID, DurationMinutes: 30, IsActive: false},
			13:        {ID: 13, SalonID: 99, DurationMinutes: 30, IsActive: true},
		}},
		policies:     memory.NewPolicyStore(),
		appointments: memory.NewAppointmentStore(),
		metrics:      &cacheMetrics{results: make(map[string]int)},
	}

	f.uc = NewUseCase(
		f.directory,
		f.catalog,
		policyService.NewService(f.policies, logger.Nop()),
		availability.NewGenerator(hours, memory.NewAvailabilityRuleStore(), msk),
		availability.NewChecker(f.appointments, msk),
		cache,
		f.metrics,
		logger.Nop(),
	).WithTimeProvider(fixedTime{now: monday.Add(-12 * time.Hour)})

	return f
}

func request() *Request {
	return &Request{EmployeeID: employeeID, ServiceID: serviceID, From: monday, To: monday}
}

func TestExecute_EmptyDay(t *testing.T) {
	f := newFixture(t, availabilityCache.Nop{})

	resp, err := f.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, domain.DefaultSlotGranularityMinutes, resp.GranularityMinutes)
	require.Len(t, resp.Slots, 31)
	assert.True(t, resp.Slots[0].Equal(monday.Add(9*time.Hour)))
	assert.True(t, resp.Slots[30].Equal(monday.Add(16*time.Hour+30*time.Minute)))
}

func TestExecute_SalonPolicyApplied(t *testing.T) {
	f := newFixture(t, availabilityCache.Nop{})
	_, err := f.policies.Upsert(context.Background(), &domain.BookingPolicy{
		SalonID:                salonID,
		SlotGranularityMinutes: 30,
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, 30, resp.GranularityMinutes)
	assert.Len(t, resp.Slots, 16)
}

func TestExecute_FiltersByNoticeAndAdvanceLimit(t *testing.T) {
	f := newFixture(t, availabilityCache.Nop{})
	_, err := f.policies.Upsert(context.Background(), &domain.BookingPolicy{
		SalonID:                 salonID,
		SlotGranularityMinutes:  15,
		MinBookingNoticeMinutes: 60,
		AdvanceBookingDays:      7,
	})
	require.NoError(t, err)

	// Сейчас понедельник 10:05: ближайший слот не раньше 11:05
	f.uc.WithTimeProvider(fixedTime{now: monday.Add(10*time.Hour + 5*time.Minute)})
	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.True(t, resp.Slots[0].Equal(monday.Add(11*time.Hour+15*time.Minute)))

	// Понедельник через неделю ещё доступен, через две недели уже нет
	req := request()
	req.From = monday.AddDate(0, 0, 7)
	req.To = monday.AddDate(0, 0, 14)
	resp, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 31)
	assert.Equal(t, domain.CivilDate(monday.AddDate(0, 0, 7)), domain.CivilDate(resp.Slots[30].In(msk)))
}

func TestExecute_ExistingAppointmentRemovesSlots(t *testing.T) {
	f := newFixture(t, availabilityCache.Nop{})
	_, err := f.appointments.Create(context.Background(), &domain.Appointment{
		SalonEmployeeID: employeeID,
		ScheduledStart:  monday.Add(10 * time.Hour),
		ScheduledEnd:    monday.Add(11 * time.Hour),
		Status:          domain.StatusConfirmed,
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	for _, s := range resp.Slots {
		end := s.Add(30 * time.Minute)
		assert.False(t, s.Before(monday.Add(11*time.Hour)) && end.After(monday.Add(10*time.Hour)),
			"slot %s overlaps the booked hour", s)
	}
	// 09:00..09:30 и 11:00..16:30
	assert.Len(t, resp.Slots, 3+23)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{name: "unknown employee", modify: func(r *Request) { r.EmployeeID = 404 }, wantErr: ErrEmployeeNotFound},
		{name: "inactive employee", modify: func(r *Request) { r.EmployeeID = 8 }, wantErr: ErrEmployeeInactive},
		{name: "unknown service", modify: func(r *Request) { r.ServiceID = 404 }, wantErr: ErrServiceNotFound},
		{name: "inactive service", modify: func(r *Request) { r.ServiceID = 12 }, wantErr: ErrServiceInactive},
		{name: "service of another salon", modify: func(r *Request) { r.ServiceID = 13 }, wantErr: ErrServiceNotInSalon},
		{name: "reversed range", modify: func(r *Request) { r.To = monday.AddDate(0, 0, -1) }, wantErr: ErrInvalidInput},
		{name: "range too long", modify: func(r *Request) {
			r.To = monday.AddDate(0, 0, domain.MaxAvailabilityRangeDays)
		}, wantErr: ErrInvalidInput},
		{name: "missing employee", modify: func(r *Request) { r.EmployeeID = 0 }, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, availabilityCache.Nop{})
			req := request()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_UsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := availabilityCache.NewCache(client, time.Minute)

	f := newFixture(t, cache)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, request())
	require.NoError(t, err)
	second, err := f.uc.Execute(ctx, request())
	require.NoError(t, err)

	assert.Equal(t, 1, f.metrics.results["miss"])
	assert.Equal(t, 1, f.metrics.results["hit"])
	require.Len(t, second.Slots, len(first.Slots))
	assert.True(t, second.Slots[0].Equal(first.Slots[0]))

	// Новая запись и инвалидация: слот 09:00 исчезает
	_, err = f.appointments.Create(ctx, &domain.Appointment{
		SalonEmployeeID: employeeID,
		ScheduledStart:  monday.Add(9 * time.Hour),
		ScheduledEnd:    monday.Add(9*time.Hour + 30*time.Minute),
		Status:          domain.StatusPending,
	})
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, employeeID))

	third, err := f.uc.Execute(ctx, request())
	require.NoError(t, err)
	assert.Equal(t, 2, f.metrics.results["miss"])
	assert.True(t, third.Slots[0].Equal(monday.Add(9*time.Hour+30*time.Minute)))
}

func TestExecute_CacheUnavailableFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	f := newFixture(t, availabilityCache.NewCache(client, time.Minute))

	resp, err := f.uc.Execute(context.Background(), request())

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 31)
	assert.Equal(t, 1, f.metrics.results["error"])
}
