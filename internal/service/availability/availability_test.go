package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

const employeeID int64 = 7

var msk = time.FixedZone("MSK", 3*60*60)

// 2025-10-20 понедельник
var monday = time.Date(2025, 10, 20, 0, 0, 0, 0, msk)

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 20, hour, minute, 0, 0, msk)
}

type fixture struct {
	hours        *memory.WorkingHoursStore
	rules        *memory.AvailabilityRuleStore
	appointments *memory.AppointmentStore
	generator    *Generator
	checker      *Checker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		hours:        memory.NewWorkingHoursStore(),
		rules:        memory.NewAvailabilityRuleStore(),
		appointments: memory.NewAppointmentStore(),
	}
	f.generator = NewGenerator(f.hours, f.rules, msk)
	f.checker = NewChecker(f.appointments, msk)

	require.NoError(t, f.hours.ReplaceForEmployee(context.Background(), employeeID, []*domain.WorkingHours{
		{Weekday: int(time.Monday), IsWorking: true, OpenTime: "09:00", CloseTime: "17:00"},
		{Weekday: int(time.Tuesday), IsWorking: false},
	}))
	return f
}

func (f *fixture) slots(t *testing.T, duration, buffer, granularity int) []time.Time {
	t.Helper()
	ctx := context.Background()
	windows, err := f.generator.GenerateWindows(ctx, employeeID, Day(monday), granularity)
	require.NoError(t, err)
	starts, err := f.checker.FreeWindows(ctx, employeeID, windows, duration, buffer, granularity)
	require.NoError(t, err)
	return starts
}

func (f *fixture) book(t *testing.T, start time.Time, minutes int, status domain.AppointmentStatus) {
	t.Helper()
	_, err := f.appointments.Create(context.Background(), &domain.Appointment{
		SalonEmployeeID: employeeID,
		ScheduledStart:  start,
		ScheduledEnd:    start.Add(time.Duration(minutes) * time.Minute),
		Status:          status,
	})
	require.NoError(t, err)
}

func TestAvailability_EmptyWorkingDay(t *testing.T) {
	f := newFixture(t)

	starts := f.slots(t, 30, 0, 15)

	require.Len(t, starts, 31)
	assert.True(t, starts[0].Equal(at(9, 0)))
	assert.True(t, starts[len(starts)-1].Equal(at(16, 30)))
	assert.False(t, IsFree(starts, at(16, 45)))

	// С шагом 30 минут получается 16 слотов
	assert.Len(t, f.slots(t, 30, 0, 30), 16)
}

func TestAvailability_HalfOpenConflict(t *testing.T) {
	f := newFixture(t)
	f.book(t, at(10, 0), 30, domain.StatusConfirmed)

	starts := f.slots(t, 30, 0, 15)

	assert.True(t, IsFree(starts, at(9, 30)))
	assert.False(t, IsFree(starts, at(9, 45)))
	assert.False(t, IsFree(starts, at(10, 0)))
	assert.False(t, IsFree(starts, at(10, 15)))
	assert.True(t, IsFree(starts, at(10, 30)))
}

func TestAvailability_BlockRule(t *testing.T) {
	f := newFixture(t)
	_, err := f.rules.Create(context.Background(), &domain.AvailabilityRule{
		EmployeeID: employeeID,
		DateStart:  time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		DateEnd:    time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		Kind:       domain.RuleKindBlock,
		Reason:     ptr.Ptr("vacation"),
	})
	require.NoError(t, err)

	assert.Empty(t, f.slots(t, 30, 0, 15))
}

func TestOverrideHoursRule(t *testing.T) {
	f := newFixture(t)
	_, err := f.rules.Create(context.Background(), &domain.AvailabilityRule{
		EmployeeID: employeeID,
		DateStart:  time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC),
		DateEnd:    time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
		Kind:       domain.RuleKindOverrideHours,
		OpenTime:   "12:00",
		CloseTime:  "14:00",
	})
	require.NoError(t, err)

	windows, err := f.generator.GenerateWindows(context.Background(), employeeID,
		DateRange{From: monday.AddDate(0, 0, -1), To: monday.AddDate(0, 0, 1)}, 15)
	require.NoError(t, err)

	// Воскресенье и вторник по шаблону нерабочие, но правило их открывает
	require.Len(t, windows, 3)
	assert.True(t, windows[1].Start.Equal(at(12, 0)))
	assert.True(t, windows[1].End.Equal(at(14, 0)))
}

func TestGenerateWindows_SkipsNonWorkingDays(t *testing.T) {
	f := newFixture(t)

	windows, err := f.generator.GenerateWindows(context.Background(), employeeID,
		DateRange{From: monday, To: monday.AddDate(0, 0, 6)}, 15)
	require.NoError(t, err)

	require.Len(t, windows, 1)
	assert.True(t, windows[0].Start.Equal(at(9, 0)))
}

func TestGenerateWindows_AlignsStartToGrid(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.hours.ReplaceForEmployee(context.Background(), employeeID, []*domain.WorkingHours{
		{Weekday: int(time.Monday), IsWorking: true, OpenTime: "09:10", CloseTime: "10:00"},
	}))

	starts := f.slots(t, 15, 0, 15)

	assert.Equal(t, []time.Time{at(9, 15), at(9, 30), at(9, 45)}, starts)
}

func TestGenerateWindows_InvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.generator.GenerateWindows(ctx, employeeID, DateRange{From: monday, To: monday.AddDate(0, 0, -1)}, 15)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = f.generator.GenerateWindows(ctx, employeeID, Day(monday), 0)
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestFreeWindows_Buffer(t *testing.T) {
	f := newFixture(t)
	f.book(t, at(10, 0), 30, domain.StatusPending)

	starts := f.slots(t, 30, 10, 15)

	assert.True(t, IsFree(starts, at(9, 15)))
	assert.False(t, IsFree(starts, at(9, 30)))
	assert.False(t, IsFree(starts, at(10, 30)))
	assert.True(t, IsFree(starts, at(10, 45)))
}

func TestFreeWindows_TerminalAppointmentsDoNotBlock(t *testing.T) {
	f := newFixture(t)
	f.book(t, at(10, 0), 30, domain.StatusCancelled)
	f.book(t, at(11, 0), 30, domain.StatusCompleted)

	starts := f.slots(t, 30, 0, 15)

	assert.Len(t, starts, 31)
}

func TestFreeWindows_BusyBeforeWindowWithBuffer(t *testing.T) {
	f := newFixture(t)
	// Запись до открытия, её буфер заходит в рабочее окно
	f.book(t, at(8, 0), 60, domain.StatusConfirmed)

	starts := f.slots(t, 30, 15, 15)

	assert.False(t, IsFree(starts, at(9, 0)))
	assert.True(t, IsFree(starts, at(9, 15)))
}

func TestDateRange_Days(t *testing.T) {
	assert.Equal(t, 1, Day(monday).Days(msk))
	assert.Equal(t, 7, DateRange{From: monday, To: monday.AddDate(0, 0, 6)}.Days(msk))
	assert.Equal(t, 0, DateRange{From: monday, To: monday.AddDate(0, 0, -1)}.Days(msk))
}
