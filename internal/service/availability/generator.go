package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Generator строит кандидатные окна работы сотрудника по шаблону и правилам
// Записи сотрудника здесь не учитываются
type Generator struct {
	hoursRepo WorkingHoursReader
	rulesRepo RuleReader
	location  *time.Location
}

// NewGenerator создает генератор окон в часовом поясе салона
func NewGenerator(hoursRepo WorkingHoursReader, rulesRepo RuleReader, location *time.Location) *Generator {
	if location == nil {
		location = time.UTC
	}
	return &Generator{
		hoursRepo: hoursRepo,
		rulesRepo: rulesRepo,
		location:  location,
	}
}

// Location часовой пояс, в котором интерпретируются даты и время суток
func (g *Generator) Location() *time.Location {
	return g.location
}

// GenerateWindows возвращает упорядоченные по началу окна [open, close) для каждого дня диапазона.
// BLOCK правило убирает день целиком, OVERRIDE_HOURS подменяет часы,
// иначе используется недельный шаблон. Начало окна выравнивается по сетке.
func (g *Generator) GenerateWindows(ctx context.Context, employeeID int64, dates DateRange, granularityMinutes int) ([]domain.Interval, error) {
	if granularityMinutes <= 0 {
		return nil, ErrInvalidGranularity
	}

	from := startOfDay(dates.From, g.location)
	to := startOfDay(dates.To, g.location)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: from=%s, to=%s", ErrInvalidRange,
			from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}

	hours, err := g.hoursRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("%w: GenerateWindows - working hours: %w", ErrInternal, err)
	}

	rules, err := g.rulesRepo.ListByEmployee(ctx, employeeID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("%w: GenerateWindows - availability rules: %w", ErrInternal, err)
	}

	byWeekday := make(map[int]*domain.WorkingHours, len(hours))
	for _, wh := range hours {
		byWeekday[wh.Weekday] = wh
	}

	step := time.Duration(granularityMinutes) * time.Minute
	windows := make([]domain.Interval, 0)

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		rule, err := ruleForDay(rules, day)
		if err != nil {
			return nil, err
		}

		var window domain.Interval
		switch {
		case rule != nil && rule.Kind == domain.RuleKindBlock:
			continue
		case rule != nil:
			window, err = g.window(day, rule.OpenTime, rule.CloseTime)
		default:
			wh, ok := byWeekday[int(day.Weekday())]
			if !ok || !wh.IsWorking {
				continue
			}
			window, err = g.window(day, wh.OpenTime, wh.CloseTime)
		}
		if err != nil {
			return nil, err
		}

		window.Start = alignUp(window.Start, step, g.location)
		if window.IsEmpty() {
			continue
		}
		windows = append(windows, window)
	}

	return windows, nil
}

func (g *Generator) window(day time.Time, open, closeAt types.TimeString) (domain.Interval, error) {
	start, err := open.On(day, g.location)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %w", ErrInconsistentSchedule, err)
	}
	end, err := closeAt.On(day, g.location)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %w", ErrInconsistentSchedule, err)
	}
	if !start.Before(end) {
		return domain.Interval{}, fmt.Errorf("%w: %s window %s-%s",
			ErrInconsistentSchedule, day.Format(domain.DateFormat), open, closeAt)
	}
	return domain.Interval{Start: start, End: end}, nil
}

// ruleForDay правило, покрывающее день; пересекающиеся правила отклоняются при записи,
// поэтому второе покрывающее правило означает повреждённые данные
func ruleForDay(rules []*domain.AvailabilityRule, day time.Time) (*domain.AvailabilityRule, error) {
	var found *domain.AvailabilityRule
	for _, rule := range rules {
		if !rule.Covers(day) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: rules %d and %d both cover %s",
				ErrInconsistentSchedule, found.ID, rule.ID, day.Format(domain.DateFormat))
		}
		found = rule
	}
	return found, nil
}
