package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Checker вычитает занятые интервалы сотрудника из кандидатных окон
type Checker struct {
	appointmentRepo AppointmentReader
	location        *time.Location
}

// NewChecker создает проверку конфликтов в часовом поясе салона
func NewChecker(appointmentRepo AppointmentReader, location *time.Location) *Checker {
	if location == nil {
		location = time.UTC
	}
	return &Checker{
		appointmentRepo: appointmentRepo,
		location:        location,
	}
}

// FreeWindows возвращает начала слотов длительностью durationMinutes, которые помещаются
// в кандидатные окна без пересечения с активными записями, расширенными на буфер.
// Начало, совпадающее с концом занятого интервала, допустимо.
func (c *Checker) FreeWindows(
	ctx context.Context,
	employeeID int64,
	candidates []domain.Interval,
	durationMinutes int,
	bufferMinutes int,
	granularityMinutes int,
) ([]time.Time, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if granularityMinutes <= 0 {
		return nil, ErrInvalidGranularity
	}
	if len(candidates) == 0 {
		return []time.Time{}, nil
	}

	span := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.Start.Before(span.Start) {
			span.Start = cand.Start
		}
		if cand.End.After(span.End) {
			span.End = cand.End
		}
	}

	buffer := time.Duration(bufferMinutes) * time.Minute

	// Запись, заканчивающаяся до окна, всё равно может задеть его своим буфером
	lookup := span.Expand(buffer)
	appointments, err := c.appointmentRepo.ListActiveByEmployee(ctx, employeeID, lookup.Start, lookup.End)
	if err != nil {
		return nil, fmt.Errorf("%w: FreeWindows - appointments: %w", ErrInternal, err)
	}

	busy := make([]domain.Interval, 0, len(appointments))
	for _, a := range appointments {
		if !a.OccupiesCalendar() {
			continue
		}
		busy = append(busy, a.Interval().Expand(buffer))
	}

	free := domain.SubtractIntervals(candidates, busy)

	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(granularityMinutes) * time.Minute

	starts := make([]time.Time, 0)
	for _, w := range free {
		for s := alignUp(w.Start, step, c.location); !s.Add(duration).After(w.End); s = s.Add(step) {
			starts = append(starts, s)
		}
	}
	return starts, nil
}

// IsFree сообщает, входит ли start в результат FreeWindows
func IsFree(starts []time.Time, start time.Time) bool {
	for _, s := range starts {
		if s.Equal(start) {
			return true
		}
	}
	return false
}
