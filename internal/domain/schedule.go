package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	ErrInvalidWeekday   = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidTimeRange = errors.New("close time must be later than open time")
	ErrInvalidDateRange = errors.New("date end must not be earlier than date start")
	ErrInvalidRuleKind  = errors.New("unknown availability rule kind")
	ErrMissingHours     = errors.New("open and close time are required")
)

// WorkingHours weekly availability template of an employee for one weekday
type WorkingHours struct {
	ID         int64
	EmployeeID int64
	Weekday    int // 0 = Sunday ... 6 = Saturday, as time.Weekday
	IsWorking  bool
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the row the way it must hold at write time
func (w *WorkingHours) Validate() error {
	if w.Weekday < 0 || w.Weekday > 6 {
		return fmt.Errorf("%w: got %d", ErrInvalidWeekday, w.Weekday)
	}
	if !w.IsWorking {
		return nil
	}
	return validateHours(w.OpenTime, w.CloseTime)
}

// RuleKind kind of a date-scoped availability override
type RuleKind string

const (
	RuleKindBlock         RuleKind = "block"
	RuleKindOverrideHours RuleKind = "override_hours"
)

func (k RuleKind) IsValid() bool {
	return k == RuleKindBlock || k == RuleKindOverrideHours
}

// AvailabilityRule date-scoped override of the weekly template (vacation, day off, extra hours)
type AvailabilityRule struct {
	ID         int64
	EmployeeID int64
	DateStart  time.Time // inclusive, date only
	DateEnd    time.Time // inclusive, date only
	Kind       RuleKind
	OpenTime   types.TimeString // OVERRIDE_HOURS only
	CloseTime  types.TimeString // OVERRIDE_HOURS only
	Reason     *string
	CreatedAt  time.Time
}

// Validate checks the rule the way it must hold at write time
func (r *AvailabilityRule) Validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRuleKind, r.Kind)
	}
	if CivilDate(r.DateEnd) < CivilDate(r.DateStart) {
		return ErrInvalidDateRange
	}
	if r.Kind == RuleKindOverrideHours {
		return validateHours(r.OpenTime, r.CloseTime)
	}
	return nil
}

// Covers reports whether the calendar date of day is within [DateStart, DateEnd]
func (r *AvailabilityRule) Covers(day time.Time) bool {
	d := CivilDate(day)
	return d >= CivilDate(r.DateStart) && d <= CivilDate(r.DateEnd)
}

// Intersects reports whether two rules cover at least one common date
func (r *AvailabilityRule) Intersects(other *AvailabilityRule) bool {
	return CivilDate(r.DateStart) <= CivilDate(other.DateEnd) &&
		CivilDate(other.DateStart) <= CivilDate(r.DateEnd)
}

// CivilDate encodes the calendar date of t (in t's location) as YYYYMMDD
func CivilDate(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func validateHours(open, closeAt types.TimeString) error {
	if open.IsZero() || closeAt.IsZero() {
		return ErrMissingHours
	}
	if err := open.Validate(); err != nil {
		return err
	}
	if err := closeAt.Validate(); err != nil {
		return err
	}
	if !open.Before(closeAt) {
		return fmt.Errorf("%w: open=%s, close=%s", ErrInvalidTimeRange, open, closeAt)
	}
	return nil
}
