package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrStartInPast     = errors.New("start is in the past")
	ErrTooLateToBook   = errors.New("start is within the minimum booking notice")
	ErrTooFarInAdvance = errors.New("start is beyond the advance booking limit")
)

// BookingPolicy booking configuration of a salon
type BookingPolicy struct {
	SalonID                 int64
	SlotGranularityMinutes  int
	BufferMinutes           int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultBookingPolicy policy applied when a salon has no configuration
func DefaultBookingPolicy(salonID int64) *BookingPolicy {
	return &BookingPolicy{
		SalonID:                 salonID,
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		BufferMinutes:           DefaultBufferMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p *BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// Buffer returns the idle time kept around existing appointments
func (p *BookingPolicy) Buffer() time.Duration {
	return time.Duration(p.BufferMinutes) * time.Minute
}

// Validate checks policy bounds
func (p *BookingPolicy) Validate() error {
	if p.SlotGranularityMinutes < MinSlotGranularityMinutes || p.SlotGranularityMinutes > MaxSlotGranularityMinutes {
		return fmt.Errorf("slot granularity must be between %d and %d minutes",
			MinSlotGranularityMinutes, MaxSlotGranularityMinutes)
	}
	if p.BufferMinutes < 0 || p.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("buffer must be between 0 and %d minutes", MaxBufferMinutes)
	}
	if p.AdvanceBookingDays < 0 || p.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("advance booking days must be between 0 and %d", MaxAdvanceBookingDays)
	}
	if p.MinBookingNoticeMinutes < 0 || p.MinBookingNoticeMinutes > MaxBookingNoticeMinutes {
		return fmt.Errorf("min booking notice must be between 0 and %d minutes", MaxBookingNoticeMinutes)
	}
	return nil
}

// EarliestStart first start accepted at now
func (p *BookingPolicy) EarliestStart(now time.Time) time.Time {
	return now.Add(time.Duration(p.MinBookingNoticeMinutes) * time.Minute)
}

// LastBookableDate last calendar date (inclusive, in loc) open for booking at now.
// ok is false when the salon has no advance limit.
func (p *BookingPolicy) LastBookableDate(now time.Time, loc *time.Location) (last time.Time, ok bool) {
	if !p.HasAdvanceBookingLimit() {
		return time.Time{}, false
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, p.AdvanceBookingDays), true
}

// CheckStart validates a requested start against notice and advance limits
func (p *BookingPolicy) CheckStart(start, now time.Time, loc *time.Location) error {
	if !start.After(now) {
		return ErrStartInPast
	}
	if start.Before(p.EarliestStart(now)) {
		return fmt.Errorf("%w: at least %d minutes ahead", ErrTooLateToBook, p.MinBookingNoticeMinutes)
	}
	if last, ok := p.LastBookableDate(now, loc); ok && CivilDate(start.In(loc)) > CivilDate(last) {
		return fmt.Errorf("%w: at most %d days ahead", ErrTooFarInAdvance, p.AdvanceBookingDays)
	}
	return nil
}

// Accepts reports whether CheckStart passes
func (p *BookingPolicy) Accepts(start, now time.Time, loc *time.Location) bool {
	return p.CheckStart(start, now, loc) == nil
}
