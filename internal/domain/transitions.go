package domain

import "fmt"

// transitions permitted status changes; statuses absent as keys are terminal
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusNoShow},
}

// NonTerminalStatuses statuses that still occupy the employee's calendar
var NonTerminalStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses statuses that permit no further transitions
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// CanTransition reports whether from -> to is in the transition table
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns a copy of the targets reachable from status
func AllowedTransitions(from AppointmentStatus) []AppointmentStatus {
	return append([]AppointmentStatus(nil), transitions[from]...)
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

func (s AppointmentStatus) IsNonTerminal() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

// EventKind notification event name for entering this status
func (s AppointmentStatus) EventKind() string {
	return "appointment." + string(s)
}

// ParseAppointmentStatus parses a status string
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
	return status, nil
}

// StatusStrings converts statuses for SQL filters
func StatusStrings(statuses []AppointmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
