package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusInProgress, StatusNoShow, true},

		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusNoShow, false},
		{StatusInProgress, StatusCancelled, false},
		{StatusInProgress, StatusConfirmed, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	for _, s := range TerminalStatuses {
		assert.True(t, s.IsTerminal())
		assert.Empty(t, AllowedTransitions(s))
	}
	for _, s := range NonTerminalStatuses {
		assert.True(t, s.IsNonTerminal())
		assert.NotEmpty(t, AllowedTransitions(s))
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	s, err := ParseAppointmentStatus("no_show")
	assert.NoError(t, err)
	assert.Equal(t, StatusNoShow, s)

	_, err = ParseAppointmentStatus("cancelled_by_user")
	assert.Error(t, err)
}

func TestAppointmentStatus_EventKind(t *testing.T) {
	assert.Equal(t, "appointment.completed", StatusCompleted.EventKind())
}
