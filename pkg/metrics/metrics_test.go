package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("appointments", prometheus.NewRegistry())

	m.IncBooking("success")
	m.IncBooking("success")
	m.IncBooking("slot_unavailable")
	m.IncTransition("completed", "success")
	m.ObserveDBQuery("query", 5*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("appointments", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("appointments", "slot_unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("appointments", "completed", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBErrorsTotal.WithLabelValues("appointments", "query")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBooking("success")
		m.IncTransition("confirmed", "success")
		m.IncNotificationFailed("appointment.created")
		m.IncReminderSent()
		m.IncAvailabilityCache("hit")
		m.ObserveHTTPRequest("GET", "/api/v1/availability", "200", time.Millisecond)
		m.SetDBPoolStats(1, 1, 0)
	})
	assert.Equal(t, "", m.ServiceName())
}
