package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Notify(ctx context.Context, n notifier.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.Called(n).Error(0)
}

type countingMetrics struct {
	failed map[string]int
}

func (m *countingMetrics) IncNotificationFailed(event string) {
	m.failed[event]++
}

func TestPublisher_Publish(t *testing.T) {
	dispatcher := &mockDispatcher{}
	metrics := &countingMetrics{failed: map[string]int{}}
	p := NewPublisher(dispatcher, metrics, 0, logger.Nop())
	a := &domain.Appointment{ID: 42, CustomerID: 100, SalonEmployeeID: 7}

	dispatcher.On("Notify", notifier.Notification{
		AppointmentID: 42, CustomerID: 100, EmployeeID: 7, EventKind: EventCreated,
	}).Return(nil).Once()
	dispatcher.On("Notify", mock.Anything).Return(errors.New("dispatcher down")).Once()

	assert.True(t, p.Publish(context.Background(), a, EventCreated))
	assert.False(t, p.Publish(context.Background(), a, "appointment.confirmed"))
	assert.Equal(t, 1, metrics.failed["appointment.confirmed"])
	dispatcher.AssertExpectations(t)
}

func TestPublisher_IgnoresCallerCancellation(t *testing.T) {
	dispatcher := &mockDispatcher{}
	p := NewPublisher(dispatcher, &countingMetrics{failed: map[string]int{}}, 0, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dispatcher.On("Notify", mock.Anything).Return(nil).Once()

	assert.True(t, p.Publish(ctx, &domain.Appointment{ID: 1}, EventCreated))
}
