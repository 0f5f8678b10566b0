package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/policy/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestGetPolicy_DefaultsWhenAbsent(t *testing.T) {
	svc := NewService(memory.NewPolicyStore(), logger.Nop())

	resp, err := svc.GetPolicy(context.Background(), 3)

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultSlotGranularityMinutes, resp.SlotGranularityMinutes)
	assert.Nil(t, resp.UpdatedAt)
}

func TestUpsertPolicy(t *testing.T) {
	svc := NewService(memory.NewPolicyStore(), logger.Nop())
	ctx := context.Background()

	_, err := svc.UpsertPolicy(ctx, &models.UpsertPolicyRequest{
		SalonID:                3,
		SlotGranularityMinutes: ptr.Ptr(30),
		BufferMinutes:          ptr.Ptr(10),
	})
	require.NoError(t, err)

	resp, err := svc.GetPolicy(ctx, 3)
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, 30, resp.SlotGranularityMinutes)
	assert.Equal(t, 10, resp.BufferMinutes)
	assert.Equal(t, 0, resp.AdvanceBookingDays)
	assert.NotNil(t, resp.UpdatedAt)
}

func TestUpsertPolicy_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpsertPolicyRequest
	}{
		{name: "granularity too small", req: models.UpsertPolicyRequest{SalonID: 3, SlotGranularityMinutes: ptr.Ptr(1)}},
		{name: "negative buffer", req: models.UpsertPolicyRequest{SalonID: 3, BufferMinutes: ptr.Ptr(-5)}},
		{name: "advance too far", req: models.UpsertPolicyRequest{SalonID: 3, AdvanceBookingDays: ptr.Ptr(1000)}},
		{name: "negative notice", req: models.UpsertPolicyRequest{SalonID: 3, MinBookingNoticeMinutes: ptr.Ptr(-1)}},
		{name: "missing salon", req: models.UpsertPolicyRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(memory.NewPolicyStore(), logger.Nop())
			req := tt.req

			_, err := svc.UpsertPolicy(context.Background(), &req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
