package get_employee_appointments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var msk = time.FixedZone("MSK", 3*60*60)

func TestToServiceRequest_DateCoversSalonDay(t *testing.T) {
	req, err := ToServiceRequest(7, "2025-10-01T00:00:00Z", "", "2025-10-20", "confirmed", "true", msk)

	require.NoError(t, err)
	assert.True(t, req.From.Equal(time.Date(2025, 10, 20, 0, 0, 0, 0, msk)))
	assert.True(t, req.To.Equal(time.Date(2025, 10, 21, 0, 0, 0, 0, msk)))
	require.NotNil(t, req.Status)
	assert.Equal(t, "confirmed", *req.Status)
	assert.True(t, req.IncludeInactive)
}

func TestToServiceRequest_FromTo(t *testing.T) {
	req, err := ToServiceRequest(7, "2025-10-20T09:00:00+03:00", "2025-10-20T18:00:00+03:00", "", "", "", msk)

	require.NoError(t, err)
	assert.Equal(t, 9*time.Hour, req.To.Sub(*req.From))
	assert.Nil(t, req.Status)
	assert.False(t, req.IncludeInactive)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	_, err := ToServiceRequest(7, "", "", "20-10-2025", "", "", msk)
	assert.Error(t, err)

	_, err = ToServiceRequest(7, "yesterday", "", "", "", "", msk)
	assert.Error(t, err)

	_, err = ToServiceRequest(7, "", "", "", "", "maybe", msk)
	assert.Error(t, err)
}
