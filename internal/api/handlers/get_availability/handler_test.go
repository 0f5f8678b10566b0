package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

var msk = time.FixedZone("MSK", 3*60*60)

type fakeUseCase struct {
	got *getAvailability.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailability.Response{
		EmployeeID:         req.EmployeeID,
		ServiceID:          req.ServiceID,
		DurationMinutes:    30,
		GranularityMinutes: 15,
		Slots: []time.Time{
			time.Date(2025, 10, 20, 6, 0, 0, 0, time.UTC),
			time.Date(2025, 10, 20, 6, 15, 0, 0, time.UTC),
		},
	}, nil
}

func serve(uc *fakeUseCase, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+query, nil)
	rec := httptest.NewRecorder()
	NewHandler(uc, msk, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "employeeId=7&serviceId=11&from=2025-10-20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.got.From.Equal(time.Date(2025, 10, 20, 0, 0, 0, 0, msk)))
	assert.True(t, uc.got.To.Equal(uc.got.From), "to defaults to a single day")

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2025-10-20T09:00:00+03:00", "2025-10-20T09:15:00+03:00"}, resp.Slots)
	assert.Equal(t, 15, resp.GranularityMinutes)
}

func TestHandle_Range(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "employeeId=7&serviceId=11&from=2025-10-20&to=2025-10-22")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.got.To.Equal(time.Date(2025, 10, 22, 0, 0, 0, 0, msk)))
}

func TestHandle_BadParameters(t *testing.T) {
	for _, query := range []string{
		"serviceId=11&from=2025-10-20",
		"employeeId=7&serviceId=x&from=2025-10-20",
		"employeeId=7&serviceId=11&from=20.10.2025",
		"employeeId=7&serviceId=11&from=2025-10-20&to=tomorrow",
	} {
		uc := &fakeUseCase{}
		rec := serve(uc, query)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
		assert.Nil(t, uc.got, query)
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: getAvailability.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: getAvailability.ErrEmployeeNotFound, wantStatus: http.StatusNotFound},
		{err: getAvailability.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{err: getAvailability.ErrEmployeeInactive, wantStatus: http.StatusUnprocessableEntity},
		{err: getAvailability.ErrServiceInactive, wantStatus: http.StatusUnprocessableEntity},
		{err: getAvailability.ErrServiceNotInSalon, wantStatus: http.StatusUnprocessableEntity},
		{err: getAvailability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, "employeeId=7&serviceId=11&from=2025-10-20")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
