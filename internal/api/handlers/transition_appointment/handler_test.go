package transition_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got *transitionAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *transitionAppointment.Request) (*domain.Appointment, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: req.AppointmentID, Status: domain.AppointmentStatus(req.Target)}, nil
}

func serve(uc *fakeUseCase, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/api/v1/appointments/{appointmentId}/status",
		middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.Nop()).Handle))).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "9")
	req.Header.Set(middleware.HeaderUserRole, "employee")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "/api/v1/appointments/42/status", `{"target":"in_progress"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), uc.got.AppointmentID)
	assert.Equal(t, "in_progress", uc.got.Target)
	assert.Equal(t, domain.Actor{ID: 9, Role: domain.RoleEmployee}, uc.got.Actor)
	assert.Contains(t, rec.Body.String(), `"allowedTransitions":["completed","no_show"]`)
}

func TestHandle_InvalidPath(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "/api/v1/appointments/abc/status", `{"target":"confirmed"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: transitionAppointment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: transitionAppointment.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{err: transitionAppointment.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{err: transitionAppointment.ErrTransient, wantStatus: http.StatusServiceUnavailable},
		{err: transitionAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, "/api/v1/appointments/42/status", `{"target":"completed"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
