package create_availability_rule

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	got *models.CreateRuleRequest
	err error
}

func (f *fakeService) CreateRule(_ context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.RuleResponse{ID: 1, EmployeeID: req.EmployeeID, DateStart: req.DateStart, DateEnd: req.DateEnd, Kind: req.Kind}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/employees/{employeeId}/availability-rules", NewHandler(svc, logger.Nop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/employees/7/availability-rules", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, `{"dateStart":"2025-10-20","dateEnd":"2025-10-21","kind":"block","reason":"отпуск"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), svc.got.EmployeeID)
	require.NotNil(t, svc.got.Reason)
	assert.Equal(t, "отпуск", *svc.got.Reason)
}

func TestHandle_IntersectingRule(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: dates intersect rule id=3", schedule.ErrInvalidConfiguration)}

	rec := serve(svc, `{"dateStart":"2025-10-20","dateEnd":"2025-10-21","kind":"block"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, `{"dateStart":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got)
}
