package get_employee_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service  AppointmentService
	location *time.Location
	logger   Logger
}

func NewHandler(service AppointmentService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/appointments
// Query params: from, to, date, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /employees/{id}/appointments - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	q := r.URL.Query()
	serviceReq, err := ToServiceRequest(employeeID, q.Get("from"), q.Get("to"), q.Get("date"),
		q.Get("status"), q.Get("includeInactive"), h.location)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByEmployee(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /employees/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /employees/{id}/appointments - Failed to get appointments: employee_id=%d, error=%v",
			employeeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /employees/{id}/appointments - Appointments retrieved: employee_id=%d, count=%d",
		employeeID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
