package create_availability_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

const (
	msgInvalidEmployeeID    = "некорректный ID сотрудника"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidConfiguration = "некорректное правило доступности"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/employees/{employeeId}/availability-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("POST /employees/{id}/availability-rules - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	var req models.CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /employees/{id}/availability-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.service.CreateRule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, schedule.ErrInvalidConfiguration):
			h.logger.Warn("POST /employees/{id}/availability-rules - Invalid rule: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondUnprocessable(w, msgInvalidConfiguration)

		default:
			h.logger.Error("POST /employees/{id}/availability-rules - Failed to create rule: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /employees/{id}/availability-rules - Rule created: id=%d, employee_id=%d, kind=%s",
		result.ID, employeeID, result.Kind)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
