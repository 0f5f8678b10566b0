package set_working_hours

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
	msgInvalidConfiguration = "некорректное расписание"
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

// Handle PUT /api/v1/employees/{employeeId}/working-hours
// Заменяет недельный шаблон целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("PUT /employees/{id}/working-hours - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	var req models.SetWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /employees/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.service.SetWorkingHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /employees/{id}/working-hours - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, schedule.ErrInvalidConfiguration):
			h.logger.Warn("PUT /employees/{id}/working-hours - Invalid configuration: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondUnprocessable(w, msgInvalidConfiguration)

		default:
			h.logger.Error("PUT /employees/{id}/working-hours - Failed to set working hours: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /employees/{id}/working-hours - Working hours replaced: employee_id=%d, days=%d", employeeID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
