package delete_availability_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
)

const (
	msgInvalidIDs   = "некорректный ID сотрудника или правила"
	msgRuleNotFound = "правило доступности не найдено"
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

// Handle DELETE /api/v1/employees/{employeeId}/availability-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}
	ruleID, err := handlers.PathInt64(r, "ruleId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidIDs)
		return
	}

	if err := h.service.DeleteRule(r.Context(), employeeID, ruleID); err != nil {
		if errors.Is(err, schedule.ErrRuleNotFound) {
			h.logger.Warn("DELETE /employees/{id}/availability-rules/{ruleId} - Rule not found: employee_id=%d, rule_id=%d",
				employeeID, ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)
			return
		}
		h.logger.Error("DELETE /employees/{id}/availability-rules/{ruleId} - Failed to delete rule: rule_id=%d, error=%v", ruleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /employees/{id}/availability-rules/{ruleId} - Rule deleted: employee_id=%d, rule_id=%d", employeeID, ruleID)
	w.WriteHeader(http.StatusNoContent)
}
