package update_booking_policy

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/service/policy/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPolicy      = "некорректные параметры политики бронирования"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonId}/booking-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/booking-policy - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.UpsertPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/booking-policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID

	result, err := h.service.UpsertPolicy(r.Context(), &req)
	if err != nil {
		if errors.Is(err, policy.ErrInvalidInput) {
			h.logger.Warn("PUT /salons/{id}/booking-policy - Invalid policy: salon_id=%d, error=%v", salonID, err)
			handlers.RespondUnprocessable(w, msgInvalidPolicy)
			return
		}
		h.logger.Error("PUT /salons/{id}/booking-policy - Failed to update policy: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /salons/{id}/booking-policy - Policy updated: salon_id=%d, granularity=%d, buffer=%d",
		salonID, result.SlotGranularityMinutes, result.BufferMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
