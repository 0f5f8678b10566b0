package transition_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
)

const (
	msgUnauthorized         = "пользователь не авторизован"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStatus        = "некорректный целевой статус"
	msgAppointmentNotFound  = "запись не найдена"
	msgInvalidTransition    = "переход в указанный статус недопустим"
	msgTryAgain             = "сервис временно перегружен, повторите запрос"
)

type Handler struct {
	useCase TransitionAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase TransitionAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/status - Unauthorized: actor not found in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/%d/status - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, actor))
	if err != nil {
		switch {
		case errors.Is(err, transitionAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/%d/status - Invalid input: %v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, transitionAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/%d/status - Appointment not found", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, transitionAppointment.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/%d/status - Invalid transition: target=%s, error=%v", appointmentID, req.Target, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, transitionAppointment.ErrTransient):
			handlers.RespondServiceUnavailable(w, msgTryAgain)

		default:
			h.logger.Error("PATCH /appointments/%d/status - Failed to transition: target=%s, error=%v", appointmentID, req.Target, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%d/status - Status changed: status=%s, actor_id=%d, actor_role=%s",
		appointmentID, appointment.Status, actor.ID, actor.Role)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(appointment))
}
