package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

const (
	msgUnauthorized       = "пользователь не авторизован"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные записи"
	msgCustomerMismatch   = "клиент может записать только себя"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgEmployeeInactive   = "сотрудник не принимает записи"
	msgServiceInactive    = "услуга недоступна для записи"
	msgServiceNotInSalon  = "услуга не оказывается в салоне сотрудника"
	msgTooLate            = "слишком поздно для записи на это время"
	msgTooFar             = "запись на это время ещё не открыта"
	msgSlotUnavailable    = "выбранное время уже занято"
	msgTryAgain           = "сервис временно перегружен, повторите запрос"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Unauthorized: actor not found in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid request: user_id=%d, error=%v", actor.ID, err)
		if errors.Is(err, errCustomerMismatch) {
			handlers.RespondForbidden(w, msgCustomerMismatch)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookAppointment.ErrEmployeeNotFound):
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, bookAppointment.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookAppointment.ErrEmployeeInactive):
			handlers.RespondUnprocessable(w, msgEmployeeInactive)

		case errors.Is(err, bookAppointment.ErrServiceInactive):
			handlers.RespondUnprocessable(w, msgServiceInactive)

		case errors.Is(err, bookAppointment.ErrServiceNotInSalon):
			handlers.RespondUnprocessable(w, msgServiceNotInSalon)

		case errors.Is(err, bookAppointment.ErrTooLateToBook):
			handlers.RespondUnprocessable(w, msgTooLate)

		case errors.Is(err, bookAppointment.ErrTooFarInAdvance):
			handlers.RespondUnprocessable(w, msgTooFar)

		case errors.Is(err, bookAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: employee_id=%d, start=%s",
				useCaseReq.EmployeeID, useCaseReq.Start)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, bookAppointment.ErrTransient):
			h.logger.Warn("POST /appointments - Transient failure: employee_id=%d, error=%v", useCaseReq.EmployeeID, err)
			handlers.RespondServiceUnavailable(w, msgTryAgain)

		default:
			h.logger.Error("POST /appointments - Failed to book: employee_id=%d, customer_id=%d, error=%v",
				useCaseReq.EmployeeID, useCaseReq.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, employee_id=%d, status=%s",
		appointment.ID, appointment.SalonEmployeeID, appointment.Status)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(appointment))
}
