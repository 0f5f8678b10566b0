package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

const (
	msgMissingParams     = "параметры employeeId, serviceId и from обязательны"
	msgInvalidParams     = "некорректные параметры запроса, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidRange      = "некорректный диапазон дат"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgEmployeeInactive  = "сотрудник не принимает записи"
	msgServiceInactive   = "услуга недоступна для записи"
	msgServiceNotInSalon = "услуга не оказывается в салоне сотрудника"
)

type Handler struct {
	useCase  GetAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability
// Query params: employeeId, serviceId, from (YYYY-MM-DD), to (YYYY-MM-DD, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employeeIDStr, serviceIDStr, fromStr := q.Get("employeeId"), q.Get("serviceId"), q.Get("from")

	if employeeIDStr == "" || serviceIDStr == "" || fromStr == "" {
		h.logger.Warn("GET /availability - Missing required parameters")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(employeeIDStr, serviceIDStr, fromStr, q.Get("to"), h.location)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailability.ErrEmployeeNotFound):
			h.logger.Warn("GET /availability - Employee not found: employee_id=%d", useCaseReq.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%d", useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrEmployeeInactive):
			handlers.RespondUnprocessable(w, msgEmployeeInactive)

		case errors.Is(err, getAvailability.ErrServiceInactive):
			handlers.RespondUnprocessable(w, msgServiceInactive)

		case errors.Is(err, getAvailability.ErrServiceNotInSalon):
			handlers.RespondUnprocessable(w, msgServiceNotInSalon)

		default:
			h.logger.Error("GET /availability - Failed to get slots: employee_id=%d, service_id=%d, error=%v",
				useCaseReq.EmployeeID, useCaseReq.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Slots retrieved successfully: employee_id=%d, service_id=%d, slots_count=%d",
		useCaseReq.EmployeeID, useCaseReq.ServiceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
