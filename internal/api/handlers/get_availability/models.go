package get_availability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	EmployeeID         int64    `json:"employeeId"`
	ServiceID          int64    `json:"serviceId"`
	DurationMinutes    int      `json:"durationMinutes"`
	GranularityMinutes int      `json:"granularityMinutes"`
	Slots              []string `json:"slots"` // RFC3339 в часовом поясе салона
}

// ToUseCaseRequest конвертирует query параметры в модель use case
// Даты интерпретируются в часовом поясе салона
func ToUseCaseRequest(employeeIDStr, serviceIDStr, fromStr, toStr string, loc *time.Location) (*getAvailability.Request, error) {
	employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("employeeId: %w", err)
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("serviceId: %w", err)
	}

	from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}

	// to необязателен: по умолчанию один день
	to := from
	if toStr != "" {
		to, err = time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
	}

	return &getAvailability.Request{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		From:       from,
		To:         to,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response, loc *time.Location) *AvailabilityResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.In(loc).Format(time.RFC3339))
	}

	return &AvailabilityResponse{
		EmployeeID:         resp.EmployeeID,
		ServiceID:          resp.ServiceID,
		DurationMinutes:    resp.DurationMinutes,
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}
