package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, loc *time.Location) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeId must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if domain.CivilDate(req.To.In(loc)) < domain.CivilDate(req.From.In(loc)) {
		return fmt.Errorf("%w: 'to' must not be earlier than 'from'", ErrInvalidInput)
	}

	dates := availability.DateRange{From: req.From, To: req.To}
	if days := dates.Days(loc); days > domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidInput, days, domain.MaxAvailabilityRangeDays)
	}

	return nil
}

// filterByPolicy оставляет только слоты, которые политика салона разрешает бронировать сейчас
func filterByPolicy(starts []time.Time, policy *domain.BookingPolicy, now time.Time, loc *time.Location) []time.Time {
	out := make([]time.Time, 0, len(starts))
	for _, s := range starts {
		if policy.Accepts(s, now, loc) {
			out = append(out, s)
		}
	}
	return out
}
