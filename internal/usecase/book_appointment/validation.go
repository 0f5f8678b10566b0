package book_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeId must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerId must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	switch req.Channel {
	case "", domain.ChannelCustomer, domain.ChannelManagement:
	default:
		return fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, req.Channel)
	}

	return nil
}

// mapPolicyError переводит ошибки политики салона в ошибки use case
func mapPolicyError(err error) error {
	switch {
	case errors.Is(err, domain.ErrTooFarInAdvance):
		return fmt.Errorf("%w: %v", ErrTooFarInAdvance, err)
	case errors.Is(err, domain.ErrStartInPast), errors.Is(err, domain.ErrTooLateToBook):
		return fmt.Errorf("%w: %v", ErrTooLateToBook, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// initialStatus статус новой записи: записи администратора подтверждены сразу
func initialStatus(channel domain.BookingChannel) domain.AppointmentStatus {
	if channel == domain.ChannelManagement {
		return domain.StatusConfirmed
	}
	return domain.StatusPending
}

func durationOf(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}
