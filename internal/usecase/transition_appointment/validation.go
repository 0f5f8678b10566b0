package transition_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/pgerrors"
)

// validateRequest валидирует входные данные и возвращает целевой статус
func validateRequest(req *Request) (domain.AppointmentStatus, error) {
	if req.AppointmentID <= 0 {
		return "", fmt.Errorf("%w: appointmentId must be positive", ErrInvalidInput)
	}

	target, err := domain.ParseAppointmentStatus(req.Target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Actor.ID <= 0 {
		return "", fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	return target, nil
}

// retryable конфликт сериализации либо параллельная смена статуса той же записи
func retryable(err error) bool {
	return pgerrors.IsTransient(err) || errors.Is(err, appointmentRepo.ErrStatusConflict)
}
