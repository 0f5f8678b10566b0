package transition_appointment

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Target string `json:"target"` // confirmed, in_progress, completed, cancelled, no_show
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *TransitionRequest) ToUseCaseRequest(appointmentID int64, actor domain.Actor) *transitionAppointment.Request {
	return &transitionAppointment.Request{
		AppointmentID: appointmentID,
		Target:        r.Target,
		Actor:         actor,
	}
}
