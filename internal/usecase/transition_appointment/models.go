package transition_appointment

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	AppointmentID int64
	Target        string
	Actor         domain.Actor
}
