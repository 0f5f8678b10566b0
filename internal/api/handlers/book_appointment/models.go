package book_appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

var errCustomerMismatch = errors.New("customer id does not match user")

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	EmployeeID int64  `json:"employeeId"`
	ServiceID  int64  `json:"serviceId"`
	CustomerID int64  `json:"customerId,omitempty"` // Для клиента берётся из X-User-ID
	Start      string `json:"start"`                // RFC3339
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
// Записи, созданные сотрудником или менеджером, идут через канал management
func (r *BookAppointmentRequest) ToUseCaseRequest(actor domain.Actor) (*bookAppointment.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	req := &bookAppointment.Request{
		EmployeeID: r.EmployeeID,
		ServiceID:  r.ServiceID,
		CustomerID: r.CustomerID,
		Start:      start,
		Channel:    domain.ChannelCustomer,
	}

	switch actor.Role {
	case domain.RoleCustomer:
		if req.CustomerID == 0 {
			req.CustomerID = actor.ID
		}
		if req.CustomerID != actor.ID {
			return nil, fmt.Errorf("%w: customerId=%d, user=%d", errCustomerMismatch, req.CustomerID, actor.ID)
		}
	case domain.RoleEmployee, domain.RoleManager:
		req.Channel = domain.ChannelManagement
	}

	return req, nil
}
