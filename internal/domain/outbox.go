package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxKindCommission event asking the commission ledger to record a sale
const OutboxKindCommission = "commission.record"

// OutboxEvent side effect persisted in the same transaction as the state change
// that produced it and delivered afterwards. (AggregateID, Kind) is unique.
type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID int64
	Kind        string
	Payload     json.RawMessage
	Attempts    int
	LastError   *string
	CreatedAt   time.Time
	DeliveredAt *time.Time
}

// CommissionPayload body of a commission.record event
type CommissionPayload struct {
	AppointmentID int64   `json:"appointmentId"`
	EmployeeID    int64   `json:"employeeId"`
	SaleAmount    float64 `json:"saleAmount"`
}

// NewCommissionEvent builds the commission event for a completed appointment
func NewCommissionEvent(a *Appointment) (*OutboxEvent, error) {
	payload, err := json.Marshal(CommissionPayload{
		AppointmentID: a.ID,
		EmployeeID:    a.SalonEmployeeID,
		SaleAmount:    a.ServicePrice,
	})
	if err != nil {
		return nil, err
	}
	return &OutboxEvent{
		ID:          uuid.New(),
		AggregateID: a.ID,
		Kind:        OutboxKindCommission,
		Payload:     payload,
	}, nil
}
