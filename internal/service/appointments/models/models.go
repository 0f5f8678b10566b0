package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// ListByCustomerRequest запрос на получение записей клиента
type ListByCustomerRequest struct {
	CustomerID int64
	Status     *string // Фильтр по статусу (опционально)
}

// ListByEmployeeRequest запрос на получение записей сотрудника с фильтрацией
type ListByEmployeeRequest struct {
	EmployeeID      int64
	From            *time.Time // Начало периода (опционально)
	To              *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить завершённые и отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListByEmployeeRequest) ToDomainFilter() (domain.EmployeeAppointmentsFilter, error) {
	filter := domain.EmployeeAppointmentsFilter{
		EmployeeID:      r.EmployeeID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	SalonID         int64     `json:"salonId"`
	CustomerID      int64     `json:"customerId"`
	SalonEmployeeID int64     `json:"salonEmployeeId"`
	ServiceID       int64     `json:"serviceId"`
	ScheduledStart  time.Time `json:"scheduledStart"`
	ScheduledEnd    time.Time `json:"scheduledEnd"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Channel         string    `json:"channel"`
	ServicePrice    float64   `json:"servicePrice"`

	// Допустимые переходы из текущего статуса
	AllowedTransitions []string `json:"allowedTransitions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                 a.ID,
		SalonID:            a.SalonID,
		CustomerID:         a.CustomerID,
		SalonEmployeeID:    a.SalonEmployeeID,
		ServiceID:          a.ServiceID,
		ScheduledStart:     a.ScheduledStart,
		ScheduledEnd:       a.ScheduledEnd,
		DurationMinutes:    a.DurationMinutes(),
		Status:             string(a.Status),
		Channel:            string(a.Channel),
		ServicePrice:       a.ServicePrice,
		AllowedTransitions: domain.StatusStrings(domain.AllowedTransitions(a.Status)),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}
