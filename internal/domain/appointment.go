package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// BookingChannel describes who initiated the booking
type BookingChannel string

const (
	ChannelCustomer   BookingChannel = "customer"
	ChannelManagement BookingChannel = "management"
)

// ActorRole role of whoever requested a status change
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleEmployee ActorRole = "employee"
	RoleManager  ActorRole = "manager"
	RoleSystem   ActorRole = "system"
)

// Actor identifies the initiator of an operation
type Actor struct {
	ID   int64
	Role ActorRole
}

// Appointment represents a booked service slot of an employee
type Appointment struct {
	ID              int64
	SalonID         int64
	CustomerID      int64
	SalonEmployeeID int64
	ServiceID       int64
	ScheduledStart  time.Time
	ScheduledEnd    time.Time
	Status          AppointmentStatus
	Channel         BookingChannel

	// Snapshot of the service price at booking time, used as the commission sale amount
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the half-open [start, end) interval occupied by the appointment
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.ScheduledStart, End: a.ScheduledEnd}
}

// OccupiesCalendar returns true while the appointment still blocks the employee's time
func (a *Appointment) OccupiesCalendar() bool {
	return a.Status.IsNonTerminal()
}

// DurationMinutes returns the snapshotted duration
func (a *Appointment) DurationMinutes() int {
	return int(a.ScheduledEnd.Sub(a.ScheduledStart) / time.Minute)
}

// AppointmentStatusChange audit record of a single transition
type AppointmentStatusChange struct {
	AppointmentID int64
	FromStatus    AppointmentStatus
	ToStatus      AppointmentStatus
	ActorID       int64
	ActorRole     ActorRole
	ChangedAt     time.Time
}

// EmployeeAppointmentsFilter фильтр для получения записей сотрудника
type EmployeeAppointmentsFilter struct {
	EmployeeID      int64              // Обязательный параметр
	From            *time.Time         // Начало периода (по scheduled_end > From)
	To              *time.Time         // Конец периода (по scheduled_start < To)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли завершённые и отменённые записи
}
