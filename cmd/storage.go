package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	availabilityCache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/availability"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	availabilityRuleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availabilityrule"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	outboxRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/outbox"
	policyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	workingHoursRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/workinghours"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

type appointmentStore interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetEmployeeID(ctx context.Context, id int64) (int64, error)
	ListByCustomer(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	ListByEmployee(ctx context.Context, filter domain.EmployeeAppointmentsFilter) ([]*domain.Appointment, error)
	ListActiveByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.Appointment, error)
	ListUpcoming(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) (*domain.Appointment, error)
	InsertStatusChange(ctx context.Context, change *domain.AppointmentStatusChange) error
	LockEmployee(ctx context.Context, employeeID int64) error
}

type workingHoursStore interface {
	ListByEmployee(ctx context.Context, employeeID int64) ([]*domain.WorkingHours, error)
	ReplaceForEmployee(ctx context.Context, employeeID int64, hours []*domain.WorkingHours) error
}

type ruleStore interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	ListByEmployee(ctx context.Context, employeeID int64, from, to *time.Time) ([]*domain.AvailabilityRule, error)
	Delete(ctx context.Context, employeeID, ruleID int64) error
}

type policyStore interface {
	GetBySalon(ctx context.Context, salonID int64) (*domain.BookingPolicy, error)
	Upsert(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error)
}

type outboxStore interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) (bool, error)
	FetchPending(ctx context.Context, kind string, limit int) ([]*domain.OutboxEvent, error)
	MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// availabilityCacheStore кэш слотов: Redis либо заглушка
type availabilityCacheStore interface {
	Get(ctx context.Context, key availabilityCache.Key) ([]time.Time, int64, bool, error)
	Set(ctx context.Context, key availabilityCache.Key, version int64, starts []time.Time) error
	Invalidate(ctx context.Context, employeeID int64) error
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage набор хранилищ выбранного драйвера
type storage struct {
	appointments appointmentStore
	workingHours workingHoursStore
	rules        ruleStore
	policies     policyStore
	outbox       outboxStore
	txManager    transactionManager
}

// newPostgresStorage хранилища поверх PostgreSQL; запросы снимаются в метрики через dbmetrics
func newPostgresStorage(db *dbmetrics.DB) *storage {
	return &storage{
		appointments: appointmentRepo.NewRepository(db),
		workingHours: workingHoursRepo.NewRepository(db),
		rules:        availabilityRuleRepo.NewRepository(db),
		policies:     policyRepo.NewRepository(db),
		outbox:       outboxRepo.NewRepository(db),
		txManager:    txmanager.NewTransactionManager(db),
	}
}

// newMemoryStorage хранилища в памяти процесса (локальный запуск и демо)
func newMemoryStorage() *storage {
	return &storage{
		appointments: memory.NewAppointmentStore(),
		workingHours: memory.NewWorkingHoursStore(),
		rules:        memory.NewAvailabilityRuleStore(),
		policies:     memory.NewPolicyStore(),
		outbox:       memory.NewOutboxStore(),
		txManager:    memory.NewTxManager(),
	}
}
