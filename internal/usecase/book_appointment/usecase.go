package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalog"
	directoryClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/notifications"
	"github.com/m04kA/SMC-AppointmentService/pkg/pgerrors"
	"github.com/m04kA/SMC-AppointmentService/pkg/retry"
)

var tracer = otel.Tracer("smc.appointments.book")

// UseCase use case для бронирования записи к сотруднику
type UseCase struct {
	appointmentRepo AppointmentRepository
	directory       DirectoryClient
	catalog         CatalogClient
	policies        PolicyResolver
	generator       WindowGenerator
	checker         ConflictChecker
	txManager       TransactionManager
	cache           CacheInvalidator
	publisher       NotificationPublisher
	metrics         Metrics
	retryConfig     retry.Config
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	directory DirectoryClient,
	catalog CatalogClient,
	policies PolicyResolver,
	generator WindowGenerator,
	checker ConflictChecker,
	txManager TransactionManager,
	cache CacheInvalidator,
	publisher NotificationPublisher,
	metrics Metrics,
	retryConfig retry.Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		directory:       directory,
		catalog:         catalog,
		policies:        policies,
		generator:       generator,
		checker:         checker,
		txManager:       txManager,
		cache:           cache,
		publisher:       publisher,
		metrics:         metrics,
		retryConfig:     retryConfig,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case бронирования
// Проверка свободного слота и вставка выполняются в одной сериализуемой транзакции
// под блокировкой сотрудника; конфликт сериализации повторяется с backoff
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.book")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("employee.id", req.EmployeeID),
		attribute.Int64("service.id", req.ServiceID),
		attribute.Int64("customer.id", req.CustomerID),
	)

	appointment, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		uc.metrics.IncBooking(bookingResult(err))
		return nil, err
	}

	uc.metrics.IncBooking("success")
	span.SetAttributes(attribute.Int64("appointment.id", appointment.ID))
	return appointment, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	loc := uc.generator.Location()

	uc.logger.Info("BookAppointment: customer=%d, employee=%d, service=%d, start=%s",
		req.CustomerID, req.EmployeeID, req.ServiceID, req.Start.In(loc).Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}
	channel := req.Channel
	if channel == "" {
		channel = domain.ChannelCustomer
	}

	// 2. Сотрудник
	employee, err := uc.directory.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrEmployeeNotFound) {
			uc.logger.Warn("BookAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("BookAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		uc.logger.Warn("BookAppointment: employee id=%d is inactive", req.EmployeeID)
		return nil, ErrEmployeeInactive
	}

	// 3. Услуга: длительность и цена фиксируются в записи на момент бронирования
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("BookAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("BookAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("BookAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}
	if service.SalonID != employee.SalonID {
		uc.logger.Warn("BookAppointment: service id=%d is not offered by salon=%d", service.ID, employee.SalonID)
		return nil, ErrServiceNotInSalon
	}

	// 4. Политика салона: минимальное время до записи и горизонт бронирования
	policy, _, err := uc.policies.Resolve(ctx, employee.SalonID)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to resolve policy for salon=%d: %v", employee.SalonID, err)
		return nil, fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
	}
	if err := policy.CheckStart(req.Start, uc.timeProvider.Now(), loc); err != nil {
		uc.logger.Warn("BookAppointment: start rejected by policy: %v", err)
		return nil, mapPolicyError(err)
	}

	duration := service.DurationMinutes
	candidate := &domain.Appointment{
		SalonID:         employee.SalonID,
		CustomerID:      req.CustomerID,
		SalonEmployeeID: req.EmployeeID,
		ServiceID:       req.ServiceID,
		ScheduledStart:  req.Start,
		ScheduledEnd:    req.Start.Add(durationOf(duration)),
		Status:          initialStatus(channel),
		Channel:         channel,
		ServicePrice:    service.Price,
	}

	// 5. Проверка и вставка в сериализуемой транзакции с повтором при конфликте
	var result *domain.Appointment
	attempt := 0
	err = retry.Do(ctx, uc.retryConfig, pgerrors.IsTransient, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			uc.logger.Warn("BookAppointment: retrying after transient conflict, attempt %d", attempt)
		}

		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 5.1. Блокировка календаря сотрудника до конца транзакции
			if err := uc.appointmentRepo.LockEmployee(txCtx, req.EmployeeID); err != nil {
				return fmt.Errorf("%w: failed to lock employee: %w", ErrInternal, err)
			}

			// 5.2. Повторный расчёт свободных слотов на день записи
			windows, err := uc.generator.GenerateWindows(txCtx, req.EmployeeID,
				availability.Day(req.Start.In(loc)), policy.SlotGranularityMinutes)
			if err != nil {
				return fmt.Errorf("%w: failed to generate windows: %w", ErrInternal, err)
			}

			starts, err := uc.checker.FreeWindows(txCtx, req.EmployeeID, windows,
				duration, policy.BufferMinutes, policy.SlotGranularityMinutes)
			if err != nil {
				return fmt.Errorf("%w: failed to compute free windows: %w", ErrInternal, err)
			}

			if !availability.IsFree(starts, req.Start) {
				return ErrSlotUnavailable
			}

			// 5.3. Создание записи
			a := *candidate
			created, err := uc.appointmentRepo.Create(txCtx, &a)
			if err != nil {
				if errors.Is(err, appointmentRepo.ErrSlotConflict) {
					return ErrSlotUnavailable
				}
				return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
			}

			result = created
			return nil
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotUnavailable):
			uc.logger.Warn("BookAppointment: slot %s is not available for employee=%d",
				req.Start.In(loc).Format("2006-01-02 15:04"), req.EmployeeID)
			return nil, ErrSlotUnavailable
		case pgerrors.IsTransient(err):
			uc.logger.Error("BookAppointment: giving up after %d attempts: %v", attempt, err)
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("BookAppointment: %v", err)
			return nil, err
		default:
			uc.logger.Error("BookAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("BookAppointment: created appointment id=%d (%s) for employee=%d",
		result.ID, result.Status, result.SalonEmployeeID)

	// 6. После фиксации: сброс кэша слотов и уведомление
	if err := uc.cache.Invalidate(ctx, result.SalonEmployeeID); err != nil {
		uc.logger.Warn("BookAppointment: failed to invalidate availability cache for employee=%d: %v",
			result.SalonEmployeeID, err)
	}
	uc.publisher.Publish(ctx, result, notifications.EventCreated)

	return result, nil
}

func bookingResult(err error) string {
	switch {
	case errors.Is(err, ErrSlotUnavailable):
		return "conflict"
	case errors.Is(err, ErrTransient):
		return "transient"
	case errors.Is(err, ErrInternal):
		return "error"
	default:
		return "rejected"
	}
}
