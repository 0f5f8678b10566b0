package transition_appointment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/retry"
)

var tracer = otel.Tracer("smc.appointments.transition")

// UseCase use case смены статуса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	outboxRepo      OutboxRepository
	deliverer       CommissionDeliverer
	txManager       TransactionManager
	cache           CacheInvalidator
	publisher       NotificationPublisher
	metrics         Metrics
	retryConfig     retry.Config
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	outboxRepo OutboxRepository,
	deliverer CommissionDeliverer,
	txManager TransactionManager,
	cache CacheInvalidator,
	publisher NotificationPublisher,
	metrics Metrics,
	retryConfig retry.Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		outboxRepo:      outboxRepo,
		deliverer:       deliverer,
		txManager:       txManager,
		cache:           cache,
		publisher:       publisher,
		metrics:         metrics,
		retryConfig:     retryConfig,
		logger:          logger,
	}
}

// Execute выполняет переход записи в целевой статус
// Статус, аудит и событие комиссии записываются в одной транзакции;
// комиссия и уведомление отправляются после фиксации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.transition")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("appointment.id", req.AppointmentID),
		attribute.String("appointment.target", req.Target),
		attribute.String("actor.role", string(req.Actor.Role)),
	)

	appointment, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		uc.metrics.IncTransition(req.Target, transitionResult(err))
		return nil, err
	}

	uc.metrics.IncTransition(req.Target, "success")
	return appointment, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("TransitionAppointment: appointment=%d, target=%s, actor=%d (%s)",
		req.AppointmentID, req.Target, req.Actor.ID, req.Actor.Role)

	// 1. Валидация входных данных
	target, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Смена статуса в сериализуемой транзакции с повтором при конфликте
	var (
		result     *domain.Appointment
		commission *domain.OutboxEvent
	)
	err = retry.Do(ctx, uc.retryConfig, retryable, func(ctx context.Context) error {
		commission = nil

		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 2.1. Сначала блокировка календаря сотрудника, затем строки записи
			employeeID, err := uc.appointmentRepo.GetEmployeeID(txCtx, req.AppointmentID)
			if err != nil {
				if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
					return ErrAppointmentNotFound
				}
				return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
			}

			if err := uc.appointmentRepo.LockEmployee(txCtx, employeeID); err != nil {
				return fmt.Errorf("%w: failed to lock employee: %w", ErrInternal, err)
			}

			// 2.2. Чтение записи с блокировкой строки и проверка по таблице переходов
			current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
			if err != nil {
				if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
					return ErrAppointmentNotFound
				}
				return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
			}

			if !domain.CanTransition(current.Status, target) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target)
			}

			// 2.3. Обновление статуса с проверкой предыдущего значения
			updated, err := uc.appointmentRepo.UpdateStatus(txCtx, current.ID, current.Status, target)
			if err != nil {
				if errors.Is(err, appointmentRepo.ErrStatusConflict) {
					return err
				}
				return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
			}

			// 2.4. Аудит
			if err := uc.appointmentRepo.InsertStatusChange(txCtx, &domain.AppointmentStatusChange{
				AppointmentID: current.ID,
				FromStatus:    current.Status,
				ToStatus:      target,
				ActorID:       req.Actor.ID,
				ActorRole:     req.Actor.Role,
			}); err != nil {
				return fmt.Errorf("%w: failed to write status change: %w", ErrInternal, err)
			}

			// 2.5. Событие комиссии для завершённой записи
			if target == domain.StatusCompleted {
				event, err := domain.NewCommissionEvent(updated)
				if err != nil {
					return fmt.Errorf("%w: failed to build commission event: %v", ErrInternal, err)
				}
				inserted, err := uc.outboxRepo.Insert(txCtx, event)
				if err != nil {
					return fmt.Errorf("%w: failed to enqueue commission: %w", ErrInternal, err)
				}
				if inserted {
					commission = event
				} else {
					uc.logger.Warn("TransitionAppointment: commission for appointment id=%d already enqueued", current.ID)
				}
			}

			result = updated
			return nil
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			uc.logger.Warn("TransitionAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, ErrInvalidTransition):
			uc.logger.Warn("TransitionAppointment: %v", err)
			return nil, err
		case retryable(err):
			uc.logger.Error("TransitionAppointment: giving up on appointment id=%d: %v", req.AppointmentID, err)
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("TransitionAppointment: %v", err)
			return nil, err
		default:
			uc.logger.Error("TransitionAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("TransitionAppointment: appointment id=%d is now %s", result.ID, result.Status)

	// 3. Передача комиссии; при ошибке событие остаётся в outbox для фонового воркера
	if commission != nil {
		if err := uc.deliverer.Deliver(ctx, commission); err != nil {
			uc.logger.Warn("TransitionAppointment: commission for appointment id=%d left pending: %v", result.ID, err)
		}
	}

	// 4. Завершённая или отменённая запись освобождает время сотрудника
	if target.IsTerminal() {
		if err := uc.cache.Invalidate(ctx, result.SalonEmployeeID); err != nil {
			uc.logger.Warn("TransitionAppointment: failed to invalidate availability cache for employee=%d: %v",
				result.SalonEmployeeID, err)
		}
	}

	// 5. Уведомление; ошибка не откатывает смену статуса
	uc.publisher.Publish(ctx, result, target.EventKind())

	return result, nil
}

func transitionResult(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		return "invalid"
	case errors.Is(err, ErrAppointmentNotFound):
		return "not_found"
	case errors.Is(err, ErrTransient):
		return "transient"
	case errors.Is(err, ErrInternal):
		return "error"
	default:
		return "rejected"
	}
}
