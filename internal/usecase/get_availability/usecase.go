package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	availabilityCache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/availability"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalog"
	directoryClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/directory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
)

// UseCase use case для получения доступных слотов сотрудника
// Только чтение: транзакции и блокировки не используются
type UseCase struct {
	directory    DirectoryClient
	catalog      CatalogClient
	policies     PolicyResolver
	generator    WindowGenerator
	checker      ConflictChecker
	cache        Cache
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	directory DirectoryClient,
	catalog CatalogClient,
	policies PolicyResolver,
	generator WindowGenerator,
	checker ConflictChecker,
	cache Cache,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		directory:    directory,
		catalog:      catalog,
		policies:     policies,
		generator:    generator,
		checker:      checker,
		cache:        cache,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	loc := uc.generator.Location()

	uc.logger.Info("GetAvailability: employee=%d, service=%d, %s..%s",
		req.EmployeeID, req.ServiceID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, loc); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Сотрудник
	employee, err := uc.directory.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailability: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailability: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		uc.logger.Warn("GetAvailability: employee id=%d is inactive", req.EmployeeID)
		return nil, ErrEmployeeInactive
	}

	// 3. Услуга
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailability: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}
	if service.SalonID != employee.SalonID {
		uc.logger.Warn("GetAvailability: service id=%d belongs to salon=%d, employee id=%d to salon=%d",
			service.ID, service.SalonID, employee.ID, employee.SalonID)
		return nil, ErrServiceNotInSalon
	}

	// 4. Политика бронирования салона
	policy, isDefault, err := uc.policies.Resolve(ctx, employee.SalonID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve policy for salon=%d: %v", employee.SalonID, err)
		return nil, fmt.Errorf("%w: failed to resolve policy: %v", ErrInternal, err)
	}
	if isDefault {
		uc.logger.Info("GetAvailability: using default policy for salon=%d", employee.SalonID)
	}

	// 5. Слоты из кэша либо расчёт
	key := availabilityCache.Key{
		EmployeeID:      req.EmployeeID,
		DurationMinutes: service.DurationMinutes,
		Granularity:     policy.SlotGranularityMinutes,
		Buffer:          policy.BufferMinutes,
		From:            req.From.In(loc).Format(domain.DateFormat),
		To:              req.To.In(loc).Format(domain.DateFormat),
	}

	starts, err := uc.loadSlots(ctx, key, req, service.DurationMinutes, policy)
	if err != nil {
		return nil, err
	}

	// 6. Ограничения политики зависят от текущего времени, поэтому применяются после кэша
	slots := filterByPolicy(starts, policy, uc.timeProvider.Now(), loc)

	uc.logger.Info("GetAvailability: %d slots for employee=%d, service=%d", len(slots), req.EmployeeID, req.ServiceID)

	return &Response{
		EmployeeID:         req.EmployeeID,
		ServiceID:          req.ServiceID,
		DurationMinutes:    service.DurationMinutes,
		GranularityMinutes: policy.SlotGranularityMinutes,
		Slots:              slots,
	}, nil
}

func (uc *UseCase) loadSlots(
	ctx context.Context,
	key availabilityCache.Key,
	req *Request,
	durationMinutes int,
	policy *domain.BookingPolicy,
) ([]time.Time, error) {
	cached, version, ok, err := uc.cache.Get(ctx, key)
	cacheable := err == nil
	switch {
	case err != nil:
		uc.metrics.IncAvailabilityCache("error")
		uc.logger.Warn("GetAvailability: cache read failed for employee=%d: %v", req.EmployeeID, err)
	case ok:
		uc.metrics.IncAvailabilityCache("hit")
		return cached, nil
	default:
		uc.metrics.IncAvailabilityCache("miss")
	}

	windows, err := uc.generator.GenerateWindows(ctx, req.EmployeeID,
		availability.DateRange{From: req.From, To: req.To}, policy.SlotGranularityMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate windows for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to generate windows: %v", ErrInternal, err)
	}

	starts, err := uc.checker.FreeWindows(ctx, req.EmployeeID, windows,
		durationMinutes, policy.BufferMinutes, policy.SlotGranularityMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to compute free windows for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to compute free windows: %v", ErrInternal, err)
	}

	if cacheable {
		if err := uc.cache.Set(ctx, key, version, starts); err != nil {
			uc.logger.Warn("GetAvailability: cache write failed for employee=%d: %v", req.EmployeeID, err)
		}
	}

	return starts, nil
}
