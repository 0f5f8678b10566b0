package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availabilityrule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

// Service сервис управления расписанием сотрудников
// Некорректная конфигурация отклоняется здесь, при записи, и никогда не попадает в генератор слотов
type Service struct {
	txManager TransactionManager
	hoursRepo WorkingHoursRepository
	rulesRepo RuleRepository
	locker    EmployeeLocker
	cache     AvailabilityCache
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	txManager TransactionManager,
	hoursRepo WorkingHoursRepository,
	rulesRepo RuleRepository,
	locker EmployeeLocker,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		txManager: txManager,
		hoursRepo: hoursRepo,
		rulesRepo: rulesRepo,
		locker:    locker,
		cache:     cache,
		logger:    logger,
	}
}

// GetWorkingHours получает недельный шаблон сотрудника
func (s *Service) GetWorkingHours(ctx context.Context, employeeID int64) (*models.WorkingHoursResponse, error) {
	if employeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeId must be positive", ErrInvalidInput)
	}

	hours, err := s.hoursRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkingHours(employeeID, hours), nil
}

// SetWorkingHours заменяет недельный шаблон сотрудника целиком
// Дни, отсутствующие в запросе, считаются нерабочими
func (s *Service) SetWorkingHours(ctx context.Context, req *models.SetWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("SetWorkingHours: employee=%d, days=%d", req.EmployeeID, len(req.Days))

	if req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeId must be positive", ErrInvalidInput)
	}

	hours := make([]*domain.WorkingHours, 0, len(req.Days))
	seen := make(map[int]struct{}, len(req.Days))
	for _, day := range req.Days {
		if _, dup := seen[day.Weekday]; dup {
			s.logger.Warn("SetWorkingHours: duplicate weekday=%d for employee=%d", day.Weekday, req.EmployeeID)
			return nil, fmt.Errorf("%w: weekday %d is listed twice", ErrInvalidConfiguration, day.Weekday)
		}
		seen[day.Weekday] = struct{}{}

		wh, err := day.ToDomain(req.EmployeeID)
		if err != nil {
			s.logger.Warn("SetWorkingHours: invalid weekday=%d for employee=%d: %v", day.Weekday, req.EmployeeID, err)
			return nil, fmt.Errorf("%w: weekday %d: %v", ErrInvalidConfiguration, day.Weekday, err)
		}
		if err := wh.Validate(); err != nil {
			s.logger.Warn("SetWorkingHours: invalid weekday=%d for employee=%d: %v", day.Weekday, req.EmployeeID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		hours = append(hours, wh)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.locker.LockEmployee(ctx, req.EmployeeID); err != nil {
			return err
		}
		return s.hoursRepo.ReplaceForEmployee(ctx, req.EmployeeID, hours)
	})
	if err != nil {
		s.logger.Error("SetWorkingHours: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: SetWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, req.EmployeeID)

	s.logger.Info("SetWorkingHours: successfully replaced working hours for employee=%d", req.EmployeeID)
	return s.GetWorkingHours(ctx, req.EmployeeID)
}

// CreateRule создает правило доступности
// Правило, чей диапазон дат пересекается с существующим правилом сотрудника, отклоняется
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("CreateRule: employee=%d, kind=%s, %s..%s", req.EmployeeID, req.Kind, req.DateStart, req.DateEnd)

	if req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeId must be positive", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxRuleReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxRuleReasonLength)
	}

	rule, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("CreateRule: invalid rule for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if err := rule.Validate(); err != nil {
		s.logger.Warn("CreateRule: invalid rule for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	var created *domain.AvailabilityRule
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.locker.LockEmployee(ctx, rule.EmployeeID); err != nil {
			return err
		}

		existing, err := s.rulesRepo.ListByEmployee(ctx, rule.EmployeeID, &rule.DateStart, &rule.DateEnd)
		if err != nil {
			return err
		}
		for _, other := range existing {
			if other.Intersects(rule) {
				return fmt.Errorf("%w: dates intersect rule id=%d (%s..%s)", ErrInvalidConfiguration,
					other.ID, other.DateStart.Format(domain.DateFormat), other.DateEnd.Format(domain.DateFormat))
			}
		}

		created, err = s.rulesRepo.Create(ctx, rule)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInvalidConfiguration) {
			s.logger.Warn("CreateRule: employee=%d: %v", req.EmployeeID, err)
			return nil, err
		}
		s.logger.Error("CreateRule: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, rule.EmployeeID)

	s.logger.Info("CreateRule: successfully created rule id=%d for employee=%d", created.ID, created.EmployeeID)
	return models.FromDomainRule(created), nil
}

// ListRules получает правила сотрудника, опционально ограниченные диапазоном дат
func (s *Service) ListRules(ctx context.Context, req *models.ListRulesRequest) (*models.RuleListResponse, error) {
	if req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeId must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: 'to' must not be earlier than 'from'", ErrInvalidInput)
	}

	rules, err := s.rulesRepo.ListByEmployee(ctx, req.EmployeeID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListRules: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRuleList(rules), nil
}

// DeleteRule удаляет правило сотрудника
func (s *Service) DeleteRule(ctx context.Context, employeeID, ruleID int64) error {
	s.logger.Info("DeleteRule: employee=%d, rule=%d", employeeID, ruleID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.locker.LockEmployee(ctx, employeeID); err != nil {
			return err
		}
		return s.rulesRepo.Delete(ctx, employeeID, ruleID)
	})
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("DeleteRule: rule id=%d not found for employee=%d", ruleID, employeeID)
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteRule: repository error for rule id=%d: %v", ruleID, err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, employeeID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, employeeID int64) {
	if err := s.cache.Invalidate(ctx, employeeID); err != nil {
		s.logger.Warn("invalidate: failed to invalidate availability cache for employee=%d: %v", employeeID, err)
	}
}
