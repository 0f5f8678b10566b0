package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	policyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AppointmentService/internal/service/policy/models"
)

// Service сервис политик бронирования салонов
type Service struct {
	policyRepo PolicyRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(policyRepo PolicyRepository, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Resolve возвращает политику салона либо значения по умолчанию, если салон её не настроил
func (s *Service) Resolve(ctx context.Context, salonID int64) (*domain.BookingPolicy, bool, error) {
	p, err := s.policyRepo.GetBySalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return domain.DefaultBookingPolicy(salonID), true, nil
		}
		s.logger.Error("Resolve: repository error for salon=%d: %v", salonID, err)
		return nil, false, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}
	return p, false, nil
}

// GetPolicy получает политику бронирования салона
func (s *Service) GetPolicy(ctx context.Context, salonID int64) (*models.PolicyResponse, error) {
	if salonID <= 0 {
		return nil, fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	p, isDefault, err := s.Resolve(ctx, salonID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPolicy(p, isDefault), nil
}

// UpsertPolicy создает или заменяет политику бронирования салона
func (s *Service) UpsertPolicy(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("UpsertPolicy: salon=%d", req.SalonID)

	if req.SalonID <= 0 {
		return nil, fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	p := req.ToDomain()
	if err := p.Validate(); err != nil {
		s.logger.Warn("UpsertPolicy: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.policyRepo.Upsert(ctx, p)
	if err != nil {
		s.logger.Error("UpsertPolicy: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: UpsertPolicy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertPolicy: successfully saved policy for salon=%d", saved.SalonID)
	return models.FromDomainPolicy(saved, false), nil
}
