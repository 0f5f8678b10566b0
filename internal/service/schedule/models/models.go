package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// WorkingDay расписание на один день недели
type WorkingDay struct {
	Weekday   int     `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	IsWorking bool    `json:"isWorking"`
	OpenTime  *string `json:"openTime,omitempty"`  // HH:MM
	CloseTime *string `json:"closeTime,omitempty"` // HH:MM
}

// SetWorkingHoursRequest запрос на замену недельного шаблона сотрудника
type SetWorkingHoursRequest struct {
	EmployeeID int64        `json:"-"`
	Days       []WorkingDay `json:"days"`
}

// CreateRuleRequest запрос на создание правила доступности
type CreateRuleRequest struct {
	EmployeeID int64   `json:"-"`
	DateStart  string  `json:"dateStart"` // YYYY-MM-DD
	DateEnd    string  `json:"dateEnd"`   // YYYY-MM-DD, включительно
	Kind       string  `json:"kind"`      // block | override_hours
	OpenTime   *string `json:"openTime,omitempty"`
	CloseTime  *string `json:"closeTime,omitempty"`
	Reason     *string `json:"reason,omitempty"`
}

// ListRulesRequest запрос на получение правил сотрудника
type ListRulesRequest struct {
	EmployeeID int64
	From       *time.Time
	To         *time.Time
}

// Response модели

// WorkingHoursResponse недельный шаблон сотрудника
type WorkingHoursResponse struct {
	EmployeeID int64        `json:"employeeId"`
	Days       []WorkingDay `json:"days"`
}

// RuleResponse правило доступности
type RuleResponse struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	DateStart  string    `json:"dateStart"`
	DateEnd    string    `json:"dateEnd"`
	Kind       string    `json:"kind"`
	OpenTime   *string   `json:"openTime,omitempty"`
	CloseTime  *string   `json:"closeTime,omitempty"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RuleListResponse список правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

// ToDomain конвертирует день недели в domain модель
func (d WorkingDay) ToDomain(employeeID int64) (*domain.WorkingHours, error) {
	wh := &domain.WorkingHours{
		EmployeeID: employeeID,
		Weekday:    d.Weekday,
		IsWorking:  d.IsWorking,
	}
	if !d.IsWorking {
		return wh, nil
	}

	open, closeAt, err := parseHours(d.OpenTime, d.CloseTime)
	if err != nil {
		return nil, err
	}
	wh.OpenTime = open
	wh.CloseTime = closeAt
	return wh, nil
}

// ToDomain конвертирует запрос в domain правило
func (r *CreateRuleRequest) ToDomain() (*domain.AvailabilityRule, error) {
	start, err := time.Parse(domain.DateFormat, r.DateStart)
	if err != nil {
		return nil, fmt.Errorf("dateStart: %w", err)
	}
	end, err := time.Parse(domain.DateFormat, r.DateEnd)
	if err != nil {
		return nil, fmt.Errorf("dateEnd: %w", err)
	}

	rule := &domain.AvailabilityRule{
		EmployeeID: r.EmployeeID,
		DateStart:  start,
		DateEnd:    end,
		Kind:       domain.RuleKind(r.Kind),
		Reason:     r.Reason,
	}
	if rule.Kind == domain.RuleKindOverrideHours {
		rule.OpenTime, rule.CloseTime, err = parseHours(r.OpenTime, r.CloseTime)
		if err != nil {
			return nil, err
		}
	}
	return rule, nil
}

// FromDomainWorkingHours конвертирует шаблон в DTO
func FromDomainWorkingHours(employeeID int64, hours []*domain.WorkingHours) *WorkingHoursResponse {
	days := make([]WorkingDay, 0, len(hours))
	for _, wh := range hours {
		day := WorkingDay{Weekday: wh.Weekday, IsWorking: wh.IsWorking}
		if wh.IsWorking {
			day.OpenTime = timeStringPtr(wh.OpenTime)
			day.CloseTime = timeStringPtr(wh.CloseTime)
		}
		days = append(days, day)
	}
	return &WorkingHoursResponse{EmployeeID: employeeID, Days: days}
}

// FromDomainRule конвертирует правило в DTO
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	if r == nil {
		return nil
	}
	return &RuleResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		DateStart:  r.DateStart.Format(domain.DateFormat),
		DateEnd:    r.DateEnd.Format(domain.DateFormat),
		Kind:       string(r.Kind),
		OpenTime:   timeStringPtr(r.OpenTime),
		CloseTime:  timeStringPtr(r.CloseTime),
		Reason:     r.Reason,
		CreatedAt:  r.CreatedAt,
	}
}

// FromDomainRuleList конвертирует список правил в DTO
func FromDomainRuleList(rules []*domain.AvailabilityRule) *RuleListResponse {
	out := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, *FromDomainRule(r))
	}
	return &RuleListResponse{Rules: out}
}

func parseHours(open, closeAt *string) (types.TimeString, types.TimeString, error) {
	if open == nil || closeAt == nil {
		return "", "", domain.ErrMissingHours
	}
	o, err := types.NewTimeStringFromString(*open)
	if err != nil {
		return "", "", err
	}
	c, err := types.NewTimeStringFromString(*closeAt)
	if err != nil {
		return "", "", err
	}
	return o, c, nil
}

func timeStringPtr(t types.TimeString) *string {
	if t.IsZero() {
		return nil
	}
	s := t.String()
	return &s
}
