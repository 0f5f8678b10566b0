package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UpsertPolicyRequest запрос на сохранение политики бронирования салона
// Незаданные поля принимают значения по умолчанию
type UpsertPolicyRequest struct {
	SalonID                 int64 `json:"-"`
	SlotGranularityMinutes  *int  `json:"slotGranularityMinutes,omitempty"`
	BufferMinutes           *int  `json:"bufferMinutes,omitempty"`
	AdvanceBookingDays      *int  `json:"advanceBookingDays,omitempty"`      // 0 = без ограничений
	MinBookingNoticeMinutes *int  `json:"minBookingNoticeMinutes,omitempty"` // Минимальное время до записи
}

// PolicyResponse политика бронирования салона
type PolicyResponse struct {
	SalonID                 int64      `json:"salonId"`
	SlotGranularityMinutes  int        `json:"slotGranularityMinutes"`
	BufferMinutes           int        `json:"bufferMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	IsDefault               bool       `json:"isDefault"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// ToDomain конвертирует запрос в domain модель
func (r *UpsertPolicyRequest) ToDomain() *domain.BookingPolicy {
	p := domain.DefaultBookingPolicy(r.SalonID)
	if r.SlotGranularityMinutes != nil {
		p.SlotGranularityMinutes = *r.SlotGranularityMinutes
	}
	if r.BufferMinutes != nil {
		p.BufferMinutes = *r.BufferMinutes
	}
	if r.AdvanceBookingDays != nil {
		p.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		p.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	return p
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.BookingPolicy, isDefault bool) *PolicyResponse {
	resp := &PolicyResponse{
		SalonID:                 p.SalonID,
		SlotGranularityMinutes:  p.SlotGranularityMinutes,
		BufferMinutes:           p.BufferMinutes,
		AdvanceBookingDays:      p.AdvanceBookingDays,
		MinBookingNoticeMinutes: p.MinBookingNoticeMinutes,
		IsDefault:               isDefault,
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
