package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes  = 15
	DefaultBufferMinutes           = 0
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240
	MaxBufferMinutes          = 240
	MaxAdvanceBookingDays     = 365   // 1 year
	MaxBookingNoticeMinutes   = 10080 // 1 week
	MaxAvailabilityRangeDays  = 62
	MaxRuleReasonLength       = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
