package directory

// Employee сотрудник салона
type Employee struct {
	ID       int64 `json:"id"`
	SalonID  int64 `json:"salonId"`
	IsActive bool  `json:"isActive"`
}
