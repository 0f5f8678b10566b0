package get_availability

import "time"

// Request модель запроса доступных слотов
type Request struct {
	EmployeeID int64
	ServiceID  int64
	From       time.Time // Первая дата диапазона (включительно)
	To         time.Time // Последняя дата диапазона (включительно)
}

// Response модель ответа со слотами
type Response struct {
	EmployeeID         int64       `json:"employeeId"`
	ServiceID          int64       `json:"serviceId"`
	DurationMinutes    int         `json:"durationMinutes"`
	GranularityMinutes int         `json:"granularityMinutes"`
	Slots              []time.Time `json:"slots"`
}
