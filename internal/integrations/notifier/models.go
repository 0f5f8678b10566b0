package notifier

// Notification событие жизненного цикла записи для диспетчера уведомлений
type Notification struct {
	AppointmentID int64  `json:"appointmentId"`
	CustomerID    int64  `json:"customerId"`
	EmployeeID    int64  `json:"employeeId"`
	EventKind     string `json:"eventKind"`
}
