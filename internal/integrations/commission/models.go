package commission

// RecordRequest запрос на запись комиссии по завершённой записи
type RecordRequest struct {
	AppointmentID int64   `json:"appointmentId"`
	EmployeeID    int64   `json:"employeeId"`
	SaleAmount    float64 `json:"saleAmount"`
}
