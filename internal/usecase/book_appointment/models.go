package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на бронирование
type Request struct {
	EmployeeID int64
	ServiceID  int64
	CustomerID int64
	Start      time.Time
	Channel    domain.BookingChannel // Пусто = customer
}
