package get_employee_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date (YYYY-MM-DD в часовом поясе салона) задаёт сутки и имеет приоритет над from/to (RFC3339)
func ToServiceRequest(
	employeeID int64,
	fromStr string,
	toStr string,
	dateStr string,
	statusStr string,
	includeInactiveStr string,
	loc *time.Location,
) (*models.ListByEmployeeRequest, error) {
	req := &models.ListByEmployeeRequest{
		EmployeeID: employeeID,
	}

	switch {
	case dateStr != "":
		day, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		next := day.AddDate(0, 0, 1)
		req.From = &day
		req.To = &next
	default:
		if fromStr != "" {
			from, err := time.Parse(time.RFC3339, fromStr)
			if err != nil {
				return nil, fmt.Errorf("from: %w", err)
			}
			req.From = &from
		}
		if toStr != "" {
			to, err := time.Parse(time.RFC3339, toStr)
			if err != nil {
				return nil, fmt.Errorf("to: %w", err)
			}
			req.To = &to
		}
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
