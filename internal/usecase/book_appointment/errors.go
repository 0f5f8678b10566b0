package book_appointment

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("book_appointment: employee not found")

	// ErrEmployeeInactive возвращается, когда сотрудник не принимает записи
	ErrEmployeeInactive = errors.New("book_appointment: employee is inactive")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("book_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = errors.New("book_appointment: service is inactive")

	// ErrServiceNotInSalon возвращается, когда услуга принадлежит другому салону
	ErrServiceNotInSalon = errors.New("book_appointment: service is not offered by the employee's salon")

	// ErrTooLateToBook возвращается, когда начало в прошлом или ближе minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("book_appointment: too late to book this slot")

	// ErrTooFarInAdvance возвращается, когда дата превышает ограничение advanceBookingDays
	ErrTooFarInAdvance = errors.New("book_appointment: date is too far in the future")

	// ErrSlotUnavailable возвращается, когда время не входит в свободные слоты сотрудника
	ErrSlotUnavailable = errors.New("book_appointment: slot is not available")

	// ErrTransient возвращается, когда конфликт транзакций не разрешился за отведённые попытки
	ErrTransient = errors.New("book_appointment: transient store error, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
