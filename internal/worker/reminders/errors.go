package reminders

import "errors"

var (
	// ErrInvalidSchedule возвращается при некорректном cron-выражении
	ErrInvalidSchedule = errors.New("reminders: invalid cron schedule")

	// ErrMarker возвращается при ошибке хранилища отметок
	ErrMarker = errors.New("reminders: marker store error")

	// ErrInternal возвращается при внутренних ошибках сканера
	ErrInternal = errors.New("reminders: internal error")
)
