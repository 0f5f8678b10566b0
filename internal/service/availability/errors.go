package availability

import "errors"

var (
	// ErrInvalidRange возвращается при пустом или перевёрнутом диапазоне дат
	ErrInvalidRange = errors.New("availability: invalid date range")

	// ErrInvalidGranularity возвращается при неположительном шаге сетки
	ErrInvalidGranularity = errors.New("availability: granularity must be positive")

	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("availability: duration must be positive")

	// ErrInconsistentSchedule возвращается, если в хранилище оказалось расписание,
	// которое должно было быть отклонено при записи
	ErrInconsistentSchedule = errors.New("availability: inconsistent stored schedule")

	// ErrInternal возвращается при ошибках хранилищ
	ErrInternal = errors.New("availability: internal error")
)
