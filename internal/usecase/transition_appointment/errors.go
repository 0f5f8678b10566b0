package transition_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("transition_appointment: appointment not found")

	// ErrInvalidTransition возвращается, когда переход отсутствует в таблице переходов
	ErrInvalidTransition = errors.New("transition_appointment: transition is not allowed")

	// ErrTransient возвращается, когда конфликт транзакций не разрешился за отведённые попытки
	ErrTransient = errors.New("transition_appointment: transient store error, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_appointment: internal error")
)
