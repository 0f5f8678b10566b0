package get_availability

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("get_availability: employee not found")

	// ErrEmployeeInactive возвращается, когда сотрудник неактивен
	ErrEmployeeInactive = errors.New("get_availability: employee is inactive")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_availability: service not found")

	// ErrServiceInactive возвращается, когда услуга неактивна
	ErrServiceInactive = errors.New("get_availability: service is inactive")

	// ErrServiceNotInSalon возвращается, когда услуга принадлежит другому салону
	ErrServiceNotInSalon = errors.New("get_availability: service is not offered by the employee's salon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
