package commission

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("commission client: internal error")

	// ErrRejected возвращается, когда реестр отклонил запись комиссии
	ErrRejected = errors.New("commission client: rejected")

	// ErrUnavailable возвращается при недоступности реестра; запись можно повторить
	ErrUnavailable = errors.New("commission client: ledger unavailable")
)
