package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrDispatchFailed возвращается, когда диспетчер не принял уведомление
	ErrDispatchFailed = errors.New("notifier client: dispatch failed")
)
