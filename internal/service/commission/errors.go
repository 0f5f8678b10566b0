package commission

import "errors"

var (
	// ErrDeliveryFailed возвращается, когда реестр не принял событие; оно остаётся в outbox
	ErrDeliveryFailed = errors.New("commission: delivery failed")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("commission: internal error")
)
