package availability

import "errors"

var (
	// ErrCacheRead ошибка чтения кэша
	ErrCacheRead = errors.New("availability.cache: failed to read")

	// ErrCacheWrite ошибка записи кэша
	ErrCacheWrite = errors.New("availability.cache: failed to write")
)
