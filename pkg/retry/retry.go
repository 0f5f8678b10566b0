package retry

import (
	"context"
	"time"
)

// Config параметры повторов с экспоненциальной задержкой
type Config struct {
	MaxAttempts int           // общее число попыток, включая первую
	BaseDelay   time.Duration // задержка перед второй попыткой
	MaxDelay    time.Duration // верхняя граница задержки (0 = без ограничения)
}

// DefaultConfig три попытки: 0, 50ms, 100ms
var DefaultConfig = Config{
	MaxAttempts: 3,
	BaseDelay:   50 * time.Millisecond,
	MaxDelay:    time.Second,
}

// Do выполняет fn, пока она возвращает ошибку, для которой retryable вернул true,
// но не более cfg.MaxAttempts раз. Возвращает последнюю ошибку.
func Do(ctx context.Context, cfg Config, retryable func(error) bool, fn func(ctx context.Context) error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if err == nil || !retryable(err) || attempt == attempts {
			return err
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(cfg.delay(attempt)):
		}
	}
	return err
}

// delay задержка после попытки с номером attempt (начиная с 1)
func (c Config) delay(attempt int) time.Duration {
	d := c.BaseDelay << (attempt - 1)
	if c.MaxDelay > 0 && (d > c.MaxDelay || d <= 0) {
		return c.MaxDelay
	}
	return d
}
