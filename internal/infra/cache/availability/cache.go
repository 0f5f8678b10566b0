package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key параметры запроса, от которых зависит набор слотов
type Key struct {
	EmployeeID      int64
	DurationMinutes int
	Granularity     int
	Buffer          int
	From            string // YYYY-MM-DD
	To              string // YYYY-MM-DD
}

// Cache кэш рассчитанных слотов в Redis
// Ключ содержит версию календаря сотрудника: любое изменение увеличивает версию,
// старые записи становятся недостижимы и истекают по TTL
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш слотов
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает слоты из кэша и версию календаря, под которой выполнялось чтение; ok=false при промахе
// При промахе версия передается в Set, чтобы результат, рассчитанный до инвалидации, не попал под новую версию
func (c *Cache) Get(ctx context.Context, key Key) ([]time.Time, int64, bool, error) {
	version, err := c.version(ctx, key.EmployeeID)
	if err != nil {
		return nil, 0, false, err
	}

	data, err := c.client.Get(ctx, dataKey(key, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("%w: %w", ErrCacheRead, err)
	}

	var starts []time.Time
	if err := json.Unmarshal(data, &starts); err != nil {
		return nil, version, false, fmt.Errorf("%w: decode: %v", ErrCacheRead, err)
	}
	return starts, version, true, nil
}

// Set сохраняет слоты под версией, полученной из Get
func (c *Cache) Set(ctx context.Context, key Key, version int64, starts []time.Time) error {
	data, err := json.Marshal(starts)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, dataKey(key, version), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheWrite, err)
	}
	return nil
}

// Invalidate делает недействительными все закэшированные слоты сотрудника
func (c *Cache) Invalidate(ctx context.Context, employeeID int64) error {
	if err := c.client.Incr(ctx, versionKey(employeeID)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheWrite, err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context, employeeID int64) (int64, error) {
	raw, err := c.client.Get(ctx, versionKey(employeeID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCacheRead, err)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: version: %v", ErrCacheRead, err)
	}
	return v, nil
}

func versionKey(employeeID int64) string {
	return fmt.Sprintf("availability:version:%d", employeeID)
}

func dataKey(key Key, version int64) string {
	return fmt.Sprintf("availability:slots:%d:v%d:%s:%s:d%d:g%d:b%d",
		key.EmployeeID, version, key.From, key.To, key.DurationMinutes, key.Granularity, key.Buffer)
}

// Nop кэш-заглушка для запуска без Redis
type Nop struct{}

func (Nop) Get(ctx context.Context, key Key) ([]time.Time, int64, bool, error) {
	return nil, 0, false, nil
}

func (Nop) Set(ctx context.Context, key Key, version int64, starts []time.Time) error { return nil }

func (Nop) Invalidate(ctx context.Context, employeeID int64) error { return nil }
