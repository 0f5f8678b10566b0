package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMarker отметки в Redis (SETNX с TTL), общие для всех экземпляров сервиса
type RedisMarker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMarker создает хранилище отметок в Redis
func NewRedisMarker(client *redis.Client, ttl time.Duration) *RedisMarker {
	return &RedisMarker{client: client, ttl: ttl}
}

func (m *RedisMarker) TryMark(ctx context.Context, appointmentID int64) (bool, error) {
	ok, err := m.client.SetNX(ctx, markerKey(appointmentID), time.Now().Unix(), m.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMarker, err)
	}
	return ok, nil
}

func (m *RedisMarker) Release(ctx context.Context, appointmentID int64) error {
	if err := m.client.Del(ctx, markerKey(appointmentID)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrMarker, err)
	}
	return nil
}

func markerKey(appointmentID int64) string {
	return fmt.Sprintf("reminder:sent:%d", appointmentID)
}

// MemoryMarker отметки в памяти процесса
type MemoryMarker struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	expires map[int64]time.Time
}

// NewMemoryMarker создает хранилище отметок в памяти
func NewMemoryMarker(ttl time.Duration) *MemoryMarker {
	return &MemoryMarker{
		ttl:     ttl,
		now:     time.Now,
		expires: make(map[int64]time.Time),
	}
}

func (m *MemoryMarker) TryMark(ctx context.Context, appointmentID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.expires {
		if !now.Before(exp) {
			delete(m.expires, id)
		}
	}

	if _, ok := m.expires[appointmentID]; ok {
		return false, nil
	}
	m.expires[appointmentID] = now.Add(m.ttl)
	return true, nil
}

func (m *MemoryMarker) Release(ctx context.Context, appointmentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.expires, appointmentID)
	return nil
}
