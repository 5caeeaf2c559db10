package schedule

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository источник расписаний, который кеш оборачивает
type ScheduleRepository interface {
	GetByID(ctx context.Context, scheduleID int64) (*domain.Schedule, error)
}

// RedisClient подмножество *redis.Client, используемое кешем
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Metrics учёт попаданий и промахов кеша
type Metrics interface {
	IncCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
