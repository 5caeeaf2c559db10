package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const keyPrefix = "availability:schedule:"

// Результаты обращения к кешу для метрик
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Cache read-through кеш расписаний поверх репозитория
// Ошибки Redis логируются и не прерывают запрос: расписание читается из репозитория
type Cache struct {
	repo    ScheduleRepository
	client  RedisClient
	ttl     time.Duration
	metrics Metrics
	log     Logger
}

// NewCache создает кеш расписаний
// metrics может быть nil
func NewCache(repo ScheduleRepository, client RedisClient, ttl time.Duration, metrics Metrics, log Logger) *Cache {
	return &Cache{
		repo:    repo,
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		log:     log,
	}
}

func key(scheduleID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, scheduleID)
}

// GetByID возвращает расписание из кеша или, при промахе, из репозитория
// Ошибки репозитория (в том числе not found) возвращаются как есть
func (c *Cache) GetByID(ctx context.Context, scheduleID int64) (*domain.Schedule, error) {
	if s, ok := c.get(ctx, scheduleID); ok {
		return s, nil
	}

	s, err := c.repo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	c.set(ctx, s)
	return s, nil
}

func (c *Cache) get(ctx context.Context, scheduleID int64) (*domain.Schedule, bool) {
	data, err := c.client.Get(ctx, key(scheduleID)).Bytes()
	if err == redis.Nil {
		c.observe(resultMiss)
		c.log.Debug("Schedule cache miss: schedule_id=%d", scheduleID)
		return nil, false
	}
	if err != nil {
		c.observe(resultError)
		c.log.Warn("Schedule cache read failed for schedule_id=%d: %v", scheduleID, err)
		return nil, false
	}

	var cached cachedSchedule
	if err := json.Unmarshal(data, &cached); err != nil {
		c.observe(resultError)
		c.log.Warn("Schedule cache entry is corrupted for schedule_id=%d: %v", scheduleID, err)
		return nil, false
	}

	c.observe(resultHit)
	c.log.Debug("Schedule cache hit: schedule_id=%d", scheduleID)
	return cached.toDomain(), true
}

func (c *Cache) set(ctx context.Context, s *domain.Schedule) {
	data, err := json.Marshal(toCached(s))
	if err != nil {
		c.log.Warn("Failed to encode schedule_id=%d for cache: %v", s.ID, err)
		return
	}

	if err := c.client.Set(ctx, key(s.ID), data, c.ttl).Err(); err != nil {
		c.log.Warn("Schedule cache write failed for schedule_id=%d: %v", s.ID, err)
	}
}

func (c *Cache) observe(result string) {
	if c.metrics != nil {
		c.metrics.IncCache(result)
	}
}
