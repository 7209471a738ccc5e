package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/jara-travels/booking_api/dto"
	"github.com/jara-travels/booking_api/model"
	"github.com/jara-travels/booking_api/shared"
)

// RateLimitService guards submission endpoints with persistent fixed-window
// counters keyed by (identifier, action). Redis is the fast path (a single
// atomic INCR per check, correct across instances); the database transaction
// path covers deployments without Redis.
type RateLimitService struct {
	appContext.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	pgSvc    *PostgresService
	redisSvc *RedisService
}

type RateLimitConfig struct {
	Action      string
	MaxAttempts int
	Window      time.Duration
	Description string
	IsActive    bool
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *appContext.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.pgSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.initDefaultConfigs()

	go svc.startCleanupJob()

	return nil
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		shared.ActionBooking: {
			Action:      shared.ActionBooking,
			MaxAttempts: 5,
			Window:      time.Hour,
			Description: "Booking submission rate limit per email",
			IsActive:    true,
		},
		shared.ActionContact: {
			Action:      shared.ActionContact,
			MaxAttempts: 5,
			Window:      time.Hour,
			Description: "Contact form rate limit per email",
			IsActive:    true,
		},
	}
}

// Check performs the atomic check-and-increment for one attempt. Every call
// counts as an attempt; the caller rejects when Allowed is false.
func (svc *RateLimitService) Check(identifier, action string) (*dto.RateLimitInfo, error) {
	svc.mutex.RLock()
	config, exists := svc.configs[action]
	svc.mutex.RUnlock()

	if !exists || !config.IsActive {
		return &dto.RateLimitInfo{Allowed: true, Remaining: -1}, nil
	}

	if svc.redisSvc != nil && svc.redisSvc.GetClient() != nil {
		return svc.checkRedis(identifier, config)
	}
	return svc.checkDatabase(identifier, config)
}

func (svc *RateLimitService) checkRedis(identifier string, config *RateLimitConfig) (*dto.RateLimitInfo, error) {
	ctx := context.Background()
	key := fmt.Sprintf("rate_limit:%s:%s", config.Action, identifier)

	count, ttl, err := svc.redisSvc.IncrementWindow(ctx, key, config.Window)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = config.Window
	}

	resetTime := time.Now().Add(ttl)
	return evaluate(int(count), config.MaxAttempts, resetTime), nil
}

func (svc *RateLimitService) checkDatabase(identifier string, config *RateLimitConfig) (*dto.RateLimitInfo, error) {
	record, err := svc.pgSvc.IncrementRateLimit(identifier, config.Action, config.Window)
	if err != nil {
		return nil, err
	}

	resetTime := record.WindowStart.Add(config.Window)
	return evaluate(record.RequestCount, config.MaxAttempts, resetTime), nil
}

// evaluate turns an already-incremented window counter into a decision.
func evaluate(count, maxAttempts int, resetTime time.Time) *dto.RateLimitInfo {
	if count > maxAttempts {
		retryAfter := int(time.Until(resetTime).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		return &dto.RateLimitInfo{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: retryAfter,
			ResetTime:  &resetTime,
		}
	}

	return &dto.RateLimitInfo{
		Allowed:   true,
		Remaining: maxAttempts - count,
		ResetTime: &resetTime,
	}
}

// RetryMessage renders the public rejection message for an exhausted window.
func RetryMessage(retryAfter int) string {
	minutes := (retryAfter + 59) / 60
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("Too many attempts. Please wait %d minutes before trying again.", minutes)
}

func (svc *RateLimitService) ResetRateLimit(identifier, action string) error {
	if svc.redisSvc != nil && svc.redisSvc.GetClient() != nil {
		key := fmt.Sprintf("rate_limit:%s:%s", action, identifier)
		if err := svc.redisSvc.Delete(context.Background(), key); err != nil {
			return err
		}
	}
	return svc.pgSvc.Db().Where("identifier = ? AND action = ?", identifier, action).
		Delete(&model.RateLimit{}).Error
}

func (svc *RateLimitService) startCleanupJob() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := svc.pgSvc.CleanupOldRateLimits(); err != nil {
			log.WithError(err).Error("Rate limit cleanup failed")
		}
	}
}
