package middleware

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/domain/repository"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/boumia-pos/pkg/apperror"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyPurgeInterval is how often expired keys are deleted
	IdempotencyPurgeInterval = 15 * time.Minute
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Log  *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a submission is retried with
// the same Idempotency-Key, so a double tap on confirm does not create two
// orders. Only 2xx responses are stored; a failed submission can be retried
// with the same key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	log := config.Log
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "PATCH" {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		userID, ok := c.Get("user_id")
		if !ok {
			c.Next()
			return
		}
		cashierID, ok := userID.(int64)
		if !ok {
			c.Next()
			return
		}

		endpoint := c.Request.Method + " " + c.FullPath()

		existing, err := config.Repo.GetByKey(c.Request.Context(), idempotencyKey, cashierID)
		if err != nil {
			log.Warn("idempotency lookup failed", zap.String("key", idempotencyKey), zap.Error(err))
			c.Next()
			return
		}

		if existing != nil && !existing.IsExpired() {
			if existing.Endpoint != endpoint {
				response.Error(c, apperror.NewValidationError(
					"Idempotency-Key was already used for another request",
					apperror.FieldError{Field: IdempotencyKeyHeader, Message: "used for " + existing.Endpoint},
				))
				c.Abort()
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			ikey := &entity.IdempotencyKey{
				Key:          idempotencyKey,
				UserID:       cashierID,
				Endpoint:     endpoint,
				ResponseCode: status,
				ResponseBody: blw.body.String(),
				ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
			}
			if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
				log.Warn("idempotency store failed", zap.String("key", idempotencyKey), zap.Error(err))
			}
		}
	}
}

// IdempotencyPurger deletes expired keys on a fixed interval. Close stops it.
type IdempotencyPurger struct {
	repo      repository.IdempotencyRepository
	interval  time.Duration
	log       *zap.Logger
	done      chan struct{}
	closeOnce sync.Once
}

// NewIdempotencyPurger starts the purge loop
func NewIdempotencyPurger(repo repository.IdempotencyRepository, interval time.Duration, log *zap.Logger) *IdempotencyPurger {
	if interval <= 0 {
		interval = IdempotencyPurgeInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &IdempotencyPurger{
		repo:     repo,
		interval: interval,
		log:      log,
		done:     make(chan struct{}),
	}

	go p.loop()

	return p
}

func (p *IdempotencyPurger) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.purge()
		case <-p.done:
			return
		}
	}
}

func (p *IdempotencyPurger) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := p.repo.DeleteExpired(ctx); err != nil {
		p.log.Warn("idempotency purge failed", zap.Error(err))
	}
}

// Close stops the purge loop
func (p *IdempotencyPurger) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}
