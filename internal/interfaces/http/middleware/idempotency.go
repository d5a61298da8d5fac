package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/infrastructure/logger"
	"github.com/sitebuild/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader names the client-chosen key of a retryable write
const IdempotencyKeyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLength bounds client-supplied keys
const MaxIdempotencyKeyLength = 200

// Idempotency makes a POST carrying an Idempotency-Key apply at most once per
// ttl. A replayed key is answered with 409 DUPLICATE_REQUEST. When the guarded
// handler fails (status 400 and above) or panics the key is released so the
// client may retry with the same key. Requests without the header pass straight through.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	if store == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewFieldErrorResponse(
				dto.ErrCodeValidation, "Idempotency-Key is too long", IdempotencyKeyHeader, GetRequestID(c)))
			return
		}

		ctx := c.Request.Context()
		scoped := c.Request.Method + " " + c.Request.URL.Path + " " + key
		claimed, err := store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			logger.GetGinLogger(c).Warn("Idempotency store unavailable", zap.Error(err))
			c.Header("Retry-After", dto.RetryAfterSeconds)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeTransientStorage, "Idempotency store temporarily unavailable", GetRequestID(c)))
			return
		}
		if !claimed {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest, "A request with this Idempotency-Key was already processed", GetRequestID(c)))
			return
		}

		// Runs while a handler panic unwinds too, so the key is not held for
		// a write that never completed.
		completed := false
		defer func() {
			if completed && c.Writer.Status() < http.StatusBadRequest {
				return
			}
			if err := store.Forget(context.WithoutCancel(ctx), scoped); err != nil {
				logger.GetGinLogger(c).Warn("Failed to release idempotency key", zap.Error(err))
			}
		}()

		c.Next()
		completed = true
	}
}
