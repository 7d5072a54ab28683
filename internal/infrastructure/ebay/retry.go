package ebay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// retryPolicy は指数バックオフによる再試行の設定です
type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	log         *slog.Logger
}

// do は fn を最大 maxAttempts 回実行します
// 再試行しても回復しないHTTPステータス（429以外の4xx）やコンテキストの終了では即座に諦めます
func (r retryPolicy) do(ctx context.Context, operation string, fn func() error) error {
	attempts := max(r.maxAttempts, 1)
	delay := r.baseDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) || attempt == attempts {
			break
		}

		r.log.Warn("retrying after failure",
			slog.String("operation", operation),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", delay),
			slog.Any("err", lastErr))

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s canceled: %w", operation, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, attempts, lastErr)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.retryable()
	}
	return true
}
