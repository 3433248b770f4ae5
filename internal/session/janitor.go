package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Expirer is implemented by stores that need expired sessions purged.
// The Redis store expires keys itself and does not implement it.
type Expirer interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RunJanitor purges expired sessions from store every interval until ctx is
// done. It returns immediately when store is not an Expirer.
func RunJanitor(ctx context.Context, store Store, interval time.Duration, logger *zap.Logger) {
	e, ok := store.(Expirer)
	if !ok {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := e.DeleteExpired(ctx, now)
			if err != nil {
				logger.Warn("failed to purge expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Debug("purged expired sessions", zap.Int64("count", n))
			}
		}
	}
}
