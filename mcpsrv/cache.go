package mcpsrv

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/qyinm/catalogtui/types"
)

// ClearCachePeriodically clears the source cache every interval until ctx is
// done. It returns immediately when interval is not positive or the source
// keeps no cache.
func ClearCachePeriodically(ctx context.Context, source types.ProductSource, interval time.Duration, logger *zap.Logger) {
	clearable, ok := source.(cacheClearSource)
	if interval <= 0 || !ok {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			clearable.ClearCache()
			logger.Debug("provider cache cleared", zap.Duration("interval", interval))
		case <-ctx.Done():
			return
		}
	}
}
