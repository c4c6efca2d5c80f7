package auth

import (
	"context"
	"time"

	domainUser "lost-and-found/internal/domain/user"
	"lost-and-found/internal/logger"

	"go.uber.org/zap"
)

// Cleaner purges expired token and OTP records.
type Cleaner struct {
	tokens domainUser.TokenRepository
	otps   domainUser.OTPRepository
	now    func() time.Time
}

func NewCleaner(tokens domainUser.TokenRepository, otps domainUser.OTPRepository) *Cleaner {
	return &Cleaner{tokens: tokens, otps: otps, now: time.Now}
}

// Start runs the purge once, then every interval until ctx is done.
func (c *Cleaner) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Token cleanup job started",
		zap.Duration("interval", interval),
	)

	c.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token cleanup job stopped")
			return
		case <-ticker.C:
			c.RunOnce(ctx)
		}
	}
}

func (c *Cleaner) RunOnce(ctx context.Context) {
	now := c.now()

	tokens, err := c.tokens.DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("Failed to delete expired tokens", zap.Error(err))
		return
	}

	otps, err := c.otps.DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("Failed to delete expired otps", zap.Error(err))
		return
	}

	logger.Debug("Expired credentials cleaned up",
		zap.Int64("tokens", tokens),
		zap.Int64("otps", otps),
	)
}
