package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lost-and-found/internal/cache"
	domainReport "lost-and-found/internal/domain/report"
	domainUser "lost-and-found/internal/domain/user"
	"lost-and-found/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AdminCounts struct {
	Lost  int64 `json:"lost"`
	Found int64 `json:"found"`
	User  int64 `json:"user"`
}

type UserCounts struct {
	MyLost int64 `json:"my_lost"`
	Found  int64 `json:"found"`
}

// Service aggregates report and user counts. The counts are independent
// reads issued concurrently; results may be served from cache for ttl.
type Service struct {
	reports domainReport.Store
	users   domainUser.Repository
	cache   cache.Cache
	ttl     time.Duration
}

func NewService(reports domainReport.Store, users domainUser.Repository, c cache.Cache, ttl time.Duration) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{reports: reports, users: users, cache: c, ttl: ttl}
}

func (s *Service) Admin(ctx context.Context) (*AdminCounts, error) {
	var counts AdminCounts
	if s.fromCache(ctx, "dashboard:admin", &counts) {
		return &counts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.reports.Lost().Count(gctx)
		counts.Lost = n
		return err
	})
	g.Go(func() error {
		n, err := s.reports.Found().Count(gctx)
		counts.Found = n
		return err
	})
	g.Go(func() error {
		n, err := s.users.Count(gctx)
		counts.User = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.toCache(ctx, "dashboard:admin", &counts)
	return &counts, nil
}

func (s *Service) User(ctx context.Context, userID uint) (*UserCounts, error) {
	key := fmt.Sprintf("dashboard:user:%d", userID)

	var counts UserCounts
	if s.fromCache(ctx, key, &counts) {
		return &counts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.reports.Lost().CountByUser(gctx, userID)
		counts.MyLost = n
		return err
	})
	g.Go(func() error {
		n, err := s.reports.Found().Count(gctx)
		counts.Found = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.toCache(ctx, key, &counts)
	return &counts, nil
}

// Cache failures only cost a recount.
func (s *Service) fromCache(ctx context.Context, key string, dst interface{}) bool {
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Warn("Dashboard cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, value interface{}) {
	if s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		logger.Warn("Dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
