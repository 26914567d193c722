package tournament

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/trentd187/golf-cup/internal/cache"
	"github.com/trentd187/golf-cup/internal/handicap"
	"github.com/trentd187/golf-cup/internal/metrics"
	"github.com/trentd187/golf-cup/internal/scoring"
)

// Notifier receives every recomputed match view after a score mutation.
type Notifier interface {
	Publish(matchID string, view MatchView)
}

// Service runs competition operations against a Store.
type Service struct {
	store    Store
	tees     *handicap.Registry
	points   scoring.PointsConfig
	cache    cache.Cache
	log      *zap.Logger
	notifier Notifier
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithCache memoizes leaderboards in c instead of a private in-memory cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithNotifier publishes match views after every mutation.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithIDGenerator replaces the id source for new records.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// NewService builds a Service. tees resolves the tee named by each match.
func NewService(store Store, tees *handicap.Registry, points scoring.PointsConfig, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tees:   tees,
		points: points,
		cache:  cache.NewMemory(cache.DefaultMemoryEntries),
		log:    zap.NewNop(),
		newID:  newUUID,
	}
	// Options run last so they override the defaults above.
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Points is the competition points configuration in use.
func (s *Service) Points() scoring.PointsConfig {
	return s.points
}

// cached loads a memoized value into dst. Any cache failure is a miss.
func (s *Service) cached(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	// Entries are JSON so the memory and redis caches store the same bytes.
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("cache entry unreadable", zap.String("key", key), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

// remember stores a computed value. Failures are logged and otherwise ignored.
func (s *Service) remember(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err == nil {
		err = s.cache.Set(ctx, key, raw)
	}
	if err != nil {
		s.log.Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}
}

// observe records how long a recompute took.
func observe(view string, start time.Time) {
	metrics.RecomputeDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}
