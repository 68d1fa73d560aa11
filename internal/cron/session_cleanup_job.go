package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"

	"github.com/quotewerk/quotewerk-backend/internal/quote"
	"github.com/quotewerk/quotewerk-backend/pkg/logger"
)

// sessionStore is the subset of the redis client the cleanup job touches.
type sessionStore interface {
	ScanKeys(ctx context.Context, match string, count int64) ([]string, error)
	Get(ctx context.Context, key string) (string, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionPattern() string
}

// SessionCleanupJobParams configure the wizard session cleanup job.
type SessionCleanupJobParams struct {
	Store      sessionStore
	Logger     *logger.Logger
	SessionTTL time.Duration
	ScanCount  int64
}

// SessionCleanupJob sweeps the session keyspace. Redis expires sessions on
// its own; this job handles the leftovers expiry cannot: corrupt payloads
// and keys that lost their TTL (a SET without expiry from an older build
// would otherwise live forever).
type SessionCleanupJob struct {
	store      sessionStore
	logg       *logger.Logger
	sessionTTL time.Duration
	scanCount  int64
}

// NewSessionCleanupJob validates params and builds the job.
func NewSessionCleanupJob(params SessionCleanupJobParams) (*SessionCleanupJob, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	ttl := params.SessionTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	count := params.ScanCount
	if count <= 0 {
		count = 100
	}
	return &SessionCleanupJob{
		store:      params.Store,
		logg:       params.Logger,
		sessionTTL: ttl,
		scanCount:  count,
	}, nil
}

// Name implements Job.
func (j *SessionCleanupJob) Name() string { return "wizard-session-cleanup" }

// Run implements Job.
func (j *SessionCleanupJob) Run(ctx context.Context) error {
	var keys []string
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		scanned, err := j.store.ScanKeys(ctx, j.store.SessionPattern(), j.scanCount)
		if err != nil {
			return retry.RetryableError(err)
		}
		keys = scanned
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}

	var errs error
	removed, repaired := 0, 0
	for _, key := range keys {
		raw, err := j.store.Get(ctx, key)
		if err != nil {
			// Key may have expired between SCAN and GET.
			if errors.Is(err, goredis.Nil) {
				continue
			}
			errs = multierr.Append(errs, fmt.Errorf("read %s: %w", key, err))
			continue
		}

		var draft quote.Draft
		if err := json.Unmarshal([]byte(raw), &draft); err != nil {
			if delErr := j.store.Del(ctx, key); delErr != nil {
				errs = multierr.Append(errs, fmt.Errorf("delete corrupt %s: %w", key, delErr))
				continue
			}
			removed++
			continue
		}

		ttl, err := j.store.TTL(ctx, key)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("ttl %s: %w", key, err))
			continue
		}
		if ttl < 0 {
			if err := j.store.Expire(ctx, key, j.sessionTTL); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("expire %s: %w", key, err))
				continue
			}
			repaired++
		}
	}

	fields := map[string]any{"scanned": len(keys), "removed": removed, "repaired": repaired}
	j.logg.Info(j.logg.WithFields(ctx, fields), "session sweep complete")
	return errs
}
