package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

const defaultSessionTTL = 7 * 24 * time.Hour

type sessionSweepRepo interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionSweepJobParams configure the session sweep job.
type SessionSweepJobParams struct {
	Logger     *logger.Logger
	Repository sessionSweepRepo
	TTL        time.Duration
}

// NewSessionSweepJob builds the job that purges sessions past their TTL.
// Per-request cleanup already enforces expiry; this job keeps the table
// small during idle periods when no requests trigger it.
func NewSessionSweepJob(params SessionSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("session repository required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionSweepJob{
		logg: params.Logger,
		repo: params.Repository,
		ttl:  ttl,
		now:  time.Now,
	}, nil
}

type sessionSweepJob struct {
	logg *logger.Logger
	repo sessionSweepRepo
	ttl  time.Duration
	now  func() time.Time
}

func (j *sessionSweepJob) Name() string { return "session-sweep" }

func (j *sessionSweepJob) Run(ctx context.Context) error {
	cutoff := j.now().Add(-j.ttl)
	deleted, err := j.repo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("session sweep: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "session sweep complete")
	return nil
}
