package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
)

const jobTimeout = 5 * time.Minute

// UserPurger deletes accounts that never verified their email
type UserPurger interface {
	PurgeUnverified(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenPurger removes expired verification and reset tokens
type TokenPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic cleanup jobs
type Scheduler struct {
	cron   *cron.Cron
	cfg    *config.Config
	users  UserPurger
	tokens TokenPurger
	now    func() time.Time
}

func New(cfg *config.Config, users UserPurger, tokens TokenPurger) *Scheduler {
	return &Scheduler{
		// seconds precision: SCHEDULER_CLEANUP_SPEC has six fields
		cron:   cron.New(cron.WithSeconds()),
		cfg:    cfg,
		users:  users,
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Scheduler.Spec, s.runCleanup); err != nil {
		return fmt.Errorf("register cleanup job %q: %w", s.cfg.Scheduler.Spec, err)
	}

	s.cron.Start()
	slog.Info("스케줄러 시작", "spec", s.cfg.Scheduler.Spec)
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("스케줄러 종료")
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.Cleanup(ctx); err != nil {
		slog.Error("정리 작업 실패", "error", err)
	}
}

// Cleanup purges stale unverified users and expired tokens once
func (s *Scheduler) Cleanup(ctx context.Context) error {
	start := time.Now()
	cutoff := s.now().Add(-s.cfg.Auth.UnverifiedMaxAge)

	users, err := s.users.PurgeUnverified(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge unverified users: %w", err)
	}

	tokens, err := s.tokens.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge expired tokens: %w", err)
	}

	slog.Info("정리 작업 완료",
		"deleted_users", users,
		"deleted_tokens", tokens,
		"cutoff", cutoff,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
