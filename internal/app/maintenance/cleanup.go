package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/meirshuvax/bynet-portal/internal/services"
	"github.com/meirshuvax/bynet-portal/pkg/logger"
)

const (
	defaultChatRetention = 90 * 24 * time.Hour
	defaultChatSpec      = "@daily"
)

// Cleaner runs background maintenance on the portal, currently limited to
// enforcing the chat message retention window.
type Cleaner struct {
	chats     *services.ChatService
	cron      *cron.Cron
	now       func() time.Time
	log       *zap.Logger
	retention time.Duration

	chatSchedule string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for retention comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithChatRetention adjusts how long chat messages are kept. A non-positive
// value disables pruning.
func WithChatRetention(retention time.Duration) Option {
	return func(cleaner *Cleaner) {
		cleaner.retention = retention
	}
}

// WithChatSchedule overrides the cron specification for chat pruning.
func WithChatSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.chatSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults. A nil chat service
// results in the pruning job being skipped.
func NewCleaner(chats *services.ChatService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		chats:        chats,
		now:          time.Now,
		retention:    defaultChatRetention,
		chatSchedule: defaultChatSpec,
		log:          logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the pruning job with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.chats == nil || c.retention <= 0 {
		return nil
	}

	if _, err := c.cron.AddFunc(c.chatSchedule, func() {
		if err := c.pruneChat(context.Background()); err != nil {
			c.log.Warn("chat retention cleanup failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all configured cleanup routines sequentially. Primarily
// used in tests and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if c.chats != nil && c.retention > 0 {
		if err := c.pruneChat(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}

func (c *Cleaner) pruneChat(ctx context.Context) error {
	cutoff := c.now().Add(-c.retention)
	deleted, err := c.chats.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		c.log.Info("pruned chat messages",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
	return nil
}
