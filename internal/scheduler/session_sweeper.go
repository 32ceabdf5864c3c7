package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/georepo/internal/logger"
)

const (
	// DefaultSessionTTL is how long an unused session survives
	DefaultSessionTTL = 24 * time.Hour
)

// Sweeper removes sessions idle for longer than a threshold.
type Sweeper interface {
	Sweep(idleTTL time.Duration) int
	Len() int
}

// SessionSweeper periodically drops idle sessions
type SessionSweeper struct {
	sessions  Sweeper
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(
	sessions Sweeper,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *SessionSweeper {
	if threshold == 0 {
		threshold = DefaultSessionTTL
	}

	return &SessionSweeper{
		sessions:  sessions,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (ss *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(ss.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ss.Collect()
			case <-ss.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweeper
func (ss *SessionSweeper) Stop() {
	close(ss.stopCh)
}

// Collect removes idle sessions and returns how many were dropped
func (ss *SessionSweeper) Collect() int {
	removed := ss.sessions.Sweep(ss.threshold)

	if removed > 0 {
		ss.logger.Info("swept idle sessions",
			logger.Int("removed", removed),
			logger.Int("remaining", ss.sessions.Len()))
	} else {
		ss.logger.Debug("no idle sessions to sweep")
	}

	return removed
}
