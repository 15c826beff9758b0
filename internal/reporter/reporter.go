package reporter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/Tender/internal/hermes"
	"github.com/MikeSquared-Agency/Tender/internal/store"
)

// StatsSource is the part of store.Store the reporter reads.
type StatsSource interface {
	GetStats(ctx context.Context) (*store.Stats, error)
}

// Reporter periodically publishes service statistics to Hermes.
type Reporter struct {
	store    StatsSource
	hermes   hermes.Client
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(s StatsSource, h hermes.Client, interval time.Duration, logger *slog.Logger) *Reporter {
	return &Reporter{
		store:    s,
		hermes:   h,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the publish loop. A non-positive interval leaves the
// reporter idle.
func (r *Reporter) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	r.wg.Add(1)
	go r.loop(ctx)
}

func (r *Reporter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

func (r *Reporter) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Publish(ctx); err != nil {
				r.logger.Warn("failed to publish stats", "error", err)
			}
		}
	}
}

// Publish reads the current stats and sends one StatsEvent.
func (r *Reporter) Publish(ctx context.Context) error {
	stats, err := r.store.GetStats(ctx)
	if err != nil {
		return err
	}
	return r.hermes.Publish(hermes.SubjectStats, hermes.StatsEvent{
		Templates:       stats.Templates,
		Proposals:       stats.Proposals,
		LockedProposals: stats.LockedProposals,
		Scores:          stats.Scores,
		Revisions:       stats.Revisions,
		Timestamp:       r.now().UTC(),
	})
}
