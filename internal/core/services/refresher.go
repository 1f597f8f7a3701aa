package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	portssvc "github.com/SscSPs/queue_mood_board/internal/core/ports/services"
	"github.com/google/uuid"
)

// distributionRefresher re-runs the today-distribution pipeline on a fixed
// interval and whenever Trigger is called, fanning the result out to subscribers.
// It keeps no copy of the result: every pass reads the store again.
type distributionRefresher struct {
	reader   portssvc.MoodReaderSvc
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	trigger chan struct{}

	mu     sync.Mutex
	subs   map[string]chan domain.DistributionUpdate
	closed bool
}

// NewRefresher creates the auto-refresh scheduler. It does nothing until Run is called.
func NewRefresher(reader portssvc.MoodReaderSvc, interval time.Duration, logger *slog.Logger) portssvc.RefreshSvc {
	if logger == nil {
		logger = slog.Default()
	}
	return &distributionRefresher{
		reader:   reader,
		interval: interval,
		logger:   logger.With(slog.String("component", "refresher")),
		now:      time.Now,
		trigger:  make(chan struct{}, 1),
		subs:     make(map[string]chan domain.DistributionUpdate),
	}
}

func (r *distributionRefresher) Interval() time.Duration {
	return r.interval
}

// Trigger requests an immediate pass. Requests made while one is pending collapse into it.
func (r *distributionRefresher) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Subscribe registers a new listener. The returned channel is closed by the
// cancel function or when Run stops.
func (r *distributionRefresher) Subscribe() (<-chan domain.DistributionUpdate, func()) {
	ch := make(chan domain.DistributionUpdate, 1)
	id := uuid.NewString()

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	r.subs[id] = ch
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if c, ok := r.subs[id]; ok {
				delete(r.subs, id)
				close(c)
			}
		})
	}
}

// Run drives the refresh loop until ctx is done.
func (r *distributionRefresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer r.closeAll()

	r.logger.Info("Refresher started", slog.Duration("interval", r.interval))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Refresher stopped")
			return nil
		case <-ticker.C:
			r.publish(ctx)
		case <-r.trigger:
			r.publish(ctx)
		}
	}
}

func (r *distributionRefresher) subscriberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

func (r *distributionRefresher) publish(ctx context.Context) {
	// Nobody is looking at the board; skip the backend round trip.
	if r.subscriberCount() == 0 {
		return
	}

	update := domain.DistributionUpdate{GeneratedAt: r.now()}
	dist, err := r.reader.TodayDistribution(ctx)
	if err != nil {
		r.logger.Warn("Refresh pass failed", slog.String("error", err.Error()))
		update.Err = err
	} else {
		update.Distribution = dist
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		// Slow listeners only ever see the newest update.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- update:
		default:
		}
	}
}

func (r *distributionRefresher) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for id, ch := range r.subs {
		delete(r.subs, id)
		close(ch)
	}
}
