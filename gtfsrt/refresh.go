package gtfsrt

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/uq-transit/uqlakes-board/internal/logging"
)

// Refresher re-fetches the realtime feeds on a fixed interval and publishes
// each successful fetch through the Holder. A failed fetch is logged and
// deliberately leaves the previous snapshot in place: stale data beats no
// data for an arrival board.
type Refresher struct {
	client   *Client
	holder   *Holder
	cache    *CacheWriter
	routeIDs []string
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewRefresher wires a refresher. cache may be nil to disable the feed cache.
func NewRefresher(client *Client, holder *Holder, cache *CacheWriter, routeIDs []string, interval, timeout time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		client:       client,
		holder:       holder,
		cache:        cache,
		routeIDs:     routeIDs,
		interval:     interval,
		timeout:      timeout,
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}
}

// RefreshOnce performs one fetch-filter-swap cycle. On error the holder is
// untouched.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	snap, err := r.client.FetchSnapshot(ctx, r.routeIDs)
	if err != nil {
		return err
	}
	r.holder.Swap(snap)
	if r.cache != nil {
		r.cache.Write(snap)
	}
	return nil
}

// Start launches the periodic refresh goroutine.
func (r *Refresher) Start() {
	r.wg.Add(1)
	go r.run()
}

func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
			logging.LogOperation(r.logger, "refreshing_realtime_data",
				slog.Int("routes", len(r.routeIDs)))
			if err := r.RefreshOnce(ctx); err != nil {
				logging.LogError(r.logger, "realtime refresh failed, keeping previous snapshot", err)
			}
			cancel()
		case <-r.shutdownChan:
			logging.LogOperation(r.logger, "shutting_down_realtime_updates")
			return
		}
	}
}

// Shutdown stops the refresh goroutine and waits for it to exit. Safe to
// call more than once.
func (r *Refresher) Shutdown() {
	r.shutdownOnce.Do(func() {
		close(r.shutdownChan)
		r.wg.Wait()
	})
}
