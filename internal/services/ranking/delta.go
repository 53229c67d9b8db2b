package ranking

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/stockforge/stockforge/internal/cache"
	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

const (
	// deltaLookbackDays bounds the backward scan for a prior score.
	deltaLookbackDays = 7

	// deltaCacheTTL keeps (ticker, date) score lookups, including misses,
	// out of the upstream for this long.
	deltaCacheTTL = 5 * time.Minute

	// deltaConcurrency caps simultaneous in-flight upstream score lookups.
	// The semaphore releases waiters in FIFO order.
	deltaConcurrency = 5
)

// DeltaComputer derives the day-over-day AI-score change per ticker. Upstream
// provides no delta; it is recomputed here from single-ticker historical
// lookups.
type DeltaComputer struct {
	client   interfaces.RankingClient
	cache    *cache.TTL[*float64]
	sem      *semaphore.Weighted
	logger   *common.Logger
	lookback int
}

// NewDeltaComputer creates a delta computer with its own score cache.
func NewDeltaComputer(client interfaces.RankingClient, logger *common.Logger) *DeltaComputer {
	return &DeltaComputer{
		client:   client,
		cache:    cache.NewTTL[*float64](deltaCacheTTL),
		sem:      semaphore.NewWeighted(deltaConcurrency),
		logger:   logger,
		lookback: deltaLookbackDays,
	}
}

// Compute returns the AI-score delta for every ticker in the snapshot,
// keyed by ticker symbol. A nil entry means no delta could be derived for
// that ticker. Lookups across tickers run concurrently; the snapshot records
// are only read, never written, so the caller may merge results alongside
// other concurrent phases.
func (d *DeltaComputer) Compute(ctx context.Context, snap *models.Snapshot) map[string]*int {
	deltas := make(map[string]*int, snap.Tickers.Len())
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ticker := range snap.Tickers.Tickers() {
		rec, ok := snap.Tickers.Record(ticker)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(ticker string, rec models.RawRecord) {
			defer wg.Done()
			delta := d.deltaFor(ctx, ticker, snap.Date, rec)
			mu.Lock()
			deltas[ticker] = delta
			mu.Unlock()
		}(ticker, rec)
	}
	wg.Wait()
	return deltas
}

// deltaFor computes round(current − prior) for one ticker, or nil when the
// current score is unparseable or no prior score exists within the window.
func (d *DeltaComputer) deltaFor(ctx context.Context, ticker, date string, rec models.RawRecord) *int {
	current, ok := rec.Number("aiscore")
	if !ok {
		return nil
	}

	prior := d.PriorScore(ctx, ticker, date)
	if prior == nil {
		return nil
	}

	delta := int(math.Round(current - *prior))
	return &delta
}

// PriorScore scans up to lookback days before date for the nearest available
// score. Each (ticker, day) lookup is served from the cache when fresh;
// misses, including "no score on this day", are cached too.
func (d *DeltaComputer) PriorScore(ctx context.Context, ticker, date string) *float64 {
	for _, day := range previousDays(date, d.lookback) {
		key := ticker + ":" + day
		if score, ok := d.cache.Get(key); ok {
			if score != nil {
				return score
			}
			continue
		}

		score := d.fetchScore(ctx, ticker, day)
		d.cache.Set(key, score)
		if score != nil {
			return score
		}
	}
	return nil
}

// fetchScore performs one gated upstream lookup. Any failure reads as
// "no score for this day".
func (d *DeltaComputer) fetchScore(ctx context.Context, ticker, day string) *float64 {
	if err := d.sem.Acquire(ctx, 1); err != nil {
		return nil
	}
	defer d.sem.Release(1)

	snap, err := d.client.GetRanking(ctx, day, models.RankingFilters{Ticker: ticker})
	if err != nil {
		return nil
	}

	score, ok := snap.AIScore(ticker)
	if !ok {
		return nil
	}
	return &score
}
