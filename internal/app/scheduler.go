package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stockforge/stockforge/internal/interfaces"
)

// warmCacheTimeout bounds one scheduled warm-up run.
const warmCacheTimeout = 2 * time.Minute

// scheduler runs the optional warm-cache cron job. Pre-fetching today's
// ranking keeps the delta and enrichment caches hot so the first user query
// after a quiet period answers fast.
type scheduler struct {
	cron *cron.Cron
}

func (a *App) startScheduler() error {
	spec := a.Config.Scheduler.WarmCacheSpec
	if spec == "" || a.RankingService == nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() { a.warmCache() }); err != nil {
		return err
	}
	c.Start()
	a.scheduler = &scheduler{cron: c}

	a.Logger.Info().Str("spec", spec).Msg("Warm-cache scheduler started")
	return nil
}

func (a *App) stopScheduler() {
	if a.scheduler == nil {
		return
	}
	ctx := a.scheduler.cron.Stop()
	<-ctx.Done()
	a.scheduler = nil
}

func (a *App) warmCache() {
	ctx, cancel := context.WithTimeout(context.Background(), warmCacheTimeout)
	defer cancel()

	start := time.Now()
	snap, err := a.RankingService.GetRanking(ctx, interfaces.RankingQuery{})
	if err != nil {
		a.Logger.Warn().Err(err).Msg("Warm cache: ranking fetch failed")
		return
	}

	a.Logger.Info().
		Str("date", snap.Date).
		Int("tickers", snap.Tickers.Len()).
		Dur("duration", time.Since(start)).
		Msg("Warm cache: ranking refreshed")
}
