package interfaces

import (
	"context"

	"github.com/stockforge/stockforge/internal/models"
)

// RankingQuery is one inbound ranking request: an optional date plus the
// opaque filter set forwarded to upstream.
type RankingQuery struct {
	Date    string // YYYY-MM-DD; empty means "today" (UTC)
	Filters models.RankingFilters
}

// RankingService resolves, enriches, and assembles ranking snapshots.
type RankingService interface {
	// GetRanking probes backward from the requested date, computes per-ticker
	// score deltas, merges company enrichment, and returns the assembled
	// snapshot. Probe exhaustion returns an empty snapshot, not an error.
	GetRanking(ctx context.Context, query RankingQuery) (*models.Snapshot, error)
}

// EnrichmentService attaches company metadata and daily volume to tickers.
type EnrichmentService interface {
	// Enabled reports whether the secondary upstream is configured.
	Enabled() bool

	// Enrich fetches profile and volume data for one ticker on one date.
	// Missing fields are left unset; a failed lookup degrades, never aborts.
	Enrich(ctx context.Context, ticker, date string) *models.Enrichment
}

// PortfolioService manages per-user watchlist ticker sets.
type PortfolioService interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, ticker string) (string, error)
	Remove(ctx context.Context, userID, ticker string) error
}
