// Package interfaces defines the contracts between StockForge components
package interfaces

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stockforge/stockforge/internal/models"
)

// RankingClient talks to the upstream AI-ranking API.
type RankingClient interface {
	// GetRanking queries the ranking for one date with the given filter set.
	// Non-2xx responses surface as *danelfin.APIError so callers can tell
	// terminal filter errors (400/403) from "no data for this date".
	GetRanking(ctx context.Context, date string, filters models.RankingFilters) (*models.Snapshot, error)

	// Catalog passthroughs. Payloads are forwarded to the caller verbatim.
	GetSectors(ctx context.Context) (json.RawMessage, error)
	GetSectorScores(ctx context.Context, slug string) (json.RawMessage, error)
	GetIndustries(ctx context.Context) (json.RawMessage, error)
	GetIndustryScores(ctx context.Context, slug string) (json.RawMessage, error)
}

// CompanyDataClient talks to the secondary company-data API used for
// enrichment (profile, quote, candles).
type CompanyDataClient interface {
	GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error)
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetCandles(ctx context.Context, symbol string, from, to time.Time) (*models.CandleSeries, error)
}
