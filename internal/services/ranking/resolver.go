package ranking

import (
	"context"
	"errors"

	"github.com/stockforge/stockforge/internal/clients/danelfin"
	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

// probeWindowDays is how many calendar days before the requested date are
// probed before giving up. Ranking data does not exist for every calendar
// day (pre-close, weekends, holidays), so the resolver walks backward to the
// latest trading day without needing a market calendar.
const probeWindowDays = 10

// Resolver finds the most recent date with ranking data at or before a
// requested date.
type Resolver struct {
	client interfaces.RankingClient
	logger *common.Logger
	window int
}

// NewResolver creates a date-probing resolver.
func NewResolver(client interfaces.RankingClient, logger *common.Logger) *Resolver {
	return &Resolver{
		client: client,
		logger: logger,
		window: probeWindowDays,
	}
}

// Resolve probes fromDate and up to window preceding days, in order, and
// returns the first snapshot upstream answers with. Probing stops immediately
// on a terminal filter error (upstream 400/403), which is returned as-is.
// When every candidate date comes back empty-handed, Resolve returns a valid
// empty snapshot keyed by fromDate. Exhaustion is not an error.
func (r *Resolver) Resolve(ctx context.Context, fromDate string, filters models.RankingFilters) (*models.Snapshot, error) {
	dates := append([]string{fromDate}, previousDays(fromDate, r.window)...)

	for _, date := range dates {
		snap, err := r.client.GetRanking(ctx, date, filters)
		if err == nil {
			r.logger.Debug().
				Str("requested", fromDate).
				Str("resolved", date).
				Int("tickers", snap.Tickers.Len()).
				Msg("Ranking date resolved")
			return snap, nil
		}

		var apiErr *danelfin.APIError
		if errors.As(err, &apiErr) && apiErr.Terminal() {
			return nil, err
		}

		// Anything else (404, upstream 5xx, transport failure) means no
		// usable data for this date; keep probing.
		r.logger.Debug().Err(err).Str("date", date).Msg("No ranking data for date")
	}

	r.logger.Info().
		Str("requested", fromDate).
		Int("window", r.window).
		Msg("Probe window exhausted, returning empty ranking")
	return models.NewEmptySnapshot(fromDate), nil
}
