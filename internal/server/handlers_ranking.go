package server

import (
	"errors"
	"net/http"

	"github.com/stockforge/stockforge/internal/clients/danelfin"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

// handleRanking serves GET /api/ranking. The response is the assembled
// single-date payload: one date key mapping to the ticker records with deltas,
// enrichment, and track-record aliases merged in. With format=rows the
// payload is instead flattened into the ranked row list consumers render
// directly.
func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if s.app.RankingService == nil {
		WriteError(w, http.StatusInternalServerError, "API key not configured")
		return
	}

	q := r.URL.Query()
	query := interfaces.RankingQuery{
		Date: q.Get("date"),
		Filters: models.RankingFilters{
			Ticker:          q.Get("ticker"),
			Asset:           q.Get("asset"),
			Sector:          q.Get("sector"),
			Industry:        q.Get("industry"),
			BuyTrackRecord:  q.Get("buy_track_record"),
			SellTrackRecord: q.Get("sell_track_record"),
		},
	}
	if query.Date == "" && query.Filters.Ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker or date is required")
		return
	}

	snap, err := s.app.RankingService.GetRanking(r.Context(), query)
	if err != nil {
		var apiErr *danelfin.APIError
		if errors.As(err, &apiErr) && apiErr.Terminal() {
			WriteError(w, apiErr.StatusCode, apiErr.Message)
			return
		}
		s.logger.Error().Err(err).Msg("Ranking request failed")
		WriteError(w, http.StatusInternalServerError, "Failed to fetch ranking")
		return
	}

	if q.Get("format") == "rows" {
		WriteJSON(w, http.StatusOK, models.RowsFromSnapshot(snap))
		return
	}

	WriteJSON(w, http.StatusOK, snap)
}
