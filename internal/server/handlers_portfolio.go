package server

import (
	"net/http"
	"strings"

	"github.com/stockforge/stockforge/internal/common"
)

// requirePortfolio resolves the authenticated user and the portfolio service,
// writing the appropriate error when either is missing.
func (s *Server) requirePortfolio(w http.ResponseWriter, r *http.Request) (*common.UserContext, bool) {
	uc := common.UserContextFromContext(r.Context())
	if uc == nil || uc.UserID == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	if s.app.PortfolioService == nil {
		WriteError(w, http.StatusServiceUnavailable, "Portfolio storage not configured")
		return nil, false
	}
	return uc, true
}

// handlePortfolio serves GET and POST /api/portfolio.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePortfolioList(w, r)
	case http.MethodPost:
		s.handlePortfolioAdd(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handlePortfolioList(w http.ResponseWriter, r *http.Request) {
	uc, ok := s.requirePortfolio(w, r)
	if !ok {
		return
	}

	tickers, err := s.app.PortfolioService.List(r.Context(), uc.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user", uc.UserID).Msg("Portfolio list failed")
		WriteError(w, http.StatusInternalServerError, "Failed to list portfolio")
		return
	}
	if tickers == nil {
		tickers = []string{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"tickers": tickers})
}

func (s *Server) handlePortfolioAdd(w http.ResponseWriter, r *http.Request) {
	uc, ok := s.requirePortfolio(w, r)
	if !ok {
		return
	}

	var req struct {
		Ticker string `json:"ticker"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Ticker) == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	ticker, err := s.app.PortfolioService.Add(r.Context(), uc.UserID, req.Ticker)
	if err != nil {
		s.logger.Error().Err(err).Str("user", uc.UserID).Msg("Portfolio add failed")
		WriteError(w, http.StatusInternalServerError, "Failed to add ticker")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"ticker": ticker})
}

// handlePortfolioTicker serves DELETE /api/portfolio/{ticker}.
func (s *Server) handlePortfolioTicker(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	uc, ok := s.requirePortfolio(w, r)
	if !ok {
		return
	}

	ticker := PathParam(r, "/api/portfolio/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	if err := s.app.PortfolioService.Remove(r.Context(), uc.UserID, ticker); err != nil {
		s.logger.Error().Err(err).Str("user", uc.UserID).Str("ticker", ticker).Msg("Portfolio remove failed")
		WriteError(w, http.StatusInternalServerError, "Failed to remove ticker")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
