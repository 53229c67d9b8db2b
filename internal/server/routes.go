package server

import (
	"net/http"

	"github.com/stockforge/stockforge/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Ranking
	mux.HandleFunc("/api/ranking", s.handleRanking)

	// Catalog passthroughs
	mux.HandleFunc("/api/sectors", s.handleSectors)
	mux.HandleFunc("/api/sectors/", s.handleSectorScores)
	mux.HandleFunc("/api/industries", s.handleIndustries)
	mux.HandleFunc("/api/industries/", s.handleIndustryScores)

	// Portfolio
	mux.HandleFunc("/api/portfolio", s.handlePortfolio)
	mux.HandleFunc("/api/portfolio/", s.handlePortfolioTicker)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
		"full":    common.GetFullVersion(),
	})
}
