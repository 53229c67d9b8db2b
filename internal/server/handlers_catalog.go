package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stockforge/stockforge/internal/clients/danelfin"
)

// Catalog endpoints proxy the upstream sector and industry listings verbatim.
// The payloads are opaque here; only errors are translated.

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	s.proxyCatalog(w, r, func(ctx context.Context) (json.RawMessage, error) {
		return s.app.RankingClient.GetSectors(ctx)
	})
}

func (s *Server) handleSectorScores(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/api/sectors/")
	if slug == "" {
		WriteError(w, http.StatusBadRequest, "sector is required")
		return
	}
	s.proxyCatalog(w, r, func(ctx context.Context) (json.RawMessage, error) {
		return s.app.RankingClient.GetSectorScores(ctx, slug)
	})
}

func (s *Server) handleIndustries(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	s.proxyCatalog(w, r, func(ctx context.Context) (json.RawMessage, error) {
		return s.app.RankingClient.GetIndustries(ctx)
	})
}

func (s *Server) handleIndustryScores(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/api/industries/")
	if slug == "" {
		WriteError(w, http.StatusBadRequest, "industry is required")
		return
	}
	s.proxyCatalog(w, r, func(ctx context.Context) (json.RawMessage, error) {
		return s.app.RankingClient.GetIndustryScores(ctx, slug)
	})
}

func (s *Server) proxyCatalog(w http.ResponseWriter, r *http.Request, fetch func(context.Context) (json.RawMessage, error)) {
	if s.app.RankingClient == nil {
		WriteError(w, http.StatusInternalServerError, "API key not configured")
		return
	}

	payload, err := fetch(r.Context())
	if err != nil {
		var apiErr *danelfin.APIError
		if errors.As(err, &apiErr) {
			WriteError(w, apiErr.StatusCode, apiErr.Message)
			return
		}
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Catalog request failed")
		WriteError(w, http.StatusBadGateway, "Upstream request failed")
		return
	}

	WriteRawJSON(w, http.StatusOK, payload)
}
