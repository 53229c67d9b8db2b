package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlePortfolio_RequiresAuth(t *testing.T) {
	srv := newTestServer(t)
	srv.app.PortfolioService = newMockPortfolioService()

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	rec := httptest.NewRecorder()
	srv.handlePortfolio(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlePortfolio_RequiresStorage(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	req = req.WithContext(userRequestContext(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	srv.handlePortfolio(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePortfolio_ListEmpty(t *testing.T) {
	srv := newTestServer(t)
	srv.app.PortfolioService = newMockPortfolioService()

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	req = req.WithContext(userRequestContext(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	srv.handlePortfolio(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tickers":[]}`, rec.Body.String())
}

func TestHandlePortfolio_AddAndList(t *testing.T) {
	srv := newTestServer(t)
	srv.app.PortfolioService = newMockPortfolioService()

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio", jsonBody(t, map[string]string{"ticker": "AAPL"}))
	req = req.WithContext(userRequestContext(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	srv.handlePortfolio(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "AAPL", resp["ticker"])

	req = httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	req = req.WithContext(userRequestContext(req.Context(), "user-1"))
	rec = httptest.NewRecorder()
	srv.handlePortfolio(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tickers":["AAPL"]}`, rec.Body.String())
}

func TestHandlePortfolio_AddBlankTicker(t *testing.T) {
	srv := newTestServer(t)
	srv.app.PortfolioService = newMockPortfolioService()

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio", jsonBody(t, map[string]string{"ticker": "  "}))
	req = req.WithContext(userRequestContext(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	srv.handlePortfolio(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePortfolioTicker_Delete(t *testing.T) {
	srv := newTestServer(t)
	srv.app.PortfolioService = newMockPortfolioService()

	req := httptest.NewRequest(http.MethodDelete, "/api/portfolio/AAPL", nil)
	req = req.WithContext(userRequestContext(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	srv.handlePortfolioTicker(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandlePortfolioTicker_MissingTicker(t *testing.T) {
	srv := newTestServer(t)
	srv.app.PortfolioService = newMockPortfolioService()

	req := httptest.NewRequest(http.MethodDelete, "/api/portfolio/", nil)
	req = req.WithContext(userRequestContext(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	srv.handlePortfolioTicker(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// Full-stack check: the bearer middleware must mint the user context the
// portfolio handlers consume.
func TestPortfolioThroughMiddleware(t *testing.T) {
	srv := newTestServer(t)
	srv.app.PortfolioService = newMockPortfolioService()

	token := signTestToken(t, srv.app.Config.Auth.JWTSecret, "user-42")

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"tickers":[]}`, rec.Body.String())
}

func TestPortfolioThroughMiddleware_BadToken(t *testing.T) {
	srv := newTestServer(t)
	srv.app.PortfolioService = newMockPortfolioService()

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
