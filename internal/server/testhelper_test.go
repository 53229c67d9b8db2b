package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stockforge/stockforge/internal/app"
	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

// --- service mocks ---

type mockRankingService struct {
	snap  *models.Snapshot
	err   error
	query interfaces.RankingQuery
}

func (m *mockRankingService) GetRanking(_ context.Context, query interfaces.RankingQuery) (*models.Snapshot, error) {
	m.query = query
	if m.err != nil {
		return nil, m.err
	}
	return m.snap, nil
}

type mockRankingClient struct {
	sectors    json.RawMessage
	industries json.RawMessage
	err        error
	slug       string
}

func (m *mockRankingClient) GetRanking(context.Context, string, models.RankingFilters) (*models.Snapshot, error) {
	return nil, fmt.Errorf("not used")
}

func (m *mockRankingClient) GetSectors(context.Context) (json.RawMessage, error) {
	return m.sectors, m.err
}

func (m *mockRankingClient) GetSectorScores(_ context.Context, slug string) (json.RawMessage, error) {
	m.slug = slug
	return m.sectors, m.err
}

func (m *mockRankingClient) GetIndustries(context.Context) (json.RawMessage, error) {
	return m.industries, m.err
}

func (m *mockRankingClient) GetIndustryScores(_ context.Context, slug string) (json.RawMessage, error) {
	m.slug = slug
	return m.industries, m.err
}

type mockPortfolioService struct {
	entries map[string][]string
	err     error
}

func newMockPortfolioService() *mockPortfolioService {
	return &mockPortfolioService{entries: make(map[string][]string)}
}

func (m *mockPortfolioService) List(_ context.Context, userID string) ([]string, error) {
	return m.entries[userID], m.err
}

func (m *mockPortfolioService) Add(_ context.Context, userID, ticker string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.entries[userID] = append(m.entries[userID], ticker)
	return ticker, nil
}

func (m *mockPortfolioService) Remove(_ context.Context, userID, ticker string) error {
	return m.err
}

// --- harness ---

func newTestServer(t *testing.T) *Server {
	t.Helper()
	a := &app.App{
		Config: common.NewDefaultConfig(),
		Logger: common.NewSilentLogger(),
	}
	return NewServer(a)
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

func signTestToken(t *testing.T, secret, userID string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": userID + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func userRequestContext(ctx context.Context, userID string) context.Context {
	return common.WithUserContext(ctx, &common.UserContext{UserID: userID})
}
