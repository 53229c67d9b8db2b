package ranking

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stockforge/stockforge/internal/clients/danelfin"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

// mockRankingClient serves scripted ranking payloads keyed by date, or by
// date|ticker for single-ticker lookups. Unscripted dates answer 404, which
// is what upstream does for days without data.
type mockRankingClient struct {
	mu          sync.Mutex
	responses   map[string]scriptedResponse
	calls       []string
	latency     time.Duration
	inflight    int
	maxInflight int
}

type scriptedResponse struct {
	snap *models.Snapshot
	err  error
}

func newMockRankingClient() *mockRankingClient {
	return &mockRankingClient{responses: make(map[string]scriptedResponse)}
}

func (m *mockRankingClient) script(t *testing.T, date, ticker, payload string) {
	t.Helper()
	var snap models.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		t.Fatalf("bad scripted payload for %s: %v", date, err)
	}
	m.responses[mockKey(date, ticker)] = scriptedResponse{snap: &snap}
}

func (m *mockRankingClient) scriptError(date, ticker string, err error) {
	m.responses[mockKey(date, ticker)] = scriptedResponse{err: err}
}

func mockKey(date, ticker string) string {
	if ticker == "" {
		return date
	}
	return date + "|" + ticker
}

func (m *mockRankingClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockRankingClient) callLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockRankingClient) GetRanking(_ context.Context, date string, filters models.RankingFilters) (*models.Snapshot, error) {
	key := mockKey(date, filters.Ticker)

	m.mu.Lock()
	m.calls = append(m.calls, key)
	m.inflight++
	if m.inflight > m.maxInflight {
		m.maxInflight = m.inflight
	}
	m.mu.Unlock()

	if m.latency > 0 {
		time.Sleep(m.latency)
	}

	m.mu.Lock()
	m.inflight--
	resp, ok := m.responses[key]
	m.mu.Unlock()

	if !ok {
		return nil, &danelfin.APIError{StatusCode: http.StatusNotFound, Message: "no data", Endpoint: "/ranking"}
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return resp.snap, nil
}

func (m *mockRankingClient) GetSectors(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (m *mockRankingClient) GetSectorScores(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func (m *mockRankingClient) GetIndustries(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (m *mockRankingClient) GetIndustryScores(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

var _ interfaces.RankingClient = (*mockRankingClient)(nil)
