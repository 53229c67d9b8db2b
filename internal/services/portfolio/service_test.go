package portfolio

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

type memStore struct {
	entries []*models.PortfolioEntry
}

func (m *memStore) List(_ context.Context, userID string) ([]*models.PortfolioEntry, error) {
	var out []*models.PortfolioEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	// The backing store orders by added_at, not insertion position.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt.Before(out[j].AddedAt)
	})
	return out, nil
}

func (m *memStore) Put(_ context.Context, entry *models.PortfolioEntry) error {
	for i, e := range m.entries {
		if e.UserID == entry.UserID && e.Ticker == entry.Ticker {
			m.entries[i] = entry
			return nil
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memStore) Delete(_ context.Context, userID, ticker string) error {
	for i, e := range m.entries {
		if e.UserID == userID && e.Ticker == ticker {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) Close() error { return nil }

var _ interfaces.PortfolioStore = (*memStore)(nil)

func newTestService(store *memStore) *Service {
	svc := NewService(store, common.NewSilentLogger())
	svc.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestAddNormalizesTicker(t *testing.T) {
	svc := newTestService(&memStore{})
	ctx := context.Background()

	got, err := svc.Add(ctx, "user-1", "  aapl ")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if got != "AAPL" {
		t.Errorf("expected normalized AAPL, got %s", got)
	}

	tickers, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tickers) != 1 || tickers[0] != "AAPL" {
		t.Errorf("expected [AAPL], got %v", tickers)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)
	ctx := context.Background()

	svc.Add(ctx, "user-1", "AAPL")
	svc.Add(ctx, "user-1", "aapl")

	if len(store.entries) != 1 {
		t.Errorf("expected a single entry, got %d", len(store.entries))
	}
}

func TestReAddKeepsOriginalPosition(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)
	ctx := context.Background()

	clock := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	svc.Add(ctx, "user-1", "AAPL")
	clock = clock.Add(time.Minute)
	svc.Add(ctx, "user-1", "MSFT")
	clock = clock.Add(time.Minute)
	svc.Add(ctx, "user-1", "AAPL")

	tickers, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tickers) != 2 || tickers[0] != "AAPL" || tickers[1] != "MSFT" {
		t.Errorf("re-add must not move the ticker to the end, got %v", tickers)
	}
	for _, entry := range store.entries {
		if entry.Ticker == "AAPL" && !entry.AddedAt.Equal(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)) {
			t.Errorf("re-add must keep the original added_at, got %v", entry.AddedAt)
		}
	}
}

func TestAddRejectsBlankTicker(t *testing.T) {
	svc := newTestService(&memStore{})
	if _, err := svc.Add(context.Background(), "user-1", "   "); err == nil {
		t.Error("expected error for blank ticker")
	}
}

func TestListIsPerUser(t *testing.T) {
	svc := newTestService(&memStore{})
	ctx := context.Background()

	svc.Add(ctx, "user-1", "AAPL")
	svc.Add(ctx, "user-2", "MSFT")

	tickers, _ := svc.List(ctx, "user-1")
	if len(tickers) != 1 || tickers[0] != "AAPL" {
		t.Errorf("expected [AAPL] for user-1, got %v", tickers)
	}
}

func TestRemove(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)
	ctx := context.Background()

	svc.Add(ctx, "user-1", "AAPL")
	if err := svc.Remove(ctx, "user-1", "aapl"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(store.entries) != 0 {
		t.Errorf("expected empty store, got %v", store.entries)
	}

	// Absent tickers are fine.
	if err := svc.Remove(ctx, "user-1", "AAPL"); err != nil {
		t.Errorf("removing an absent ticker must not error: %v", err)
	}
}
