package ranking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/models"
)

func snapshotFromJSON(t *testing.T, payload string) *models.Snapshot {
	t.Helper()
	var snap models.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		t.Fatalf("bad snapshot payload: %v", err)
	}
	return &snap
}

func TestComputeDelta(t *testing.T) {
	client := newMockRankingClient()
	client.script(t, "2024-03-13", "AAPL", `{"2024-03-13":{"AAPL":{"aiscore":65}}}`)

	d := NewDeltaComputer(client, common.NewSilentLogger())
	snap := snapshotFromJSON(t, `{"2024-03-14":{"AAPL":{"aiscore":72}}}`)
	deltas := d.Compute(context.Background(), snap)

	if got := deltas["AAPL"]; got == nil || *got != 72-65 {
		t.Errorf("expected delta 7, got %v", got)
	}
}

func TestComputeDeltaFlattenedPriorPayload(t *testing.T) {
	// Single-ticker queries sometimes flatten scores directly under the date.
	client := newMockRankingClient()
	client.script(t, "2024-03-13", "AAPL", `{"2024-03-13":{"aiscore":65,"ticker":"AAPL"}}`)

	d := NewDeltaComputer(client, common.NewSilentLogger())
	snap := snapshotFromJSON(t, `{"2024-03-14":{"AAPL":{"aiscore":72}}}`)
	deltas := d.Compute(context.Background(), snap)

	if got := deltas["AAPL"]; got == nil || *got != 7 {
		t.Errorf("expected delta 7 from flattened payload, got %v", got)
	}
}

func TestComputeDeltaScansBackward(t *testing.T) {
	// No score on the 13th; the scan keeps walking to the 11th.
	client := newMockRankingClient()
	client.script(t, "2024-03-11", "AAPL", `{"2024-03-11":{"AAPL":{"aiscore":69.4}}}`)

	d := NewDeltaComputer(client, common.NewSilentLogger())
	snap := snapshotFromJSON(t, `{"2024-03-14":{"AAPL":{"aiscore":72}}}`)
	deltas := d.Compute(context.Background(), snap)

	if got := deltas["AAPL"]; got == nil || *got != 3 { // round(72 - 69.4)
		t.Errorf("expected rounded delta 3, got %v", got)
	}
}

func TestComputeDeltaNullOnExhaustion(t *testing.T) {
	client := newMockRankingClient()
	client.script(t, "2024-03-13", "MSFT", `{"2024-03-13":{"MSFT":{"aiscore":50}}}`)

	d := NewDeltaComputer(client, common.NewSilentLogger())
	snap := snapshotFromJSON(t, `{"2024-03-14":{"AAPL":{"aiscore":72},"MSFT":{"aiscore":55}}}`)
	deltas := d.Compute(context.Background(), snap)

	if v, ok := deltas["AAPL"]; !ok || v != nil {
		t.Errorf("expected explicit nil delta for AAPL, got %v (present=%v)", v, ok)
	}
	if got := deltas["MSFT"]; got == nil || *got != 5 {
		t.Errorf("one ticker's exhaustion must not affect others, got %v", got)
	}
}

func TestComputeDeltaNullWithoutCurrentScore(t *testing.T) {
	client := newMockRankingClient()
	client.script(t, "2024-03-13", "AAPL", `{"2024-03-13":{"AAPL":{"aiscore":65}}}`)

	d := NewDeltaComputer(client, common.NewSilentLogger())
	snap := snapshotFromJSON(t, `{"2024-03-14":{"AAPL":{"sentiment":4}}}`)
	deltas := d.Compute(context.Background(), snap)

	if client.callCount() != 0 {
		t.Errorf("no current score should mean no prior lookups, got %d calls", client.callCount())
	}
	if v := deltas["AAPL"]; v != nil {
		t.Errorf("expected nil delta, got %v", v)
	}
}

func TestPriorScoreCaching(t *testing.T) {
	client := newMockRankingClient()
	client.script(t, "2024-03-13", "AAPL", `{"2024-03-13":{"AAPL":{"aiscore":65}}}`)

	d := NewDeltaComputer(client, common.NewSilentLogger())
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	d.cache.SetClock(func() time.Time { return now })

	ctx := context.Background()
	if score := d.PriorScore(ctx, "AAPL", "2024-03-14"); score == nil || *score != 65 {
		t.Fatalf("expected prior score 65, got %v", score)
	}
	if score := d.PriorScore(ctx, "AAPL", "2024-03-14"); score == nil || *score != 65 {
		t.Fatalf("expected cached prior score 65, got %v", score)
	}
	if got := client.callCount(); got != 1 {
		t.Errorf("second lookup within the cache window must not hit upstream, got %d calls", got)
	}

	now = now.Add(6 * time.Minute)
	d.PriorScore(ctx, "AAPL", "2024-03-14")
	if got := client.callCount(); got != 2 {
		t.Errorf("expired entry should trigger a refetch, got %d calls", got)
	}
}

func TestPriorScoreCachesMisses(t *testing.T) {
	client := newMockRankingClient()

	d := NewDeltaComputer(client, common.NewSilentLogger())
	ctx := context.Background()

	if score := d.PriorScore(ctx, "AAPL", "2024-03-14"); score != nil {
		t.Fatalf("expected no prior score, got %v", *score)
	}
	first := client.callCount()
	if first != deltaLookbackDays {
		t.Fatalf("expected %d lookups on first scan, got %d", deltaLookbackDays, first)
	}

	d.PriorScore(ctx, "AAPL", "2024-03-14")
	if got := client.callCount(); got != first {
		t.Errorf("cached misses must suppress repeat lookups, got %d calls", got)
	}
}

func TestComputeDeltaConcurrencyBound(t *testing.T) {
	client := newMockRankingClient()
	client.latency = 20 * time.Millisecond

	tickers := []string{"AAPL", "MSFT", "NVDA", "GOOG", "AMZN", "META", "TSLA", "AMD", "INTC", "CRM"}
	payload := `{"2024-03-14":{`
	for i, tk := range tickers {
		if i > 0 {
			payload += ","
		}
		payload += `"` + tk + `":{"aiscore":70}`
		client.script(t, "2024-03-13", tk, `{"2024-03-13":{"`+tk+`":{"aiscore":60}}}`)
	}
	payload += `}}`

	d := NewDeltaComputer(client, common.NewSilentLogger())
	d.Compute(context.Background(), snapshotFromJSON(t, payload))

	if client.maxInflight > deltaConcurrency {
		t.Errorf("observed %d concurrent lookups, cap is %d", client.maxInflight, deltaConcurrency)
	}
	if client.maxInflight < 2 {
		t.Errorf("expected concurrent lookups, observed %d in flight", client.maxInflight)
	}
}
