// Package ranking implements the ranking resolution and enrichment pipeline:
// probe backward for the latest date with data, compute per-ticker score
// deltas, merge company metadata, and reassemble the upstream payload shape.
package ranking

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

// Service implements RankingService.
type Service struct {
	resolver *Resolver
	deltas   *DeltaComputer
	enricher interfaces.EnrichmentService
	logger   *common.Logger
	now      func() time.Time // injectable clock for testing
}

// NewService creates the ranking service. enricher may be a disabled service
// when the company-data API key is absent; the ranking then ships base scores
// and deltas only.
func NewService(client interfaces.RankingClient, enricher interfaces.EnrichmentService, logger *common.Logger) *Service {
	return &Service{
		resolver: NewResolver(client, logger),
		deltas:   NewDeltaComputer(client, logger),
		enricher: enricher,
		logger:   logger,
		now:      time.Now,
	}
}

// GetRanking resolves the nearest available date at or before the requested
// one and returns the assembled snapshot. Terminal upstream filter errors are
// the only errors a caller sees; everything else degrades to empty or partial
// data.
func (s *Service) GetRanking(ctx context.Context, query interfaces.RankingQuery) (*models.Snapshot, error) {
	fromDate := query.Date
	if fromDate == "" {
		fromDate = s.now().UTC().Format(dateLayout)
	}

	snap, err := s.resolver.Resolve(ctx, fromDate, query.Filters)
	if err != nil {
		return nil, err
	}

	if snap.Date == "" || snap.Tickers.Len() == 0 {
		return snap, nil
	}

	// Delta and enrichment fan out concurrently, each collecting into its
	// own map keyed by ticker. The shared records are read-only until both
	// phases finish; merge is the single writer.
	var (
		deltas      map[string]*int
		enrichments map[string]*models.Enrichment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deltas = s.deltas.Compute(gctx, snap)
		return nil
	})
	if s.enricher != nil && s.enricher.Enabled() {
		g.Go(func() error {
			enrichments = s.collectEnrichments(gctx, snap)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	merge(snap, deltas, enrichments)
	aliasTrackRecords(snap)

	s.logger.Info().
		Str("date", snap.Date).
		Int("tickers", snap.Tickers.Len()).
		Msg("Ranking assembled")
	return snap, nil
}

// collectEnrichments fetches profile and volume data for every ticker,
// keyed by ticker symbol. Failed or empty enrichments produce no entry.
func (s *Service) collectEnrichments(ctx context.Context, snap *models.Snapshot) map[string]*models.Enrichment {
	results := make(map[string]*models.Enrichment, snap.Tickers.Len())
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, ticker := range snap.Tickers.Tickers() {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			e := s.enricher.Enrich(ctx, ticker, snap.Date)
			if e == nil {
				return
			}
			mu.Lock()
			results[ticker] = e
			mu.Unlock()
		}(ticker)
	}
	wg.Wait()
	return results
}

// merge writes the collected deltas and enrichments into the ticker records.
// Every record gets an aiScoreDelta, explicitly null when none was derived;
// enrichment fields are merged only where non-empty.
func merge(snap *models.Snapshot, deltas map[string]*int, enrichments map[string]*models.Enrichment) {
	for _, ticker := range snap.Tickers.Tickers() {
		rec, ok := snap.Tickers.Record(ticker)
		if !ok {
			continue
		}
		if delta := deltas[ticker]; delta != nil {
			rec["aiScoreDelta"] = *delta
		} else {
			rec["aiScoreDelta"] = nil
		}
		e := enrichments[ticker]
		if e == nil {
			continue
		}
		if e.CompanyName != "" {
			rec["companyName"] = e.CompanyName
		}
		if e.Industry != "" {
			rec["industry"] = e.Industry
		}
		if e.CountryCode != "" {
			rec["countryCode"] = e.CountryCode
		}
		if e.CountryName != "" {
			rec["countryName"] = e.CountryName
		}
		if e.DailyVolume != nil {
			rec["dailyVolume"] = *e.DailyVolume
		}
	}
}

// aliasTrackRecords mirrors the raw snake_case track-record flags under
// camelCase keys. The originals stay in place.
func aliasTrackRecords(snap *models.Snapshot) {
	for _, ticker := range snap.Tickers.Tickers() {
		rec, ok := snap.Tickers.Record(ticker)
		if !ok {
			continue
		}
		if v, ok := rec["buy_track_record"]; ok && v != nil {
			rec["buyTrackRecord"] = v
		}
		if v, ok := rec["sell_track_record"]; ok && v != nil {
			rec["sellTrackRecord"] = v
		}
	}
}

// Ensure Service implements RankingService
var _ interfaces.RankingService = (*Service)(nil)
