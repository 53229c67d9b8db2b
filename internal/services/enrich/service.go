package enrich

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/stockforge/stockforge/internal/cache"
	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

const (
	profileCacheTTL = 5 * time.Minute
	volumeCacheTTL  = 5 * time.Minute

	// Daily candles are requested for a window around the target date so a
	// bar exists even across weekends and holidays.
	candleDaysBefore = 2
	candleDaysAfter  = 3
)

// Service decorates ranking rows with company profile and trading volume data
// from the company data provider. The whole service is optional: without a
// configured client it reports disabled and every lookup is skipped.
type Service struct {
	client   interfaces.CompanyDataClient
	logger   *common.Logger
	profiles *cache.TTL[*models.CompanyProfile]
	volumes  *cache.TTL[*float64]
}

var _ interfaces.EnrichmentService = (*Service)(nil)

// NewService creates an enrichment service. client may be nil, which disables
// enrichment entirely.
func NewService(client interfaces.CompanyDataClient, logger *common.Logger) *Service {
	return &Service{
		client:   client,
		logger:   logger,
		profiles: cache.NewTTL[*models.CompanyProfile](profileCacheTTL),
		volumes:  cache.NewTTL[*float64](volumeCacheTTL),
	}
}

// Enabled reports whether a company data client is configured.
func (s *Service) Enabled() bool {
	return s.client != nil
}

// Enrich fetches the profile and daily volume for one ticker. Profile and
// volume lookups run concurrently; either side failing leaves its fields
// empty without affecting the other. Failed lookups are cached for the same
// interval as successful ones so a flapping upstream is not hammered.
func (s *Service) Enrich(ctx context.Context, ticker, date string) *models.Enrichment {
	if !s.Enabled() {
		return nil
	}

	out := &models.Enrichment{}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if profile := s.profileFor(ctx, ticker); profile != nil {
			out.CompanyName = profile.Name
			out.Industry = profile.Industry
			out.CountryCode = countryCode(profile.Country)
			out.CountryName = countryName(profile.Country)
		}
	}()

	go func() {
		defer wg.Done()
		out.DailyVolume = s.volumeFor(ctx, ticker, date)
	}()

	wg.Wait()
	return out
}

func (s *Service) profileFor(ctx context.Context, ticker string) *models.CompanyProfile {
	key := strings.ToUpper(ticker)
	if profile, ok := s.profiles.Get(key); ok {
		return profile
	}

	profile, err := s.client.GetProfile(ctx, key)
	if err != nil {
		s.logger.Debug().Err(err).Str("ticker", key).Msg("Profile lookup failed")
		s.profiles.Set(key, nil)
		return nil
	}

	s.profiles.Set(key, profile)
	return profile
}

// volumeFor resolves the trading volume for ticker on date, preferring the
// daily candle bar for that exact date and falling back to the quote volume
// when the candle window has no matching bar.
func (s *Service) volumeFor(ctx context.Context, ticker, date string) *float64 {
	key := strings.ToUpper(ticker) + ":" + date
	if volume, ok := s.volumes.Get(key); ok {
		return volume
	}

	volume := s.fetchVolume(ctx, strings.ToUpper(ticker), date)
	s.volumes.Set(key, volume)
	return volume
}

func (s *Service) fetchVolume(ctx context.Context, ticker, date string) *float64 {
	base, err := time.Parse(time.RFC3339, date+"T12:00:00Z")
	if err != nil {
		s.logger.Debug().Str("date", date).Msg("Skipping volume lookup for unparseable date")
		return nil
	}

	from := base.AddDate(0, 0, -candleDaysBefore)
	to := base.AddDate(0, 0, candleDaysAfter)

	candles, err := s.client.GetCandles(ctx, ticker, from, to)
	if err == nil {
		if volume, ok := candles.VolumeOn(date); ok {
			return &volume
		}
	} else {
		s.logger.Debug().Err(err).Str("ticker", ticker).Msg("Candle lookup failed")
	}

	quote, err := s.client.GetQuote(ctx, ticker)
	if err != nil {
		s.logger.Debug().Err(err).Str("ticker", ticker).Msg("Quote lookup failed")
		return nil
	}
	return quote.Volume
}
