// Package portfolio manages per-user watchlists on top of the portfolio store.
package portfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

// Service implements PortfolioService.
type Service struct {
	store  interfaces.PortfolioStore
	logger *common.Logger
	now    func() time.Time
}

// NewService creates the portfolio service.
func NewService(store interfaces.PortfolioStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the user's tickers in the order they were added.
func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	entries, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	tickers := make([]string, 0, len(entries))
	for _, entry := range entries {
		tickers = append(tickers, entry.Ticker)
	}
	return tickers, nil
}

// Add puts a ticker on the user's watchlist and returns its normalized form.
// A ticker that is already present is left untouched, keeping its original
// position in the added-at ordering.
func (s *Service) Add(ctx context.Context, userID, ticker string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(ticker))
	if normalized == "" {
		return "", fmt.Errorf("ticker is required")
	}

	existing, err := s.store.List(ctx, userID)
	if err != nil {
		return "", err
	}
	for _, entry := range existing {
		if entry.Ticker == normalized {
			return normalized, nil
		}
	}

	entry := &models.PortfolioEntry{
		UserID:  userID,
		Ticker:  normalized,
		AddedAt: s.now().UTC(),
	}
	if err := s.store.Put(ctx, entry); err != nil {
		return "", err
	}

	s.logger.Debug().Str("user", userID).Str("ticker", normalized).Msg("Portfolio ticker added")
	return normalized, nil
}

// Remove deletes a ticker from the user's watchlist. Removing an absent
// ticker is not an error.
func (s *Service) Remove(ctx context.Context, userID, ticker string) error {
	normalized := strings.ToUpper(strings.TrimSpace(ticker))
	if normalized == "" {
		return fmt.Errorf("ticker is required")
	}
	return s.store.Delete(ctx, userID, normalized)
}

var _ interfaces.PortfolioService = (*Service)(nil)
