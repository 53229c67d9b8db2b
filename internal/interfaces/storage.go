package interfaces

import (
	"context"

	"github.com/stockforge/stockforge/internal/models"
)

// PortfolioStore persists watchlist entries keyed by (user, ticker).
type PortfolioStore interface {
	List(ctx context.Context, userID string) ([]*models.PortfolioEntry, error)
	Put(ctx context.Context, entry *models.PortfolioEntry) error
	Delete(ctx context.Context, userID, ticker string) error
	Close() error
}
