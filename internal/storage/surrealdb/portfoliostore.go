package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/stockforge/stockforge/internal/common"
	"github.com/stockforge/stockforge/internal/interfaces"
	"github.com/stockforge/stockforge/internal/models"
)

// PortfolioStore persists watchlist entries, one record per (user, ticker).
type PortfolioStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPortfolioStore(db *surrealdb.DB, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{
		db:     db,
		logger: logger,
	}
}

func portfolioRecordID(userID, ticker string) string {
	return userID + "_" + ticker
}

func (s *PortfolioStore) List(ctx context.Context, userID string) ([]*models.PortfolioEntry, error) {
	sql := "SELECT * FROM portfolio WHERE user_id = $user_id ORDER BY added_at ASC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.PortfolioEntry](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio entries: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.PortfolioEntry
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

func (s *PortfolioStore) Put(ctx context.Context, entry *models.PortfolioEntry) error {
	id := portfolioRecordID(entry.UserID, entry.Ticker)
	sql := "UPSERT $rid CONTENT $record"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID("portfolio", id),
		"record": entry,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.PortfolioEntry](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to put portfolio entry after retries: %w", lastErr)
}

func (s *PortfolioStore) Delete(ctx context.Context, userID, ticker string) error {
	rid := surrealmodels.NewRecordID("portfolio", portfolioRecordID(userID, ticker))
	_, err := surrealdb.Delete[models.PortfolioEntry](ctx, s.db, rid)
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete portfolio entry: %w", err)
	}
	return nil
}

func (s *PortfolioStore) Close() error {
	return nil
}

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not found")
}

// Compile-time check
var _ interfaces.PortfolioStore = (*PortfolioStore)(nil)
