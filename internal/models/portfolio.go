package models

import "time"

// PortfolioEntry is one ticker on a user's watchlist. Entries are keyed by
// (user, ticker); adding an existing ticker is a no-op.
type PortfolioEntry struct {
	UserID  string    `json:"user_id"`
	Ticker  string    `json:"ticker"`
	AddedAt time.Time `json:"added_at"`
}

// Enrichment is the company metadata and volume attached to one ticker.
// Empty string fields mean "unknown" and are never merged into a record.
type Enrichment struct {
	CompanyName string
	Industry    string
	CountryCode string
	CountryName string
	DailyVolume *float64
}
