package models

import "math"

// Key alias tables for defensive field extraction. Upstream payloads have
// drifted across API versions; the first non-empty match wins.
var (
	companyNameKeys  = []string{"companyName", "name", "company", "company_name", "shortName", "longName"}
	aiScoreDeltaKeys = []string{"aiScoreDelta", "change"}
	volumeKeys       = []string{"dailyVolume", "volume", "avgVolume", "averageVolume"}
	industryKeys     = []string{"industry", "finnhubIndustry"}
	countryCodeKeys  = []string{"countryCode", "country"}
	countryNameKeys  = []string{"countryName"}
)

// RankingRow is the flat, consumer-facing row derived from one ticker's record.
// Rows are recomputed on every fetch and never mutated afterwards.
type RankingRow struct {
	Ticker          string   `json:"ticker"`
	Rank            int      `json:"rank"`
	CompanyName     *string  `json:"companyName"`
	Country         *string  `json:"country"`
	CountryCode     *string  `json:"countryCode"`
	AIScore         float64  `json:"aiscore"`
	Fundamental     float64  `json:"fundamental"`
	Technical       float64  `json:"technical"`
	Sentiment       float64  `json:"sentiment"`
	LowRisk         float64  `json:"low_risk"`
	Change          *int     `json:"change"`
	Volume          *float64 `json:"volume"`
	Industry        *string  `json:"industry"`
	BuyTrackRecord  bool     `json:"buyTrackRecord,omitempty"`
	SellTrackRecord bool     `json:"sellTrackRecord,omitempty"`
}

// MapRecord normalizes one raw ticker record into a RankingRow. Pure function:
// numeric score fields coerce to 0 when missing or unparseable, optional fields
// stay nil, the change value is rounded to an integer.
func MapRecord(ticker string, rank int, rec RawRecord) RankingRow {
	row := RankingRow{
		Ticker:          ticker,
		Rank:            rank,
		AIScore:         scoreOrZero(rec, "aiscore"),
		Fundamental:     scoreOrZero(rec, "fundamental"),
		Technical:       scoreOrZero(rec, "technical"),
		Sentiment:       scoreOrZero(rec, "sentiment"),
		LowRisk:         scoreOrZero(rec, "low_risk"),
		BuyTrackRecord:  rec.Truthy("buy_track_record"),
		SellTrackRecord: rec.Truthy("sell_track_record"),
	}

	if s, ok := rec.String(companyNameKeys...); ok {
		row.CompanyName = &s
	}
	if n, ok := rec.Number(aiScoreDeltaKeys...); ok {
		change := int(math.Round(n))
		row.Change = &change
	}
	if n, ok := rec.Number(volumeKeys...); ok {
		row.Volume = &n
	}
	if s, ok := rec.String(industryKeys...); ok {
		row.Industry = &s
	}
	if s, ok := rec.String(countryCodeKeys...); ok {
		row.CountryCode = &s
	}
	// Display country prefers the full name, falling back to the code.
	if s, ok := rec.String(countryNameKeys...); ok {
		row.Country = &s
	} else if row.CountryCode != nil {
		row.Country = row.CountryCode
	}

	return row
}

// RowsFromSnapshot flattens a snapshot into ranked rows. Rank is the 1-based
// position in upstream iteration order; the mapper does not re-sort.
func RowsFromSnapshot(s *Snapshot) []RankingRow {
	if s == nil || s.Tickers == nil {
		return nil
	}

	tickers := s.Tickers.Tickers()
	rows := make([]RankingRow, 0, len(tickers))
	for i, ticker := range tickers {
		rec, ok := s.Tickers.Record(ticker)
		if !ok {
			continue
		}
		rows = append(rows, MapRecord(ticker, i+1, rec))
	}
	return rows
}

func scoreOrZero(rec RawRecord, key string) float64 {
	n, ok := rec.Number(key)
	if !ok {
		return 0
	}
	return n
}
