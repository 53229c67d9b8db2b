package models

import "time"

// CompanyProfile is the subset of the Finnhub profile2 payload this server
// consumes.
type CompanyProfile struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Country  string `json:"country"`
	Industry string `json:"finnhubIndustry"`
}

// Quote is a real-time quote. Only the volume field is used here, as the
// ranking table deliberately shows no live price data.
type Quote struct {
	Current       float64  `json:"c"`
	Change        float64  `json:"d"`
	PercentChange float64  `json:"dp"`
	Volume        *float64 `json:"v"`
}

// CandleSeries is the columnar OHLCV payload of the candle endpoint.
type CandleSeries struct {
	Open   []float64 `json:"o"`
	High   []float64 `json:"h"`
	Low    []float64 `json:"l"`
	Close  []float64 `json:"c"`
	Volume []float64 `json:"v"`
	Times  []int64   `json:"t"`
	Status string    `json:"s"`
}

// VolumeOn returns the volume of the daily bar whose UTC day matches date
// (YYYY-MM-DD). Requires an exact date match; weekend and holiday bars around
// the target do not qualify.
func (c *CandleSeries) VolumeOn(date string) (float64, bool) {
	if c == nil || len(c.Times) == 0 || len(c.Volume) == 0 {
		return 0, false
	}
	for i, ts := range c.Times {
		if i >= len(c.Volume) {
			break
		}
		day := time.Unix(ts, 0).UTC().Format("2006-01-02")
		if day == date {
			return c.Volume[i], true
		}
	}
	return 0, false
}
