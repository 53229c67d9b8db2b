// Package models defines the data structures shared across StockForge services
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// RawRecord is one ticker's raw upstream field set. Fields are kept as decoded
// JSON values so that unknown upstream fields survive the round trip untouched.
type RawRecord map[string]any

// Number coerces the value under the first matching key to a float64.
// Returns false when no key holds a usable numeric value.
func (r RawRecord) Number(keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if n, ok := coerceNumber(v); ok {
			return n, true
		}
	}
	return 0, false
}

// String returns the first non-empty string value under the given keys.
func (r RawRecord) String(keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		s := stringify(v)
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// Truthy reports whether the value under key is boolean true or the number 1,
// the two encodings upstream uses for track-record flags.
func (r RawRecord) Truthy(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case float64:
		return v == 1
	}
	return false
}

func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return trimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t' || s[start] == '\n' || s[start] == '\r') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\n' || s[end-1] == '\r') {
		end--
	}
	return s[start:end]
}

// TickerSet holds the ticker→record object of one ranking date, preserving the
// upstream key order. Order matters: rank is the 1-based position in the
// upstream payload and must not be recomputed locally.
type TickerSet struct {
	order  []string
	values map[string]any
}

// NewTickerSet returns an empty TickerSet.
func NewTickerSet() *TickerSet {
	return &TickerSet{values: make(map[string]any)}
}

// Len returns the number of entries.
func (ts *TickerSet) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.order)
}

// Tickers returns the keys in upstream order.
func (ts *TickerSet) Tickers() []string {
	if ts == nil {
		return nil
	}
	out := make([]string, len(ts.order))
	copy(out, ts.order)
	return out
}

// Record returns the entry for ticker as a RawRecord, when it is an object.
func (ts *TickerSet) Record(ticker string) (RawRecord, bool) {
	if ts == nil {
		return nil, false
	}
	v, ok := ts.values[ticker]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return RawRecord(m), true
}

// Value returns the raw entry for a key, object or not. Single-ticker upstream
// responses occasionally flatten score fields directly under the date key.
func (ts *TickerSet) Value(key string) (any, bool) {
	if ts == nil {
		return nil, false
	}
	v, ok := ts.values[key]
	return v, ok
}

// Set inserts or replaces an entry, appending to the order on first insert.
func (ts *TickerSet) Set(ticker string, rec RawRecord) {
	if ts.values == nil {
		ts.values = make(map[string]any)
	}
	if _, exists := ts.values[ticker]; !exists {
		ts.order = append(ts.order, ticker)
	}
	ts.values[ticker] = map[string]any(rec)
}

// UnmarshalJSON decodes the ticker object with a token-level decoder so the
// upstream key order is retained.
func (ts *TickerSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ranking payload: expected object, got %v", tok)
	}

	ts.order = nil
	ts.values = make(map[string]any)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("ranking payload: non-string key %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}

		if _, exists := ts.values[key]; !exists {
			ts.order = append(ts.order, key)
		}
		ts.values[key] = value
	}

	_, err = dec.Token() // consume closing brace
	return err
}

// MarshalJSON re-emits the object in the recorded order.
func (ts *TickerSet) MarshalJSON() ([]byte, error) {
	if ts == nil || len(ts.order) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range ts.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valJSON, err := json.Marshal(ts.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Snapshot is the single-date slice of ranking data returned by one resolved
// query: one ISO date key mapping to a ticker→record set. An empty ticker set
// is valid and renders as "no data".
type Snapshot struct {
	Date    string
	Tickers *TickerSet
}

// NewEmptySnapshot returns a valid snapshot with no ticker entries for date.
func NewEmptySnapshot(date string) *Snapshot {
	return &Snapshot{Date: date, Tickers: NewTickerSet()}
}

// UnmarshalJSON takes the first key of the payload as the snapshot date.
// Additional top-level keys are not expected upstream and are dropped.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ranking payload: expected object, got %v", tok)
	}

	s.Date = ""
	s.Tickers = NewTickerSet()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("ranking payload: non-string key %v", keyTok)
		}

		if s.Date == "" {
			s.Date = key
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return err
			}
			if err := json.Unmarshal(raw, s.Tickers); err != nil {
				return err
			}
			continue
		}

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}

// MarshalJSON emits {date: {ticker: record, ...}} with upstream ticker order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	if s == nil || s.Date == "" {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	keyJSON, err := json.Marshal(s.Date)
	if err != nil {
		return nil, err
	}
	buf.Write(keyJSON)
	buf.WriteByte(':')
	valJSON, err := json.Marshal(s.Tickers)
	if err != nil {
		return nil, err
	}
	buf.Write(valJSON)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AIScore extracts the aiscore for ticker, tolerating both upstream payload
// shapes: {date: {TICKER: {aiscore: N}}} and the flattened {date: {aiscore: N}}.
func (s *Snapshot) AIScore(ticker string) (float64, bool) {
	if s == nil || s.Tickers == nil {
		return 0, false
	}
	if v, ok := s.Tickers.Value("aiscore"); ok {
		if n, ok := coerceNumber(v); ok {
			return n, true
		}
	}
	if rec, ok := s.Tickers.Record(ticker); ok {
		return rec.Number("aiscore")
	}
	return 0, false
}

// RankingFilters is the opaque filter set forwarded verbatim to the ranking
// upstream alongside the probed date.
type RankingFilters struct {
	Ticker          string
	Asset           string
	Sector          string
	Industry        string
	BuyTrackRecord  string
	SellTrackRecord string
}

// Values encodes the non-empty filters as URL query parameters.
func (f RankingFilters) Values() url.Values {
	params := url.Values{}
	if f.Ticker != "" {
		params.Set("ticker", f.Ticker)
	}
	if f.Asset != "" {
		params.Set("asset", f.Asset)
	}
	if f.Sector != "" {
		params.Set("sector", f.Sector)
	}
	if f.Industry != "" {
		params.Set("industry", f.Industry)
	}
	if f.BuyTrackRecord != "" {
		params.Set("buy_track_record", f.BuyTrackRecord)
	}
	if f.SellTrackRecord != "" {
		params.Set("sell_track_record", f.SellTrackRecord)
	}
	return params
}
