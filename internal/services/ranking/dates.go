package ranking

import "time"

const dateLayout = "2006-01-02"

// previousDays returns count calendar days before fromDate, most recent first.
// An unparseable date yields an empty window, which callers treat as probe
// exhaustion rather than an error.
func previousDays(fromDate string, count int) []string {
	t, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return nil
	}
	out := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, t.AddDate(0, 0, -i).Format(dateLayout))
	}
	return out
}
