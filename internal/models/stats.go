package models

import "time"

// PlatformStats maps client type to join count, plus a synthetic
// "total" key summing across client types.
type PlatformStats map[string]int64

// CountryStats groups join counts by tier, then country, then client
// type. Rows with no recorded tier or country are excluded.
type CountryStats map[string]map[string]map[string]int64

// RevenueStats maps currency code to summed amounts. There is no
// cross-currency total.
type RevenueStats map[string]float64

// PlayerCountStats is the concurrent-player summary for one hostname.
// Averages is keyed by window label ("24h", "7d", "14d", "30d").
type PlayerCountStats struct {
	Hostname  string             `json:"hostname"`
	Current   int                `json:"current"`
	Averages  map[string]float64 `json:"averages"`
	PeakCount int                `json:"peak_count"`
	PeakTime  *time.Time         `json:"peak_time,omitempty"`
}

// SessionStats is the per-hostname session aggregate. Durations are in
// seconds, matching Session.Duration.
type SessionStats struct {
	UniquePlayers int64   `json:"unique_players"`
	TotalSessions int64   `json:"total_sessions"`
	AvgDuration   float64 `json:"avg_duration"`
	TotalDuration int64   `json:"total_duration"`
}

// CampaignMetrics are derived on read and never stored.
type CampaignMetrics struct {
	Cost    float64 `json:"cost"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	ROI     float64 `json:"roi"`
}

// PlatformComparison compares the join totals of two hostnames.
type PlatformComparison struct {
	TotalA      int64   `json:"total_a"`
	TotalB      int64   `json:"total_b"`
	Difference  int64   `json:"difference"`
	PercentDiff float64 `json:"percent_difference"`
}

// TierComparison compares one country tier's join totals across two
// hostnames.
type TierComparison struct {
	TotalA      int64   `json:"total_a"`
	TotalB      int64   `json:"total_b"`
	Difference  int64   `json:"difference"`
	PercentDiff float64 `json:"percent_difference"`
}

// CurrencyComparison compares revenue in a single currency across two
// hostnames.
type CurrencyComparison struct {
	AmountA     float64 `json:"amount_a"`
	AmountB     float64 `json:"amount_b"`
	Difference  float64 `json:"difference"`
	PercentDiff float64 `json:"percent_difference"`
}

// RevenueComparison compares revenue across two hostnames, overall and
// per currency. Overall totals mix currencies and are only meaningful
// as a rough volume signal; per-currency entries are exact.
type RevenueComparison struct {
	TotalA      float64                       `json:"total_a"`
	TotalB      float64                       `json:"total_b"`
	Difference  float64                       `json:"difference"`
	PercentDiff float64                       `json:"percent_difference"`
	Currencies  map[string]CurrencyComparison `json:"currencies"`
}

// SessionComparison compares average session durations (seconds) of
// two hostnames.
type SessionComparison struct {
	AverageA    float64 `json:"average_a"`
	AverageB    float64 `json:"average_b"`
	Difference  float64 `json:"difference"`
	PercentDiff float64 `json:"percent_difference"`
}
