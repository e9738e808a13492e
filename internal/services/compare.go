package services

import (
	"playstats/internal/models"
)

// Comparison helpers are pure functions over already-computed stat
// results. Percentage difference is 0 when both sides are 0 and 100
// when only the denominator is 0.

func percentDiff(a, b float64) float64 {
	if b != 0 {
		return (a - b) / b * 100
	}
	if a > 0 {
		return 100
	}
	return 0
}

// ComparePlatforms compares the join totals of two platform stat
// results.
func ComparePlatforms(statsA, statsB models.PlatformStats) models.PlatformComparison {
	totalA := statsA["total"]
	totalB := statsB["total"]
	return models.PlatformComparison{
		TotalA:      totalA,
		TotalB:      totalB,
		Difference:  totalA - totalB,
		PercentDiff: percentDiff(float64(totalA), float64(totalB)),
	}
}

// CompareCountries compares two country stat results tier by tier.
// Tiers present on either side appear in the output.
func CompareCountries(statsA, statsB models.CountryStats) map[string]models.TierComparison {
	comparison := make(map[string]models.TierComparison)

	tiers := make(map[string]struct{})
	for tier := range statsA {
		tiers[tier] = struct{}{}
	}
	for tier := range statsB {
		tiers[tier] = struct{}{}
	}

	for tier := range tiers {
		totalA := tierTotal(statsA[tier])
		totalB := tierTotal(statsB[tier])
		comparison[tier] = models.TierComparison{
			TotalA:      totalA,
			TotalB:      totalB,
			Difference:  totalA - totalB,
			PercentDiff: percentDiff(float64(totalA), float64(totalB)),
		}
	}
	return comparison
}

func tierTotal(countries map[string]map[string]int64) int64 {
	var total int64
	for _, clients := range countries {
		for _, count := range clients {
			total += count
		}
	}
	return total
}

// CompareRevenue compares two revenue stat results, overall and per
// currency.
func CompareRevenue(statsA, statsB models.RevenueStats) models.RevenueComparison {
	var totalA, totalB float64
	for _, amount := range statsA {
		totalA += amount
	}
	for _, amount := range statsB {
		totalB += amount
	}

	comparison := models.RevenueComparison{
		TotalA:      totalA,
		TotalB:      totalB,
		Difference:  totalA - totalB,
		PercentDiff: percentDiff(totalA, totalB),
		Currencies:  make(map[string]models.CurrencyComparison),
	}

	currencies := make(map[string]struct{})
	for currency := range statsA {
		currencies[currency] = struct{}{}
	}
	for currency := range statsB {
		currencies[currency] = struct{}{}
	}

	for currency := range currencies {
		amountA := statsA[currency]
		amountB := statsB[currency]
		comparison.Currencies[currency] = models.CurrencyComparison{
			AmountA:     amountA,
			AmountB:     amountB,
			Difference:  amountA - amountB,
			PercentDiff: percentDiff(amountA, amountB),
		}
	}
	return comparison
}
