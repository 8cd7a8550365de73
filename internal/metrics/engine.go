// Package metrics derives numeric indicators from static fundamentals and a
// daily price/volume history. Every computation degrades to an absent field
// when its input is insufficient; no NaN, Inf or sentinel values surface.
package metrics

import (
	"math"

	"github.com/bobmcallan/insight/internal/models"
)

// tradingDaysPerYear scales daily return deviation to an annual horizon.
const tradingDaysPerYear = 252

// Compute builds a MetricsSnapshot from provider info and a price history
// ordered oldest first.
func Compute(info *models.TickerInfo, history []models.HistoryBar) models.MetricsSnapshot {
	snapshot := models.MetricsSnapshot{}

	if info != nil {
		snapshot.Sector = info.Sector
		snapshot.Industry = info.Industry
		snapshot.MarketCap = info.MarketCap
		snapshot.TrailingPE = info.TrailingPE
		snapshot.ForwardPE = info.ForwardPE
		snapshot.Beta = info.Beta
	}

	closes := make([]float64, 0, len(history))
	volumes := make([]int64, 0, len(history))
	for _, bar := range history {
		closes = append(closes, bar.Close)
		if bar.Volume != nil {
			volumes = append(volumes, *bar.Volume)
		}
	}

	if len(closes) > 0 {
		snapshot.PeriodPctChange = periodPctChange(closes)
		snapshot.MA50 = movingAverageWithFallback(closes, 50, 10)
		snapshot.MA200 = movingAverageWithFallback(closes, 200, 50)
		snapshot.VolatilityAnnualApprox = annualizedVolatility(closes)
	}

	if len(volumes) > 0 {
		sum := 0.0
		for _, v := range volumes {
			sum += float64(v)
		}
		snapshot.AvgVolume = models.Finite(sum / float64(len(volumes)))
	}

	return snapshot
}

// periodPctChange computes the percent change between first and last close.
// Absent when the first close is zero.
func periodPctChange(closes []float64) *float64 {
	first := closes[0]
	last := closes[len(closes)-1]
	if first == 0 {
		return nil
	}
	return models.Finite((last - first) / first * 100.0)
}

// movingAverageWithFallback averages the trailing window of size period,
// falling back to min(fallback, len) when the series is shorter than period.
func movingAverageWithFallback(closes []float64, period, fallback int) *float64 {
	if ma := movingAverage(closes, period); ma != nil {
		return ma
	}
	window := fallback
	if len(closes) < window {
		window = len(closes)
	}
	return movingAverage(closes, window)
}

// movingAverage is the simple mean of the trailing window, or nil when the
// series is shorter than the window.
func movingAverage(closes []float64, window int) *float64 {
	if window <= 0 || len(closes) < window {
		return nil
	}
	sum := 0.0
	for _, c := range closes[len(closes)-window:] {
		sum += c
	}
	return models.Finite(sum / float64(window))
}

// annualizedVolatility is the population standard deviation of day-over-day
// simple returns scaled by sqrt(252). Absent with fewer than 2 closes.
func annualizedVolatility(closes []float64) *float64 {
	returns := make([]float64, 0, len(closes))
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			continue
		}
		returns = append(returns, (closes[i]-prev)/prev)
	}
	if len(returns) == 0 {
		return nil
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	return models.Finite(math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear))
}
