package metrics

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/insight/internal/models"
)

// FormatText renders a MetricsSnapshot as a short readable block for prompts
// and reports. Absent fields are skipped.
func FormatText(m models.MetricsSnapshot) string {
	lines := []string{}

	if m.Sector != "" {
		lines = append(lines, fmt.Sprintf("Sector: %s, Industry: %s", m.Sector, m.Industry))
	}
	if m.MarketCap != nil {
		lines = append(lines, fmt.Sprintf("Market cap: %s", humanizeMarketCap(*m.MarketCap)))
	}
	if m.TrailingPE != nil {
		lines = append(lines, fmt.Sprintf("Trailing P/E: %.2f", *m.TrailingPE))
	}
	if m.ForwardPE != nil {
		lines = append(lines, fmt.Sprintf("Forward P/E: %.2f", *m.ForwardPE))
	}
	if m.Beta != nil {
		lines = append(lines, fmt.Sprintf("Beta: %.2f", *m.Beta))
	}
	if m.PeriodPctChange != nil {
		lines = append(lines, fmt.Sprintf("Price change over sample: %.2f%%", *m.PeriodPctChange))
	}
	if m.MA50 != nil {
		lines = append(lines, fmt.Sprintf("MA-50 (approx): %.2f", *m.MA50))
	}
	if m.MA200 != nil {
		lines = append(lines, fmt.Sprintf("MA-200 (approx): %.2f", *m.MA200))
	}
	if m.VolatilityAnnualApprox != nil {
		lines = append(lines, fmt.Sprintf("Approx annual volatility (std): %.2f%%", *m.VolatilityAnnualApprox*100))
	}
	if m.AvgVolume != nil {
		lines = append(lines, fmt.Sprintf("Avg volume (sample): %d", int64(*m.AvgVolume)))
	}

	if len(lines) == 0 {
		return "(no metrics available)"
	}
	return strings.Join(lines, "\n")
}

// humanizeMarketCap renders a market cap in trillions, billions or millions.
func humanizeMarketCap(mc float64) string {
	switch {
	case mc >= 1e12:
		return fmt.Sprintf("$%.2fT", mc/1e12)
	case mc >= 1e9:
		return fmt.Sprintf("$%.2fB", mc/1e9)
	case mc >= 1e6:
		return fmt.Sprintf("$%.2fM", mc/1e6)
	default:
		return fmt.Sprintf("$%.0f", mc)
	}
}
