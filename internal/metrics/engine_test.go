package metrics

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/bobmcallan/insight/internal/models"
)

func vol(v int64) *int64 { return &v }

func bars(closes ...float64) []models.HistoryBar {
	out := make([]models.HistoryBar, len(closes))
	for i, c := range closes {
		out[i] = models.HistoryBar{
			Date:   fmt.Sprintf("2025-01-%02d", i%28+1),
			Close:  c,
			Volume: vol(1000),
		}
	}
	return out
}

func TestCompute_EmptyHistory(t *testing.T) {
	m := Compute(nil, nil)

	if m.PeriodPctChange != nil {
		t.Errorf("PeriodPctChange = %v, want absent", *m.PeriodPctChange)
	}
	if m.MA50 != nil {
		t.Errorf("MA50 = %v, want absent", *m.MA50)
	}
	if m.MA200 != nil {
		t.Errorf("MA200 = %v, want absent", *m.MA200)
	}
	if m.VolatilityAnnualApprox != nil {
		t.Errorf("Volatility = %v, want absent", *m.VolatilityAnnualApprox)
	}
	if m.AvgVolume != nil {
		t.Errorf("AvgVolume = %v, want absent", *m.AvgVolume)
	}
}

func TestCompute_MA200_ExactMeanOfLast200(t *testing.T) {
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = float64(i + 1) // strictly increasing 1..300
	}
	m := Compute(nil, bars(closes...))

	if m.MA200 == nil {
		t.Fatal("MA200 absent, want present")
	}
	// Mean of 101..300 = 200.5
	if math.Abs(*m.MA200-200.5) > 1e-9 {
		t.Errorf("MA200 = %v, want 200.5", *m.MA200)
	}
}

func TestCompute_MA50_FallbackWindow(t *testing.T) {
	// 20 closes: the 50-window falls back to min(10, N)=10 trailing closes.
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	m := Compute(nil, bars(closes...))

	if m.MA50 == nil {
		t.Fatal("MA50 absent, want present")
	}
	// Mean of 11..20 = 15.5
	if math.Abs(*m.MA50-15.5) > 1e-9 {
		t.Errorf("MA50 = %v, want 15.5", *m.MA50)
	}
}

func TestCompute_ConstantPriceScenario(t *testing.T) {
	closes := make([]float64, 91)
	for i := range closes {
		closes[i] = 150.0
	}
	info := &models.TickerInfo{LongName: "Apple Inc.", Symbol: "AAPL"}
	m := Compute(info, bars(closes...))

	if m.PeriodPctChange == nil || *m.PeriodPctChange != 0.0 {
		t.Errorf("PeriodPctChange = %v, want 0.0", m.PeriodPctChange)
	}
	if m.VolatilityAnnualApprox == nil || *m.VolatilityAnnualApprox != 0.0 {
		t.Errorf("Volatility = %v, want 0.0", m.VolatilityAnnualApprox)
	}
	if m.MA50 == nil || math.Abs(*m.MA50-150.0) > 1e-9 {
		t.Errorf("MA50 = %v, want 150.0", m.MA50)
	}
}

func TestCompute_ZeroFirstClose(t *testing.T) {
	m := Compute(nil, bars(0, 10, 20))
	if m.PeriodPctChange != nil {
		t.Errorf("PeriodPctChange = %v, want absent (division by zero)", *m.PeriodPctChange)
	}
}

func TestCompute_SingleClose(t *testing.T) {
	m := Compute(nil, bars(42.0))
	if m.VolatilityAnnualApprox != nil {
		t.Errorf("Volatility = %v, want absent with one close", *m.VolatilityAnnualApprox)
	}
	if m.PeriodPctChange == nil || *m.PeriodPctChange != 0.0 {
		t.Errorf("PeriodPctChange = %v, want 0.0", m.PeriodPctChange)
	}
}

func TestCompute_PassthroughFundamentals(t *testing.T) {
	mc := 3.2e12
	pe := 31.5
	info := &models.TickerInfo{
		Sector:     "Technology",
		Industry:   "Consumer Electronics",
		MarketCap:  &mc,
		TrailingPE: &pe,
	}
	m := Compute(info, nil)

	if m.Sector != "Technology" {
		t.Errorf("Sector = %q", m.Sector)
	}
	if m.MarketCap == nil || *m.MarketCap != mc {
		t.Errorf("MarketCap = %v, want %v", m.MarketCap, mc)
	}
	if m.ForwardPE != nil {
		t.Errorf("ForwardPE = %v, want absent", *m.ForwardPE)
	}
}

func TestCompute_AvgVolume(t *testing.T) {
	history := []models.HistoryBar{
		{Close: 10, Volume: vol(100)},
		{Close: 11, Volume: vol(200)},
		{Close: 12, Volume: vol(300)},
	}
	m := Compute(nil, history)
	if m.AvgVolume == nil || *m.AvgVolume != 200.0 {
		t.Errorf("AvgVolume = %v, want 200", m.AvgVolume)
	}
}

// A reported zero volume is a real observation (halted session) and pulls
// the mean down; a bar with no volume at all is excluded.
func TestCompute_AvgVolumeCountsZeroSkipsMissing(t *testing.T) {
	history := []models.HistoryBar{
		{Close: 10, Volume: vol(300)},
		{Close: 11, Volume: vol(0)},
		{Close: 12, Volume: nil},
	}
	m := Compute(nil, history)
	if m.AvgVolume == nil || *m.AvgVolume != 150.0 {
		t.Errorf("AvgVolume = %v, want 150", m.AvgVolume)
	}
}

func TestFormatText_Empty(t *testing.T) {
	if got := FormatText(models.MetricsSnapshot{}); got != "(no metrics available)" {
		t.Errorf("FormatText = %q", got)
	}
}

func TestFormatText_HumanizedMarketCap(t *testing.T) {
	mc := 3.45e12
	text := FormatText(models.MetricsSnapshot{MarketCap: &mc})
	if !strings.Contains(text, "$3.45T") {
		t.Errorf("FormatText = %q, want to contain $3.45T", text)
	}
}
