package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bobmcallan/insight/internal/interfaces"
)

func TestGetTickerInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v10/finance/quoteSummary/AAPL" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("modules"); got != "price,summaryProfile,summaryDetail" {
			t.Errorf("unexpected modules param: %s", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected User-Agent header")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"quoteSummary": {
				"result": [{
					"price": {
						"symbol": "AAPL",
						"longName": "Apple Inc.",
						"shortName": "Apple",
						"marketCap": {"raw": 3000000000000, "fmt": "3.00T"}
					},
					"summaryProfile": {
						"sector": "Technology",
						"industry": "Consumer Electronics",
						"longBusinessSummary": "Apple designs consumer electronics.",
						"website": "https://www.apple.com",
						"country": "United States"
					},
					"summaryDetail": {
						"trailingPE": {"raw": 29.5},
						"forwardPE": 27.1,
						"beta": {}
					}
				}],
				"error": null
			}
		}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	info, err := client.GetTickerInfo(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetTickerInfo failed: %v", err)
	}
	if info == nil {
		t.Fatal("expected info, got nil")
	}

	if info.Symbol != "AAPL" || info.LongName != "Apple Inc." {
		t.Errorf("unexpected identity fields: %+v", info)
	}
	if info.Sector != "Technology" {
		t.Errorf("unexpected sector: %s", info.Sector)
	}
	if info.MarketCap == nil || *info.MarketCap != 3000000000000 {
		t.Errorf("expected market cap from raw envelope, got %v", info.MarketCap)
	}
	if info.ForwardPE == nil || *info.ForwardPE != 27.1 {
		t.Errorf("expected forward PE from bare number, got %v", info.ForwardPE)
	}
	if info.Beta != nil {
		t.Errorf("expected absent beta from empty envelope, got %v", info.Beta)
	}
}

func TestGetTickerInfoEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"quoteSummary": {"result": [], "error": null}}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	info, err := client.GetTickerInfo(context.Background(), "ZZZZ")
	if err != nil {
		t.Fatalf("expected nil error for empty result, got %v", err)
	}
	if info != nil {
		t.Errorf("expected nil info for empty result, got %+v", info)
	}
}

func TestGetTickerInfoAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"quoteSummary": {"result": null, "error": {"code": "Not Found", "description": "Quote not found"}}}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.GetTickerInfo(context.Background(), "ZZZZ")
	if err == nil {
		t.Fatal("expected error on API failure")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status: %d", apiErr.StatusCode)
	}
}

func TestGetHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("range") != "3mo" || q.Get("interval") != "1d" {
			t.Errorf("unexpected defaults: range=%s interval=%s", q.Get("range"), q.Get("interval"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"chart": {
				"result": [{
					"timestamp": [1767225600, 1767312000, 1767398400],
					"indicators": {
						"quote": [{
							"open":   [149.0, 151.0, 152.0],
							"high":   [151.0, 153.0, 154.0],
							"low":    [148.0, 150.0, 151.0],
							"close":  [150.0, null, 153.0],
							"volume": [1000000, 1100000, 1200000]
						}]
					}
				}],
				"error": null
			}
		}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	bars, err := client.GetHistory(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}

	if len(bars) != 2 {
		t.Fatalf("expected 2 bars (null close dropped), got %d", len(bars))
	}
	if bars[0].Close != 150.0 || bars[1].Close != 153.0 {
		t.Errorf("unexpected closes: %+v", bars)
	}
	if bars[0].Date != "2026-01-01T00:00:00Z" {
		t.Errorf("expected ISO-8601 UTC date, got %s", bars[0].Date)
	}
	if bars[0].Volume == nil || *bars[0].Volume != 1000000 {
		t.Errorf("unexpected volume: %v", bars[0].Volume)
	}
}

func TestGetHistoryCustomRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("range") != "1y" || q.Get("interval") != "1wk" {
			t.Errorf("options not applied: range=%s interval=%s", q.Get("range"), q.Get("interval"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	bars, err := client.GetHistory(context.Background(), "AAPL",
		interfaces.WithRange("1y"), interfaces.WithInterval("1wk"))
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if bars != nil {
		t.Errorf("expected nil bars for empty result, got %v", bars)
	}
}
