// Package stocks provides the Alpha Vantage intraday quote tool.
//
// Like the other tool functions, the lookup absorbs every failure into a
// descriptive string so the remote agent can recover conversationally.
package stocks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/aviary-ai/aviary/runtime"
)

// ToolName is the function name the remote agent calls.
const ToolName = "fetch_intraday_stock_price"

// DefaultInterval is used when the requested interval is absent or invalid.
const DefaultInterval = "5min"

var validIntervals = map[string]bool{
	"1min":  true,
	"5min":  true,
	"15min": true,
	"30min": true,
	"60min": true,
}

// knownCompanies resolves common company names to tickers so the agent can
// pass whatever the user said.
var knownCompanies = map[string]string{
	"apple":     "AAPL",
	"microsoft": "MSFT",
	"google":    "GOOGL",
	"alphabet":  "GOOGL",
	"amazon":    "AMZN",
	"tesla":     "TSLA",
	"meta":      "META",
	"nvidia":    "NVDA",
	"ibm":       "IBM",
}

// Config holds the Alpha Vantage provider settings.
type Config struct {
	APIKey  string        `envconfig:"ALPHAVANTAGE_API_KEY" required:"true"`
	BaseURL string        `envconfig:"ALPHAVANTAGE_API_URL" default:"https://www.alphavantage.co/query"`
	Timeout time.Duration `envconfig:"ALPHAVANTAGE_TIMEOUT" default:"15s"`
}

// LoadConfig reads the provider settings from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("stocks: load config: %w", err)
	}
	return cfg, nil
}

// Client looks up intraday quotes from the Alpha Vantage API.
// The HTTP client is shared across calls.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a stocks client from the given configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// ResolveSymbol maps a company name or explicit symbol to a ticker.
// Returns "" when no plausible ticker can be derived.
func ResolveSymbol(company, symbol string) string {
	if symbol != "" {
		return strings.ToUpper(strings.TrimSpace(symbol))
	}

	normalized := strings.ToLower(strings.TrimSpace(company))
	if normalized == "" {
		return ""
	}
	if mapped, ok := knownCompanies[normalized]; ok {
		return mapped
	}

	// Short alphanumeric names are plausibly tickers already.
	fallback := strings.ToUpper(strings.TrimSpace(company))
	stripped := strings.ReplaceAll(fallback, ".", "")
	if len(fallback) >= 1 && len(fallback) <= 6 && isAlphanumeric(stripped) {
		return fallback
	}
	return ""
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// intradayBar is one OHLCV record. Alpha Vantage keys fields with
// numbered labels.
type intradayBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// IntradayQuote fetches the latest intraday bar for a company or symbol and
// formats it as a one-line report.
func (c *Client) IntradayQuote(ctx context.Context, company, symbol, interval string) string {
	chosenInterval := interval
	if !validIntervals[chosenInterval] {
		chosenInterval = DefaultInterval
	}

	resolved := ResolveSymbol(company, symbol)
	if resolved == "" {
		return "Unable to determine a ticker symbol from the provided company or symbol. " +
			"Please specify the exchange ticker (e.g., AAPL)."
	}

	params := url.Values{}
	params.Set("function", "TIME_SERIES_INTRADAY")
	params.Set("symbol", resolved)
	params.Set("interval", chosenInterval)
	params.Set("apikey", c.cfg.APIKey)
	params.Set("datatype", "json")
	params.Set("outputsize", "compact")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Sprintf("Failed to reach Alpha Vantage: %v", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Sprintf("Failed to reach Alpha Vantage: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return fmt.Sprintf("Failed to reach Alpha Vantage: %v", err)
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return "Alpha Vantage returned a non-JSON response."
	}

	seriesKey := ""
	for key := range data {
		if strings.HasPrefix(key, "Time Series") {
			seriesKey = key
			break
		}
	}
	if seriesKey == "" {
		for _, key := range []string{"Note", "Information", "Error Message"} {
			var diagnostic string
			if raw, ok := data[key]; ok && json.Unmarshal(raw, &diagnostic) == nil && diagnostic != "" {
				return "Alpha Vantage did not return intraday data: " + diagnostic
			}
		}
		return "Alpha Vantage response did not include intraday time series data."
	}

	var series map[string]intradayBar
	if err := json.Unmarshal(data[seriesKey], &series); err != nil || len(series) == 0 {
		return "Alpha Vantage returned an empty time series for that ticker."
	}

	latest := ""
	for timestamp := range series {
		if timestamp > latest {
			latest = timestamp
		}
	}
	bar := series[latest]

	open, err1 := strconv.ParseFloat(bar.Open, 64)
	high, err2 := strconv.ParseFloat(bar.High, 64)
	low, err3 := strconv.ParseFloat(bar.Low, 64)
	closePrice, err4 := strconv.ParseFloat(bar.Close, 64)
	volume, err5 := strconv.ParseFloat(bar.Volume, 64)
	for _, err := range []error{err1, err2, err3, err4, err5} {
		if err != nil {
			return fmt.Sprintf("Failed to parse intraday record: %v", err)
		}
	}

	display := company
	if display == "" {
		display = resolved
	}
	return fmt.Sprintf(
		"Latest %s price for %s (%s) at %s is $%.2f USD (open %.2f, high %.2f, low %.2f, volume %d). Data via Alpha Vantage.",
		chosenInterval, display, resolved, latest, closePrice, open, high, low, int64(volume))
}

// Args are the tool call arguments for the stock quote function.
type Args struct {
	Company  string `json:"company" desc:"Company name the user mentioned (e.g., Apple, Microsoft)."`
	Symbol   string `json:"symbol" desc:"Ticker symbol for the stock (e.g., AAPL, MSFT)."`
	Interval string `json:"interval" desc:"Intraday interval supported by Alpha Vantage." enum:"1min,5min,15min,30min,60min"`
}

// Registration returns the dispatcher registration for the stock quote tool.
func (c *Client) Registration() runtime.Registration {
	return runtime.Func(ToolName,
		"Fetch the latest intraday stock price for a company using the Alpha Vantage API.",
		func(ctx context.Context, args Args) (string, error) {
			return c.IntradayQuote(ctx, args.Company, args.Symbol, args.Interval), nil
		},
	)
}
