// Package weather provides the Weatherstack current-conditions tool.
//
// The lookup never returns an error: every failure is absorbed into a
// descriptive string, because the string becomes the tool output shown to
// the remote agent and a raised fault would abort the whole run instead of
// letting the agent recover conversationally.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/aviary-ai/aviary/runtime"
)

// ToolName is the function name the remote agent calls.
const ToolName = "get_weatherstack_weather"

// Config holds the Weatherstack provider settings.
type Config struct {
	APIKey  string        `envconfig:"WEATHERSTACK_API_KEY" required:"true"`
	BaseURL string        `envconfig:"WEATHERSTACK_API_URL" default:"https://api.weatherstack.com/current"`
	Timeout time.Duration `envconfig:"WEATHERSTACK_TIMEOUT" default:"10s"`
}

// LoadConfig reads the provider settings from the environment.
// A missing API key fails fast with a descriptive error.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("weather: load config: %w", err)
	}
	return cfg, nil
}

// Report is the validated subset of a Weatherstack response used as tool
// output.
type Report struct {
	Location     string
	TemperatureC float64
	Condition    string
	HumidityPct  int
}

// Summary returns the human-readable line used as tool output.
func (r Report) Summary(date string) string {
	dateClause := ""
	if date != "" {
		dateClause = " on " + date
	}
	return fmt.Sprintf("Weather for %s%s: %.1f°C, %s, humidity %d%%",
		r.Location, dateClause, r.TemperatureC, r.Condition, r.HumidityPct)
}

// Response payload, decoded with named optional fields and validated here at
// the boundary. Temperature and humidity are pointers: the provider omits
// them on some plans and absence must be distinguishable from zero.
type payload struct {
	Error    *apiError     `json:"error"`
	Location *locationData `json:"location"`
	Current  *currentData  `json:"current"`
}

type apiError struct {
	Code int    `json:"code"`
	Info string `json:"info"`
}

type locationData struct {
	Name      string `json:"name"`
	Country   string `json:"country"`
	Localtime string `json:"localtime"`
}

type currentData struct {
	Temperature         *float64 `json:"temperature"`
	Humidity            *int     `json:"humidity"`
	WeatherDescriptions []string `json:"weather_descriptions"`
}

// Client looks up current conditions from the Weatherstack API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a weather client from the given configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// Current fetches live conditions for a location. date is informational
// only: historical lookups are not supported, so a requested date adds a
// fallback note while the latest conditions are returned.
func (c *Client) Current(ctx context.Context, location, date string) string {
	if location == "" {
		return "Missing location."
	}

	params := url.Values{}
	params.Set("access_key", c.cfg.APIKey)
	params.Set("query", location)
	params.Set("units", "m")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Sprintf("Weather service request failed: %v", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Sprintf("Weather service request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil || resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Weather service request failed with status %s.", resp.Status)
	}

	var data payload
	if err := json.Unmarshal(body, &data); err != nil {
		return "Weather service returned an unreadable response."
	}

	if data.Error != nil {
		info := data.Error.Info
		if info == "" {
			info = "Unknown error from Weatherstack."
		}
		return fmt.Sprintf("Weather service error (%d): %s", data.Error.Code, info)
	}

	if data.Current == nil {
		return "Weather service returned no current conditions for that query."
	}
	if data.Current.Temperature == nil || data.Current.Humidity == nil {
		return "Weather service response was missing temperature or humidity data."
	}

	name := location
	country := ""
	localtime := ""
	if data.Location != nil {
		if data.Location.Name != "" {
			name = data.Location.Name
		}
		country = data.Location.Country
		localtime = data.Location.Localtime
	}

	report := Report{
		Location:     name,
		TemperatureC: *data.Current.Temperature,
		Condition:    joinConditions(data.Current.WeatherDescriptions),
		HumidityPct:  *data.Current.Humidity,
	}

	reportedDate := date
	if reportedDate == "" {
		reportedDate = localtime
	}

	notes := []string{}
	if date != "" {
		notes = append(notes, "Historical dates are not supported on this plan; returning the latest conditions instead.")
	}
	notes = append(notes, "Data source: Weatherstack live API.")
	if country != "" {
		notes = append(notes, "Country: "+country)
	}

	return report.Summary(reportedDate) + ". " + strings.Join(notes, " ")
}

// joinConditions flattens the provider's description list into one clause.
func joinConditions(descriptions []string) string {
	var kept []string
	for _, d := range descriptions {
		if d != "" {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return "Unknown conditions"
	}
	return strings.Join(kept, ", ")
}

// Args are the tool call arguments for the weather function.
type Args struct {
	Location string `json:"location" desc:"Name of the city to look up weather for." required:"true"`
	Date     string `json:"date" desc:"Optional ISO date string for the requested forecast day."`
}

// Registration returns the dispatcher registration for the weather tool.
func (c *Client) Registration() runtime.Registration {
	return runtime.Func(ToolName,
		"Return live weather information (temperature, conditions, humidity) for a city using the Weatherstack API.",
		func(ctx context.Context, args Args) (string, error) {
			return c.Current(ctx, args.Location, args.Date), nil
		},
	)
}
