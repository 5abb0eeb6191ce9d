// Package weather provides a client for the Visual Crossing timeline API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services"

// Observation is one day of weather for a county.
type Observation struct {
	MeasurementDate string  `json:"measurement_date"`
	CountyState     string  `json:"county_state"`
	MinTemp         float64 `json:"min_temp"`
	MaxTemp         float64 `json:"max_temp"`
	Precipitation   float64 `json:"precipitation"`
	Humidity        float64 `json:"humidity"`
	Wind            float64 `json:"wind"`
	SolarRadiation  float64 `json:"solar_radiation"`
}

// Client fetches recent weather for a location string.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// New creates a weather client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type timelineResponse struct {
	Days []struct {
		Datetime       string  `json:"datetime"`
		TempMin        float64 `json:"tempmin"`
		TempMax        float64 `json:"tempmax"`
		Precip         float64 `json:"precip"`
		Humidity       float64 `json:"humidity"`
		WindSpeed      float64 `json:"windspeed"`
		SolarRadiation float64 `json:"solarradiation"`
	} `json:"days"`
}

// Last7Days returns daily observations for the past week at the given
// county location, most recent days last.
func (c *Client) Last7Days(ctx context.Context, countyState string) ([]Observation, error) {
	endpoint := fmt.Sprintf("%s/timeline/%s/last7days?unitGroup=metric&key=%s&include=days",
		c.baseURL, url.PathEscape(countyState), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed: %s - %s", resp.Status, string(body))
	}

	var timeline timelineResponse
	if err := json.Unmarshal(body, &timeline); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	out := make([]Observation, 0, len(timeline.Days))
	for _, day := range timeline.Days {
		out = append(out, Observation{
			MeasurementDate: day.Datetime,
			CountyState:     countyState,
			MinTemp:         day.TempMin,
			MaxTemp:         day.TempMax,
			Precipitation:   day.Precip,
			Humidity:        day.Humidity,
			Wind:            day.WindSpeed,
			SolarRadiation:  day.SolarRadiation,
		})
	}
	return out, nil
}
