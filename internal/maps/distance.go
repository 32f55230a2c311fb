// Package maps wraps the Google Distance Matrix REST API for delivery
// mileage lookups.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/samedayramps/app-samedayramps/internal/config"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"
	defaultTimeout = 10 * time.Second

	// metersPerMile conversion factor used by the quote form
	metersToMiles = 0.000621371

	// roundTripFactor covers two vehicle round trips: delivery and pickup,
	// each out and back
	roundTripFactor = 4
)

// ErrNoRoute is returned when the routing service cannot resolve a driving
// route between the warehouse and the install address. Callers must surface
// this to the user instead of pricing a quote with zero delivery mileage.
var ErrNoRoute = errors.New("no driving route found")

// Client calls the Google Distance Matrix API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a distance client from configuration
func NewClient(cfg *config.MapsConfig, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	c := &Client{
		apiKey:     cfg.APIKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// distanceMatrixResponse mirrors the subset of the API response we read
type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value int64 `json:"value"` // meters
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
	ErrorMessage string `json:"error_message"`
}

// RoundTripMiles returns the total delivery mileage between origin and
// destination: driving distance in miles, multiplied by 4 (delivery and
// pickup, each a round trip), rounded to one decimal place.
func (c *Client) RoundTripMiles(ctx context.Context, origin, destination string) (float64, error) {
	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("mode", "driving")
	q.Set("units", "imperial")
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build distance request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("distance request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("distance service returned status %d: %s", resp.StatusCode, string(body))
	}

	var matrix distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrix); err != nil {
		return 0, fmt.Errorf("failed to decode distance response: %w", err)
	}

	if matrix.Status != "OK" {
		log.Printf("[MAPS] Distance lookup failed: status=%s message=%s", matrix.Status, matrix.ErrorMessage)
		return 0, fmt.Errorf("distance service status %q", matrix.Status)
	}

	if len(matrix.Rows) == 0 || len(matrix.Rows[0].Elements) == 0 {
		return 0, ErrNoRoute
	}

	element := matrix.Rows[0].Elements[0]
	if element.Status != "OK" || element.Distance.Value <= 0 {
		log.Printf("[MAPS] No route: element status=%s, origin=%q, destination=%q", element.Status, origin, destination)
		return 0, ErrNoRoute
	}

	oneWay := float64(element.Distance.Value) * metersToMiles
	total := math.Round(oneWay*roundTripFactor*10) / 10
	if total <= 0 {
		return 0, ErrNoRoute
	}
	return total, nil
}
