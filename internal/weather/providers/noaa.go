package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/kiteflow/internal/weather"
)

const (
	noaaDefaultBaseURL = "https://api.tidesandcurrents.noaa.gov/api/prod"
	noaaTimeLayout     = "2006-01-02 15:04"
	noaaDateLayout     = "20060102"

	// DefaultTideStation is Woods Hole, MA.
	DefaultTideStation = "8447930"
)

var errNoPredictions = errors.New("no tide predictions returned")

// NOAATideConfig scopes the tide client to one reference station.
type NOAATideConfig struct {
	BaseURL     string
	StationID   string
	Location    *time.Location // station local time; predictions use lst_ldt
	Application string
}

// NOAATideProvider implements weather.TideSource for NOAA CO-OPS hi/lo predictions.
type NOAATideProvider struct {
	upstream
	cfg NOAATideConfig
}

// NewNOAATideProvider creates a tide client. Zero fields of tc get defaults.
func NewNOAATideProvider(cfg HTTPClientConfig, tc NOAATideConfig) *NOAATideProvider {
	if tc.BaseURL == "" {
		tc.BaseURL = noaaDefaultBaseURL
	}
	tc.BaseURL = strings.TrimRight(tc.BaseURL, "/")
	if tc.StationID == "" {
		tc.StationID = DefaultTideStation
	}
	if tc.Location == nil {
		tc.Location = time.UTC
	}
	if tc.Application == "" {
		tc.Application = "kiteflow"
	}
	return &NOAATideProvider{
		upstream: newUpstream("noaa", cfg),
		cfg:      tc,
	}
}

func (p *NOAATideProvider) Name() string {
	return p.source
}

type noaaResponse struct {
	Predictions []struct {
		T    string `json:"t"`
		V    string `json:"v"`
		Type string `json:"type"`
	} `json:"predictions"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// FetchTides returns the hi/lo events for the station-local calendar day
// containing day, in the order NOAA lists them.
func (p *NOAATideProvider) FetchTides(ctx context.Context, day time.Time) (weather.TidePrediction, error) {
	date := day.In(p.cfg.Location).Format(noaaDateLayout)

	params := url.Values{}
	params.Set("product", "predictions")
	params.Set("begin_date", date)
	params.Set("end_date", date)
	params.Set("datum", "MLLW")
	params.Set("station", p.cfg.StationID)
	params.Set("interval", "hilo")
	params.Set("format", "json")
	params.Set("units", "english")
	params.Set("time_zone", "lst_ldt")
	params.Set("application", p.cfg.Application)
	reqURL := fmt.Sprintf("%s/datagetter?%s", p.cfg.BaseURL, params.Encode())

	var body noaaResponse
	if err := p.getJSON(ctx, reqURL, "application/json", &body); err != nil {
		return weather.TidePrediction{}, fmt.Errorf("station %s: %w", p.cfg.StationID, err)
	}
	if body.Error != nil {
		return weather.TidePrediction{}, fmt.Errorf("station %s: %s", p.cfg.StationID, body.Error.Message)
	}
	if len(body.Predictions) == 0 {
		return weather.TidePrediction{}, errNoPredictions
	}

	events := make([]weather.TideEvent, 0, len(body.Predictions))
	for _, pr := range body.Predictions {
		ts, err := time.ParseInLocation(noaaTimeLayout, pr.T, p.cfg.Location)
		if err != nil {
			return weather.TidePrediction{}, fmt.Errorf("parse tide time %q: %w", pr.T, err)
		}
		height, err := strconv.ParseFloat(strings.TrimSpace(pr.V), 64)
		if err != nil {
			return weather.TidePrediction{}, fmt.Errorf("parse tide height %q: %w", pr.V, err)
		}
		kind := weather.TideLow
		if pr.Type == "H" {
			kind = weather.TideHigh
		}
		events = append(events, weather.TideEvent{Time: ts, HeightFt: height, Kind: kind})
	}
	return weather.TidePrediction{Events: events}, nil
}
