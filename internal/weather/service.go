package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/i474232898/kiteflow/internal/observability"
)

// ErrNoState is returned when a recomputation is asked for before any
// pipeline run has been accepted.
var ErrNoState = errors.New("no dashboard state loaded yet")

// ServiceConfig bundles the collaborators and defaults of a Service.
type ServiceConfig struct {
	Geocoder  Geocoder
	Weather   WeatherSource
	Tides     TideSource
	Synthetic *Synthetic
	Store     StateStore
	Clock     clockwork.Clock
	Logger    *slog.Logger
	Metrics   *observability.Metrics

	DefaultLocation Location
	DefaultRider    RiderProfile

	// ForceSynthetic skips the live weather and tide sources.
	ForceSynthetic bool
}

// LoadRequest describes one UI trigger. Query takes precedence over Location;
// with neither, the current location is reloaded. A nil Rider keeps the rider
// of the current state.
type LoadRequest struct {
	Query    string
	Location *Location
	Rider    *RiderProfile
}

// LoadResult is the outcome of one pipeline run.
type LoadResult struct {
	State AppState `json:"state"`
	// Superseded is true when a newer run was accepted before this one
	// finished; State is then not what the store holds.
	Superseded bool `json:"superseded"`
}

// Service runs the aggregation pipeline: geocode, fetch weather, fetch tides,
// derive conditions and recommendation, publish.
type Service struct {
	cfg    ServiceConfig
	seq    atomic.Uint64
	logger *slog.Logger
}

// NewService creates a new Service. Geocoder, Weather and Tides may be nil;
// missing live sources are treated as failing and served synthetically.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Synthetic == nil {
		cfg.Synthetic = NewSynthetic(cfg.Clock, nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NewMetricsForTesting()
	}
	return &Service{
		cfg:    cfg,
		logger: cfg.Logger.With("component", "pipeline"),
	}
}

// Load runs one pipeline invocation. Only geocoding failures are returned as
// errors; weather and tide failures are replaced by synthetic data.
func (s *Service) Load(ctx context.Context, req LoadRequest) (LoadResult, error) {
	start := s.cfg.Clock.Now()
	seq := s.seq.Add(1)
	runID := uuid.NewString()
	log := s.logger.With("seq", seq, "run_id", runID)

	current, hasCurrent := s.cfg.Store.Latest()

	loc, err := s.resolveLocation(ctx, req, current, hasCurrent)
	if err != nil {
		s.cfg.Metrics.PipelineRuns.WithLabelValues("not_found").Inc()
		log.Info("geocoding failed", "query", req.Query, "error", err)
		return LoadResult{}, err
	}

	rider := s.cfg.DefaultRider
	switch {
	case req.Rider != nil:
		rider = *req.Rider
	case hasCurrent:
		rider = current.Rider
	}

	snap := s.fetchWeather(ctx, loc, log)
	tides := s.fetchTides(ctx, log)

	state := BuildState(loc, snap, tides, rider)
	state.Seq = seq
	state.RunID = runID
	state.GeneratedAt = s.cfg.Clock.Now()

	accepted := s.cfg.Store.Publish(state)
	outcome := "accepted"
	if !accepted {
		outcome = "superseded"
		log.Info("pipeline result superseded by a newer run")
	}
	s.cfg.Metrics.PipelineRuns.WithLabelValues(outcome).Inc()
	s.cfg.Metrics.PipelineDuration.Observe(s.cfg.Clock.Since(start).Seconds())

	log.Debug("pipeline finished",
		"location", loc.Name,
		"wind_knots", state.Conditions.WindKnots,
		"tide_events", len(state.Tides.Events),
	)
	return LoadResult{State: state, Superseded: !accepted}, nil
}

// Current returns the latest accepted state, running the pipeline for the
// default location if nothing has been loaded yet.
func (s *Service) Current(ctx context.Context) (AppState, error) {
	if st, ok := s.cfg.Store.Latest(); ok {
		return st, nil
	}
	res, err := s.Load(ctx, LoadRequest{})
	if err != nil {
		return AppState{}, err
	}
	if st, ok := s.cfg.Store.Latest(); ok {
		return st, nil
	}
	return res.State, nil
}

// Latest returns the latest accepted state without loading anything.
func (s *Service) Latest() (AppState, error) {
	st, ok := s.cfg.Store.Latest()
	if !ok {
		return AppState{}, ErrNoState
	}
	return st, nil
}

// Recommend recomputes the recommendation for the latest state and a new
// rider. Nothing is fetched and nothing is published.
func (s *Service) Recommend(rider RiderProfile) (AppState, error) {
	st, err := s.Latest()
	if err != nil {
		return AppState{}, err
	}
	return st.WithRider(rider), nil
}

// History returns the recent accepted states for loc, oldest first.
func (s *Service) History(loc Location) []AppState {
	return s.cfg.Store.ForLocation(loc)
}

func (s *Service) resolveLocation(ctx context.Context, req LoadRequest, current AppState, hasCurrent bool) (Location, error) {
	if q := strings.TrimSpace(req.Query); q != "" {
		if s.cfg.Geocoder == nil {
			return Location{}, ErrLocationNotFound
		}
		loc, err := s.cfg.Geocoder.Geocode(ctx, q)
		if err != nil {
			if errors.Is(err, ErrLocationNotFound) {
				return Location{}, err
			}
			return Location{}, fmt.Errorf("%w: %v", ErrLocationNotFound, err)
		}
		return loc, nil
	}
	if req.Location != nil {
		return *req.Location, nil
	}
	if hasCurrent {
		return current.Location, nil
	}
	return s.cfg.DefaultLocation, nil
}

func (s *Service) fetchWeather(ctx context.Context, loc Location, log *slog.Logger) WeatherSnapshot {
	if !s.cfg.ForceSynthetic && s.cfg.Weather != nil {
		snap, err := s.cfg.Weather.FetchWeather(ctx, loc.Latitude, loc.Longitude)
		if err == nil {
			return snap
		}
		log.Warn("weather fetch failed, using synthetic data",
			"source", s.cfg.Weather.Name(),
			"lat", loc.Latitude,
			"lon", loc.Longitude,
			"error", err,
		)
	}
	s.cfg.Metrics.Fallbacks.WithLabelValues("weather").Inc()
	return s.cfg.Synthetic.Weather()
}

func (s *Service) fetchTides(ctx context.Context, log *slog.Logger) TidePrediction {
	if !s.cfg.ForceSynthetic && s.cfg.Tides != nil {
		tides, err := s.cfg.Tides.FetchTides(ctx, s.cfg.Clock.Now())
		if err == nil {
			return tides
		}
		log.Warn("tide fetch failed, using synthetic data",
			"source", s.cfg.Tides.Name(),
			"error", err,
		)
	}
	s.cfg.Metrics.Fallbacks.WithLabelValues("tides").Inc()
	return s.cfg.Synthetic.Tides()
}

// BuildState derives everything the dashboard shows from fetched data.
// Seq, RunID and GeneratedAt are left for the caller.
func BuildState(loc Location, snap WeatherSnapshot, tides TidePrediction, rider RiderProfile) AppState {
	cond := DeriveConditions(snap)
	return AppState{
		Location:       loc,
		Weather:        snap,
		Tides:          tides,
		Conditions:     cond,
		Rider:          rider,
		Recommendation: Recommend(rider.WeightPounds, cond.WindKnots),
		Alerts:         SafetyAlerts(cond.WindKnots, cond.TemperatureF),
	}
}
