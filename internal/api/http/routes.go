package httpapi

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/kiteflow/internal/render"
	"github.com/i474232898/kiteflow/internal/weather"
)

var validate = validator.New()

// ErrorHandler renders every error as {"error": true, "message": ...}.
// *fiber.Error codes are kept; anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the dashboard page and the JSON API into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, renderer *render.Renderer) {
	app.Get("/", func(c *fiber.Ctx) error {
		q, err := parseDashboardQuery(c)
		if err != nil {
			return err
		}

		var st weather.AppState
		if q.triggersLoad() {
			res, err := service.Load(c.UserContext(), q.toLoadRequest())
			if err != nil {
				return pipelineError(err)
			}
			st = res.State
		} else {
			st, err = service.Current(c.UserContext())
			if err != nil {
				return pipelineError(err)
			}
			if q.Weight != nil {
				st = st.WithRider(weather.RiderProfile{WeightPounds: *q.Weight})
			}
		}

		var buf bytes.Buffer
		if err := renderer.Dashboard(&buf, st); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		q, err := parseDashboardQuery(c)
		if err != nil {
			return err
		}
		res, err := service.Load(c.UserContext(), q.toLoadRequest())
		if err != nil {
			return pipelineError(err)
		}
		return c.JSON(res)
	})

	v1.Get("/state", func(c *fiber.Ctx) error {
		st, err := service.Latest()
		if err != nil {
			return pipelineError(err)
		}
		return c.JSON(st)
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		var q historyQuery
		if err := q.bind(c); err != nil {
			return err
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := weather.Location{Latitude: *q.Lat, Longitude: *q.Lon}
		states := service.History(loc)
		if len(states) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "no dashboard history for requested location")
		}
		return c.JSON(fiber.Map{
			"location": states[len(states)-1].Location,
			"states":   states,
		})
	})

	v1.Get("/recommendation", func(c *fiber.Ctx) error {
		var q recommendationQuery
		w, err := parseFloatParam(c, "weight")
		if err != nil {
			return err
		}
		q.Weight = w
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		st, err := service.Recommend(weather.RiderProfile{WeightPounds: *q.Weight})
		if err != nil {
			return pipelineError(err)
		}
		return c.JSON(fiber.Map{
			"rider":          st.Rider,
			"conditions":     st.Conditions,
			"recommendation": st.Recommendation,
			"label":          st.Recommendation.Label(),
			"alerts":         st.Alerts,
		})
	})

	v1.Get("/spots", func(c *fiber.Ctx) error {
		return c.JSON(render.PopularSpots())
	})

	v1.Get("/chart", func(c *fiber.Ctx) error {
		st, err := service.Latest()
		if err != nil {
			return pipelineError(err)
		}
		return c.JSON(fiber.Map{
			"chart": render.NewChart(weather.HourlyWindKnots(st.Weather, 24)),
			"arrow": render.DirectionArrow(st.Conditions.DirectionDeg),
		})
	})

	v1.Get("/tides.html", func(c *fiber.Ctx) error {
		st, err := service.Latest()
		if err != nil {
			return pipelineError(err)
		}
		var buf bytes.Buffer
		if err := renderer.Tides(&buf, st.Tides); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render tides")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	v1.Get("/spots.html", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := renderer.Spots(&buf, render.PopularSpots()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render spots")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})
}

// pipelineError maps service errors onto HTTP status codes.
func pipelineError(err error) error {
	switch {
	case errors.Is(err, weather.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, weather.ErrLocationNotFound.Error())
	case errors.Is(err, weather.ErrNoState):
		return fiber.NewError(fiber.StatusNotFound, weather.ErrNoState.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load dashboard")
	}
}

// dashboardQuery holds the parameters of one UI trigger: a search (Query),
// a quick-select (Lat/Lon/Name) or neither (reload).
type dashboardQuery struct {
	Query  string   `validate:"max=200"`
	Lat    *float64 `validate:"required_with=Lon,omitempty,gte=-90,lte=90"`
	Lon    *float64 `validate:"required_with=Lat,omitempty,gte=-180,lte=180"`
	Name   string   `validate:"max=200"`
	Weight *float64 `validate:"omitempty,gte=0,lte=500"`
}

func (q dashboardQuery) triggersLoad() bool {
	return q.Query != "" || q.Lat != nil
}

func (q dashboardQuery) toLoadRequest() weather.LoadRequest {
	req := weather.LoadRequest{Query: q.Query}
	if q.Lat != nil && q.Lon != nil {
		name := q.Name
		if name == "" {
			name = strconv.FormatFloat(*q.Lat, 'f', 4, 64) + ", " + strconv.FormatFloat(*q.Lon, 'f', 4, 64)
		}
		req.Location = &weather.Location{Latitude: *q.Lat, Longitude: *q.Lon, Name: name}
	}
	if q.Weight != nil {
		req.Rider = &weather.RiderProfile{WeightPounds: *q.Weight}
	}
	return req
}

func parseDashboardQuery(c *fiber.Ctx) (dashboardQuery, error) {
	q := dashboardQuery{
		Query: strings.TrimSpace(c.Query("q")),
		Name:  strings.TrimSpace(c.Query("name")),
	}

	var err error
	if q.Lat, err = parseFloatParam(c, "lat"); err != nil {
		return q, err
	}
	if q.Lon, err = parseFloatParam(c, "lon"); err != nil {
		return q, err
	}
	if q.Weight, err = parseFloatParam(c, "weight"); err != nil {
		return q, err
	}

	if err := validate.Struct(q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Lat *float64 `validate:"required,gte=-90,lte=90"`
	Lon *float64 `validate:"required,gte=-180,lte=180"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	var err error
	if h.Lat, err = parseFloatParam(c, "lat"); err != nil {
		return err
	}
	h.Lon, err = parseFloatParam(c, "lon")
	return err
}

// recommendationQuery holds query parameters for the recommendation endpoint.
type recommendationQuery struct {
	Weight *float64 `validate:"required,gte=0,lte=500"`
}

// parseFloatParam returns nil when the parameter is absent.
func parseFloatParam(c *fiber.Ctx, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+key+": must be a number")
	}
	return &v, nil
}
