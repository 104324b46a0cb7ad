package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/kiteflow/internal/common"
	"github.com/i474232898/kiteflow/internal/weather"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	glyphHigh = "▲"
	glyphLow  = "▼"

	tideTimeLayout = "Mon 3:04 PM"
	updatedLayout  = "Jan 2, 3:04 PM MST"
)

// TideView is one rendered row of the tide list.
type TideView struct {
	Kind   weather.TideKind
	Glyph  string
	Label  string
	Time   string
	ISO    string
	Height string
}

// DashboardView holds the formatted values of one dashboard page.
type DashboardView struct {
	Location       string
	WindSpeed      string
	Direction      string
	Gust           string
	Temperature    string
	Condition      string
	ConditionGlyph string
	Status         weather.Status
	Weight         float64
	KiteSize       string
	Advice         string
	Alerts         []weather.SafetyAlert
	ArrowSVG       template.HTML
	ChartSVG       template.HTML
	Tides          []TideView
	Spots          []Spot
	GeneratedAt    string
}

// Renderer turns derived state into HTML. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Dashboard writes the full page for st.
func (r *Renderer) Dashboard(w io.Writer, st weather.AppState) error {
	return r.tmpl.ExecuteTemplate(w, "dashboard", NewDashboardView(st))
}

// Tides writes the tide list fragment in fetch order.
func (r *Renderer) Tides(w io.Writer, tides weather.TidePrediction) error {
	return r.tmpl.ExecuteTemplate(w, "tides", tideViews(tides))
}

// Spots writes the popular spots fragment.
func (r *Renderer) Spots(w io.Writer, spots []Spot) error {
	return r.tmpl.ExecuteTemplate(w, "spots", spots)
}

// NewDashboardView formats st for display.
func NewDashboardView(st weather.AppState) DashboardView {
	c := st.Conditions
	rec := st.Recommendation

	generated := ""
	if !st.GeneratedAt.IsZero() {
		generated = st.GeneratedAt.Format(updatedLayout)
	}

	return DashboardView{
		Location:       st.Location.Name,
		WindSpeed:      fmt.Sprintf("%.1f kt", c.WindKnots),
		Direction:      fmt.Sprintf("%s (%.0f°)", c.DirectionLabel, c.DirectionDeg),
		Gust:           fmt.Sprintf("%.1f kt", c.GustKnots),
		Temperature:    fmt.Sprintf("%.0f°F", c.TemperatureF),
		Condition:      cases.Title(language.English).String(c.Description),
		ConditionGlyph: ConditionGlyph(c.Description),
		Status:         rec.Status,
		Weight:         st.Rider.WeightPounds,
		KiteSize:       rec.Label(),
		Advice:         rec.Advice,
		Alerts:         st.Alerts,
		ArrowSVG:       template.HTML(DirectionArrow(c.DirectionDeg).SVG()),
		ChartSVG:       template.HTML(NewChart(weather.HourlyWindKnots(st.Weather, chartMaxPoints)).SVG()),
		Tides:          tideViews(st.Tides),
		Spots:          PopularSpots(),
		GeneratedAt:    generated,
	}
}

// ConditionGlyph picks a symbol for a short forecast text.
func ConditionGlyph(desc string) string {
	switch {
	case common.HasAny(desc, "thunder", "storm"):
		return "⛈"
	case common.HasAny(desc, "snow", "sleet", "ice"):
		return "❄"
	case common.HasAny(desc, "rain", "shower", "drizzle"):
		return "🌧"
	case common.HasAny(desc, "fog", "haze", "mist"):
		return "🌫"
	case common.HasAny(desc, "cloud", "overcast"):
		return "☁"
	case common.HasAny(desc, "sun", "clear"):
		return "☀"
	default:
		return "🌤"
	}
}

// TideGlyph is ▲ for high water and ▼ for low water.
func TideGlyph(kind weather.TideKind) string {
	if kind == weather.TideHigh {
		return glyphHigh
	}
	return glyphLow
}

func tideViews(tides weather.TidePrediction) []TideView {
	out := make([]TideView, 0, len(tides.Events))
	for _, ev := range tides.Events {
		label := "Low"
		if ev.Kind == weather.TideHigh {
			label = "High"
		}
		out = append(out, TideView{
			Kind:   ev.Kind,
			Glyph:  TideGlyph(ev.Kind),
			Label:  label,
			Time:   ev.Time.Format(tideTimeLayout),
			ISO:    ev.Time.Format(time.RFC3339),
			Height: fmt.Sprintf("%.2f ft", ev.HeightFt),
		})
	}
	return out
}
