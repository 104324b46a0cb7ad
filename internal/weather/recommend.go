package weather

import "math"

// Status is the coarse go/no-go indicator shown next to the wind speed.
type Status string

const (
	StatusLight   Status = "light"
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// NoDataLabel is shown in place of a kite size when there is no wind reading.
const NoDataLabel = "no data"

const (
	minKiteSize = 6.0
	maxKiteSize = 18.0
)

// Advice text, keyed by the advice bands.
const (
	AdviceNoData    = "No wind data available"
	AdviceTooLight  = "Too light - consider a larger kite or foil board"
	AdvicePerfect   = "Perfect conditions for most riders"
	AdviceStrong    = "Strong wind - experienced riders, smaller kite"
	AdviceTooStrong = "Too strong - experts only"
)

// KiteSize returns the recommended kite size in m² and false when the wind
// speed is zero, which stands for "no reading".
func KiteSize(weightLb, windKnots float64) (float64, bool) {
	if windKnots == 0 {
		return 0, false
	}
	size := weightLb/10 + (15-windKnots)/3
	return math.Min(math.Max(size, minKiteSize), maxKiteSize), true
}

// Advice maps wind speed to the advice text. Its cut points (12/20/35) differ
// from StatusFor (12/25/35) and the two are kept separate.
func Advice(windKnots float64) string {
	switch {
	case windKnots < 12:
		return AdviceTooLight
	case windKnots <= 20:
		return AdvicePerfect
	case windKnots > 35:
		return AdviceTooStrong
	default:
		return AdviceStrong
	}
}

// StatusFor maps wind speed to the status indicator.
func StatusFor(windKnots float64) Status {
	switch {
	case windKnots < 12:
		return StatusLight
	case windKnots <= 25:
		return StatusGood
	case windKnots > 35:
		return StatusDanger
	default:
		return StatusWarning
	}
}

// Recommend builds the full recommendation for a rider and wind speed.
func Recommend(weightLb, windKnots float64) KiteSizeRecommendation {
	size, ok := KiteSize(weightLb, windKnots)
	if !ok {
		return KiteSizeRecommendation{Advice: AdviceNoData, Status: StatusFor(windKnots)}
	}
	return KiteSizeRecommendation{
		SizeSquareMeters: size,
		HasData:          true,
		Advice:           Advice(windKnots),
		Status:           StatusFor(windKnots),
	}
}

// SafetyAlerts returns every alert that applies; they are not exclusive.
// The generic reminder is always last.
func SafetyAlerts(windKnots, tempF float64) []SafetyAlert {
	var alerts []SafetyAlert

	if windKnots < 10 {
		alerts = append(alerts, SafetyAlert{
			Level:   AlertWarning,
			Title:   "Light wind",
			Message: "Wind may be too light to stay upwind. Watch for lulls.",
		})
	}
	if windKnots > 35 {
		alerts = append(alerts, SafetyAlert{
			Level:   AlertDanger,
			Title:   "Strong wind",
			Message: "Dangerous conditions. Only experts with small kites should ride.",
		})
	}
	if windKnots >= 12 && windKnots <= 25 {
		alerts = append(alerts, SafetyAlert{
			Level:   AlertInfo,
			Title:   "Ideal wind",
			Message: "Wind is in the ideal range for most riders.",
		})
	}
	if tempF < 32 {
		alerts = append(alerts, SafetyAlert{
			Level:   AlertWarning,
			Title:   "Freezing",
			Message: "Below freezing. Wear a drysuit or thick wetsuit, gloves and hood.",
		})
	}
	if tempF < 50 {
		alerts = append(alerts, SafetyAlert{
			Level:   AlertInfo,
			Title:   "Cold",
			Message: "Cold air. A full wetsuit is recommended.",
		})
	}

	alerts = append(alerts, SafetyAlert{
		Level:   AlertInfo,
		Title:   "Safety first",
		Message: "Always check local conditions, ride with a buddy and never kite offshore alone.",
	})
	return alerts
}
