package weather

import (
	"math"
	"strings"
)

const (
	knotsPerMS  = 1.944
	knotsPerMPH = 0.868976
	gustFactor  = 1.3
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// MSToKnots converts meters per second to knots.
func MSToKnots(ms float64) float64 { return ms * knotsPerMS }

// KnotsToMS is the inverse of MSToKnots.
func KnotsToMS(knots float64) float64 { return knots / knotsPerMS }

// MPHToKnots converts miles per hour to knots.
func MPHToKnots(mph float64) float64 { return mph * knotsPerMPH }

// CelsiusToFahrenheit converts °C to °F.
func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

// FahrenheitToCelsius is the inverse of CelsiusToFahrenheit.
func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

// GustKnots estimates gusts from the sustained speed. Upstream gust values
// are deliberately not consulted.
func GustKnots(windKnots float64) float64 { return windKnots * gustFactor }

// CompassLabel maps degrees to a 16-point compass label.
func CompassLabel(deg float64) string {
	i := int(math.Round(deg/22.5)) % 16
	if i < 0 {
		i += 16
	}
	return compassPoints[i]
}

// CompassDegrees is the inverse of CompassLabel. Unknown labels report false.
func CompassDegrees(label string) (float64, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for i, p := range compassPoints {
		if p == label {
			return float64(i) * 22.5, true
		}
	}
	return 0, false
}
