package render

import (
	"fmt"
	"math"
)

const (
	arrowCenter     = 50.0
	arrowShaft      = 40.0
	arrowHead       = 10.0
	arrowWingOffset = 150.0
)

// Point is a position in image space (y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Arrow is the wind direction indicator on a 100x100 canvas.
type Arrow struct {
	AngleDeg  float64 `json:"angleDeg"`
	Center    Point   `json:"center"`
	Tip       Point   `json:"tip"`
	LeftWing  Point   `json:"leftWing"`
	RightWing Point   `json:"rightWing"`
}

func polar(from Point, length, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: from.X + length*math.Cos(rad), Y: from.Y + length*math.Sin(rad)}
}

// DirectionArrow rotates a fixed-length shaft from the centre by
// directionDeg-90 degrees, so 0° points up and 90° points right.
func DirectionArrow(directionDeg float64) Arrow {
	angle := directionDeg - 90
	center := Point{X: arrowCenter, Y: arrowCenter}
	tip := polar(center, arrowShaft, angle)
	return Arrow{
		AngleDeg:  angle,
		Center:    center,
		Tip:       tip,
		LeftWing:  polar(tip, arrowHead, angle-arrowWingOffset),
		RightWing: polar(tip, arrowHead, angle+arrowWingOffset),
	}
}

// SVG renders the arrow as a standalone 100x100 image.
func (a Arrow) SVG() string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">`+
		`<circle cx="50" cy="50" r="45" fill="none" stroke="#cbd5e1" stroke-width="2"/>`+
		`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#0ea5e9" stroke-width="3" stroke-linecap="round"/>`+
		`<polyline points="%.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="none" stroke="#0ea5e9" stroke-width="3" stroke-linejoin="round"/>`+
		`</svg>`,
		a.Center.X, a.Center.Y, a.Tip.X, a.Tip.Y,
		a.LeftWing.X, a.LeftWing.Y, a.Tip.X, a.Tip.Y, a.RightWing.X, a.RightWing.Y,
	)
}
