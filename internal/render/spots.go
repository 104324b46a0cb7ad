package render

import "github.com/i474232898/kiteflow/internal/weather"

// Spot is a well-known kite surfing location offered as a quick-select.
type Spot struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Location    weather.Location `json:"location"`
}

var popularSpots = []Spot{
	{
		Name:        "Cape Hatteras, NC",
		Description: "Shallow sound-side flat water with steady summer thermals.",
		Location:    weather.Location{Latitude: 35.2225, Longitude: -75.6350, Name: "Cape Hatteras, NC"},
	},
	{
		Name:        "Hood River, OR",
		Description: "Columbia Gorge venturi winds, strong current and big swell on the river.",
		Location:    weather.Location{Latitude: 45.7054, Longitude: -121.5215, Name: "Hood River, OR"},
	},
	{
		Name:        "Maui, HI",
		Description: "Consistent trade winds at Kite Beach, waves for experienced riders.",
		Location:    weather.Location{Latitude: 20.8893, Longitude: -156.4729, Name: "Maui, HI"},
	},
	{
		Name:        "Corpus Christi, TX",
		Description: "Warm water and reliable onshore breeze along the bay.",
		Location:    weather.Location{Latitude: 27.8006, Longitude: -97.3964, Name: "Corpus Christi, TX"},
	},
	{
		Name:        "South Padre Island, TX",
		Description: "Waist-deep Laguna Madre flats, a classic spot for learning.",
		Location:    weather.Location{Latitude: 26.1118, Longitude: -97.1681, Name: "South Padre Island, TX"},
	},
}

// PopularSpots returns the fixed quick-select list.
func PopularSpots() []Spot {
	out := make([]Spot, len(popularSpots))
	copy(out, popularSpots)
	return out
}
