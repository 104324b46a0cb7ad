package weather

// DeriveConditions turns a snapshot into display-unit conditions.
// The observation wins when it carries a wind speed; otherwise the first
// hourly period is used. With neither, wind is zero and downstream
// recommendations report "no data".
func DeriveConditions(snap WeatherSnapshot) Conditions {
	var c Conditions

	obs := snap.Observation
	switch {
	case obs != nil && obs.WindSpeedMS != nil:
		c.WindKnots = MSToKnots(*obs.WindSpeedMS)
		if obs.WindDirectionDeg != nil {
			c.DirectionDeg = *obs.WindDirectionDeg
		}
		if obs.TemperatureC != nil {
			c.TemperatureF = CelsiusToFahrenheit(*obs.TemperatureC)
		} else if len(snap.Hourly) > 0 {
			c.TemperatureF = snap.Hourly[0].TemperatureF
		}
		c.Description = obs.TextDescription
	case len(snap.Hourly) > 0:
		h := snap.Hourly[0]
		c.WindKnots = MPHToKnots(h.WindSpeedMPH)
		c.DirectionDeg = h.WindDirectionDeg
		c.TemperatureF = h.TemperatureF
		c.Description = h.ShortForecast
	}

	if c.Description == "" && len(snap.Hourly) > 0 {
		c.Description = snap.Hourly[0].ShortForecast
	}

	c.GustKnots = GustKnots(c.WindKnots)
	c.DirectionLabel = CompassLabel(c.DirectionDeg)
	return c
}

// HourlyWindKnots returns up to limit hourly wind speeds in knots, in
// chronological order.
func HourlyWindKnots(snap WeatherSnapshot, limit int) []float64 {
	n := len(snap.Hourly)
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]float64, 0, n)
	for _, h := range snap.Hourly[:n] {
		out = append(out, MPHToKnots(h.WindSpeedMPH))
	}
	return out
}
