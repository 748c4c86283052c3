// Package aqi converts raw pollutant concentrations into the 0-500 US
// Air Quality Index and classifies the result.
package aqi

import "math"

// MaxAQI is the upper bound of the index scale. Concentrations beyond the
// highest breakpoint clamp here.
const MaxAQI = 500

// breakpoint maps a PM2.5 concentration range to an AQI range.
type breakpoint struct {
	cLow, cHigh float64
	iLow, iHigh int
}

// pm25Breakpoints is the EPA PM2.5 breakpoint table in ascending order.
// The index lower bounds start at 51/101/... per the EPA convention, which
// keeps the function exact at segment boundaries.
var pm25Breakpoints = []breakpoint{
	{0, 12.0, 0, 50},
	{12.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 150.4, 151, 200},
	{150.5, 250.4, 201, 300},
	{250.5, 350.4, 301, 400},
	{350.5, 500.4, 401, 500},
}

// FromPM25 converts a PM2.5 concentration (µg/m³) to a US AQI value using
// piecewise-linear interpolation over the EPA breakpoint table.
// Negative input is treated as zero.
func FromPM25(pm25 float64) int {
	if pm25 < 0 {
		pm25 = 0
	}

	for _, bp := range pm25Breakpoints {
		if pm25 <= bp.cHigh {
			slope := float64(bp.iHigh-bp.iLow) / (bp.cHigh - bp.cLow)
			return int(math.Round(slope*(pm25-bp.cLow) + float64(bp.iLow)))
		}
	}

	return MaxAQI
}

// Category is a human-readable AQI severity band.
type Category string

const (
	CategoryGood               Category = "Good"
	CategoryModerate           Category = "Moderate"
	CategoryUnhealthySensitive Category = "Unhealthy for Sensitive Groups"
	CategoryUnhealthy          Category = "Unhealthy"
	CategoryVeryUnhealthy      Category = "Very Unhealthy"
	CategoryHazardous          Category = "Hazardous"
)

// CategoryFor classifies an AQI value. The category is always derived from
// the index, never stored independently of it.
func CategoryFor(aqi int) Category {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategoryModerate
	case aqi <= 150:
		return CategoryUnhealthySensitive
	case aqi <= 200:
		return CategoryUnhealthy
	case aqi <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}
