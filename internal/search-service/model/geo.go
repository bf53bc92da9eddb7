package model

import "math"

// GeoPoint is a WGS84 coordinate in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Round snaps both coordinates to the given number of decimal places. Four places is
// roughly 11m at the equator.
func (p GeoPoint) Round(precision int) GeoPoint {
	scale := math.Pow(10, float64(precision))
	return GeoPoint{
		Lat: roundHalfAwayFromZero(p.Lat*scale) / scale,
		Lng: roundHalfAwayFromZero(p.Lng*scale) / scale,
	}
}

func roundHalfAwayFromZero(v float64) float64 {
	r := math.Round(v)
	if r == 0 {
		// normalise -0 so fingerprints do not see two zeros
		return 0
	}
	return r
}
