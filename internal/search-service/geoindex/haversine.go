package geoindex

import (
	"Proximity_Search_Microservice/internal/search-service/model"
	"math"
)

// earthRadiusMeters is the IUGG mean radius.
const earthRadiusMeters = 6371008.8

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b model.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}
