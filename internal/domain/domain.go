package domain

import "time"

// GeoPoint is a WGS 84 coordinate.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Place is a named geographic feature as stored in the geo backends.
type Place struct {
	ID          int64
	Name        string
	FeatureCode string
	Location    GeoPoint
}

// NearbyPlace is a raw query result: a place and its distance in meters
// from the query origin.
type NearbyPlace struct {
	Name     string
	Distance float64
}

type GeoRecord struct {
	Name           string
	DistanceMeters int64
}

type FeedItem struct {
	Title       string
	PublishedAt time.Time
}
