package model

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

type SortMode string

const (
	SortDefault     SortMode = "default"
	SortDistanceAsc SortMode = "distance_asc"
)

type FallbackReason string

const (
	ReasonNone               FallbackReason = ""
	ReasonMissingCoordinates FallbackReason = "missing_coordinates"
	ReasonInvalidCoordinates FallbackReason = "invalid_coordinates"
	ReasonIndexUnavailable   FallbackReason = "index_unavailable"
)

type Filters struct {
	Categories []string
	Agencies   []string
	OpenNow    bool
}

// SearchQuery is a request as received. Coordinates stay raw strings so the ranking
// resolver can tell "missing" from "malformed".
type SearchQuery struct {
	Sort         SortMode
	Lat          *string
	Lng          *string
	RadiusMeters int
	Filters      Filters
	Offset       int
	Limit        int
}

// NormalizedQuery is the canonical form that is both fingerprinted and executed.
type NormalizedQuery struct {
	Sort         SortMode
	Origin       *GeoPoint
	RadiusMeters int
	Categories   []string
	Agencies     []string
	OpenNow      bool
	OpenAt       time.Time
	Offset       int
	Limit        int
}

// Candidate is one spatial index hit.
type Candidate struct {
	ID             int64
	DistanceMeters float64
}

type RankedItem struct {
	ID             int64    `json:"id"`
	DistanceMeters *float64 `json:"distance_m"`
}

type RankedResult struct {
	Items      []RankedItem
	Total      int64
	NextCursor string
}

// SearchResult carries a page plus the ordering that was actually applied.
type SearchResult struct {
	Result         RankedResult
	SortApplied    SortMode
	FallbackReason FallbackReason
	CacheOutcome   string
}

var ErrMalformedCursor = errors.New("malformed cursor")

const cursorPrefix = "o:"

func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

func DecodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, ErrMalformedCursor
	}
	s, found := strings.CutPrefix(string(raw), cursorPrefix)
	if !found {
		return 0, ErrMalformedCursor
	}
	offset, err := strconv.Atoi(s)
	if err != nil || offset < 0 {
		return 0, ErrMalformedCursor
	}
	return offset, nil
}

// CacheEntry is what the result cache stores for one fingerprint. The metadata fields
// let invalidation predicates decide without re-parsing the key.
type CacheEntry struct {
	Fingerprint string
	Result      RankedResult
	Sort        SortMode
	Categories  []string
	Agencies    []string
	Cell        string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func (e CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
