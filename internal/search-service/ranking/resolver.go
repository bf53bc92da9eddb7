package ranking

import (
	apperrors "Proximity_Search_Microservice/internal/search-service/errors"
	"Proximity_Search_Microservice/internal/search-service/model"
	"fmt"
	"strconv"
	"strings"
)

type State string

const (
	// StateDefault is used for requests that never asked for distance ordering.
	StateDefault           State = "DEFAULT"
	StateDistanceRequested State = "DISTANCE_REQUESTED"
	StateDistanceApplied   State = "DISTANCE_APPLIED"
	StateFallbackDefault   State = "FALLBACK_DEFAULT"
)

// AvailabilityProbe reports the last known state of the spatial index.
type AvailabilityProbe interface {
	IndexAvailable() bool
}

// Decision tracks the ordering of a single request. It is not safe for concurrent use.
type Decision struct {
	state  State
	origin *model.GeoPoint
	reason model.FallbackReason
}

func (d *Decision) State() State {
	return d.state
}

// Origin is the validated origin, nil unless distance ordering was requested and valid.
func (d *Decision) Origin() *model.GeoPoint {
	return d.origin
}

func (d *Decision) Reason() model.FallbackReason {
	return d.reason
}

// SortApplied is the ordering the response will claim.
func (d *Decision) SortApplied() model.SortMode {
	switch d.state {
	case StateDistanceRequested, StateDistanceApplied:
		return model.SortDistanceAsc
	default:
		return model.SortDefault
	}
}

func (d *Decision) Apply() error {
	if d.state != StateDistanceRequested {
		return fmt.Errorf("Decision.Apply: %w: from %s", apperrors.ErrIllegalTransition, d.state)
	}
	d.state = StateDistanceApplied
	return nil
}

func (d *Decision) IndexFailed() error {
	if d.state != StateDistanceRequested {
		return fmt.Errorf("Decision.IndexFailed: %w: from %s", apperrors.ErrIllegalTransition, d.state)
	}
	d.state = StateFallbackDefault
	d.reason = model.ReasonIndexUnavailable
	d.origin = nil
	return nil
}

type Resolver interface {
	Begin(query model.SearchQuery) *Decision
}

type resolver struct {
	probe AvailabilityProbe
}

func (r *resolver) Begin(query model.SearchQuery) *Decision {
	if query.Sort != model.SortDistanceAsc {
		return &Decision{state: StateDefault}
	}
	origin, reason := parseOrigin(query.Lat, query.Lng)
	if reason != model.ReasonNone {
		return &Decision{state: StateFallbackDefault, reason: reason}
	}
	if r.probe != nil && !r.probe.IndexAvailable() {
		return &Decision{state: StateFallbackDefault, reason: model.ReasonIndexUnavailable}
	}
	return &Decision{state: StateDistanceRequested, origin: &origin}
}

func parseOrigin(rawLat, rawLng *string) (model.GeoPoint, model.FallbackReason) {
	if rawLat == nil || rawLng == nil {
		return model.GeoPoint{}, model.ReasonMissingCoordinates
	}
	latStr, lngStr := strings.TrimSpace(*rawLat), strings.TrimSpace(*rawLng)
	if latStr == "" || lngStr == "" {
		return model.GeoPoint{}, model.ReasonMissingCoordinates
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return model.GeoPoint{}, model.ReasonInvalidCoordinates
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return model.GeoPoint{}, model.ReasonInvalidCoordinates
	}
	p := model.GeoPoint{Lat: lat, Lng: lng}
	if !p.Valid() {
		return model.GeoPoint{}, model.ReasonInvalidCoordinates
	}
	return p, model.ReasonNone
}

// NewResolver builds a resolver. probe may be nil, in which case the index is assumed up
// until a query says otherwise.
func NewResolver(probe AvailabilityProbe) Resolver {
	return &resolver{
		probe: probe,
	}
}
