package ranking

import (
	apperrors "Proximity_Search_Microservice/internal/search-service/errors"
	"Proximity_Search_Microservice/internal/search-service/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProbe bool

func (p staticProbe) IndexAvailable() bool {
	return bool(p)
}

func str(s string) *string {
	return &s
}

func TestResolver_Begin(t *testing.T) {
	testCases := []struct {
		name           string
		probe          AvailabilityProbe
		query          model.SearchQuery
		expectedState  State
		expectedReason model.FallbackReason
		expectedSort   model.SortMode
		expectedOrigin *model.GeoPoint
	}{
		{
			name:          "Default sort",
			query:         model.SearchQuery{Sort: model.SortDefault, Lat: str("1"), Lng: str("2")},
			expectedState: StateDefault,
			expectedSort:  model.SortDefault,
		},
		{
			name:           "Valid origin",
			query:          model.SearchQuery{Sort: model.SortDistanceAsc, Lat: str("40.7128"), Lng: str(" -74.0060 ")},
			expectedState:  StateDistanceRequested,
			expectedSort:   model.SortDistanceAsc,
			expectedOrigin: &model.GeoPoint{Lat: 40.7128, Lng: -74.006},
		},
		{
			name:           "Missing latitude",
			query:          model.SearchQuery{Sort: model.SortDistanceAsc, Lng: str("-74.0060")},
			expectedState:  StateFallbackDefault,
			expectedReason: model.ReasonMissingCoordinates,
			expectedSort:   model.SortDefault,
		},
		{
			name:           "Empty longitude",
			query:          model.SearchQuery{Sort: model.SortDistanceAsc, Lat: str("40"), Lng: str("")},
			expectedState:  StateFallbackDefault,
			expectedReason: model.ReasonMissingCoordinates,
			expectedSort:   model.SortDefault,
		},
		{
			name:           "Unparsable",
			query:          model.SearchQuery{Sort: model.SortDistanceAsc, Lat: str("north"), Lng: str("1")},
			expectedState:  StateFallbackDefault,
			expectedReason: model.ReasonInvalidCoordinates,
			expectedSort:   model.SortDefault,
		},
		{
			name:           "Out of range",
			query:          model.SearchQuery{Sort: model.SortDistanceAsc, Lat: str("91"), Lng: str("0")},
			expectedState:  StateFallbackDefault,
			expectedReason: model.ReasonInvalidCoordinates,
			expectedSort:   model.SortDefault,
		},
		{
			name:           "Not finite",
			query:          model.SearchQuery{Sort: model.SortDistanceAsc, Lat: str("NaN"), Lng: str("0")},
			expectedState:  StateFallbackDefault,
			expectedReason: model.ReasonInvalidCoordinates,
			expectedSort:   model.SortDefault,
		},
		{
			name:           "Index known down",
			probe:          staticProbe(false),
			query:          model.SearchQuery{Sort: model.SortDistanceAsc, Lat: str("1"), Lng: str("1")},
			expectedState:  StateFallbackDefault,
			expectedReason: model.ReasonIndexUnavailable,
			expectedSort:   model.SortDefault,
		},
		{
			name:           "Index known up",
			probe:          staticProbe(true),
			query:          model.SearchQuery{Sort: model.SortDistanceAsc, Lat: str("1"), Lng: str("1")},
			expectedState:  StateDistanceRequested,
			expectedSort:   model.SortDistanceAsc,
			expectedOrigin: &model.GeoPoint{Lat: 1, Lng: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewResolver(tc.probe).Begin(tc.query)
			assert.Equal(t, tc.expectedState, d.State())
			assert.Equal(t, tc.expectedReason, d.Reason())
			assert.Equal(t, tc.expectedSort, d.SortApplied())
			assert.Equal(t, tc.expectedOrigin, d.Origin())
		})
	}
}

func TestDecision_Transitions(t *testing.T) {
	requested := func() *Decision {
		return NewResolver(nil).Begin(model.SearchQuery{Sort: model.SortDistanceAsc, Lat: str("1"), Lng: str("1")})
	}

	t.Run("Apply", func(t *testing.T) {
		d := requested()
		require.NoError(t, d.Apply())
		assert.Equal(t, StateDistanceApplied, d.State())
		assert.Equal(t, model.SortDistanceAsc, d.SortApplied())
		assert.ErrorIs(t, d.Apply(), apperrors.ErrIllegalTransition)
		assert.ErrorIs(t, d.IndexFailed(), apperrors.ErrIllegalTransition)
	})

	t.Run("Index failed", func(t *testing.T) {
		d := requested()
		require.NoError(t, d.IndexFailed())
		assert.Equal(t, StateFallbackDefault, d.State())
		assert.Equal(t, model.ReasonIndexUnavailable, d.Reason())
		assert.Equal(t, model.SortDefault, d.SortApplied())
		assert.Nil(t, d.Origin())
		assert.ErrorIs(t, d.Apply(), apperrors.ErrIllegalTransition)
	})

	t.Run("Default never transitions", func(t *testing.T) {
		d := NewResolver(nil).Begin(model.SearchQuery{Sort: model.SortDefault})
		assert.ErrorIs(t, d.Apply(), apperrors.ErrIllegalTransition)
		assert.ErrorIs(t, d.IndexFailed(), apperrors.ErrIllegalTransition)
		assert.Equal(t, StateDefault, d.State())
	})
}
