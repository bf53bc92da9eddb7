package repository

import (
	apperrors "Proximity_Search_Microservice/internal/health-registry/errors"
	"Proximity_Search_Microservice/internal/health-registry/model"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRoundTripper struct {
	statusCodes []int
	bodies      []string
	err         error
	requests    []*http.Request
	sent        []string
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		m.sent = append(m.sent, string(b))
	} else {
		m.sent = append(m.sent, "")
	}
	if m.err != nil {
		return nil, m.err
	}
	i := len(m.requests) - 1
	if i >= len(m.statusCodes) {
		i = len(m.statusCodes) - 1
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("X-Elastic-Product", "Elasticsearch")
	return &http.Response{
		StatusCode: m.statusCodes[i],
		Body:       io.NopCloser(strings.NewReader(m.bodies[i])),
		Header:     header,
		Request:    req,
	}, nil
}

func newMockEsClient(t *testing.T, rt *mockRoundTripper) *elasticsearch.Client {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Transport:    rt,
		DisableRetry: true,
	})
	require.NoError(t, err)
	return client
}

const esNotFoundBody = `{"error":{"type":"index_not_found_exception","reason":"no such index [instance_heartbeats]"},"status":404}`

func TestHeartbeatRepository_Index(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := model.HeartbeatDocument{
		InstanceID:     "search-1",
		Status:         model.StatusHealthy,
		StatusNumeric:  1,
		Source:         "kafka",
		Timestamp:      ts,
		IntervalMillis: 2000,
	}

	testCases := []struct {
		name        string
		rt          *mockRoundTripper
		expectedErr error
		expectErr   bool
	}{
		{
			name: "Success",
			rt:   &mockRoundTripper{statusCodes: []int{http.StatusCreated}, bodies: []string{`{"result":"created"}`}},
		},
		{
			name:        "Error Elasticsearch rejects document",
			rt:          &mockRoundTripper{statusCodes: []int{http.StatusBadRequest}, bodies: []string{`{"error":{"type":"mapper_parsing_exception","reason":"failed to parse"}}`}},
			expectedErr: &apperrors.ElasticSearchError{StatusCode: http.StatusBadRequest, Type: "mapper_parsing_exception", Reason: "failed to parse"},
			expectErr:   true,
		},
		{
			name:      "Error transport",
			rt:        &mockRoundTripper{err: errors.New("connection refused")},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewHeartbeatRepository(newMockEsClient(t, tc.rt), "instance_heartbeats")
			err := repo.Index(context.Background(), doc)
			if !tc.expectErr {
				require.NoError(t, err)
				require.Len(t, tc.rt.requests, 1)
				assert.Equal(t, "/instance_heartbeats/_doc", tc.rt.requests[0].URL.Path)
				var sent map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(tc.rt.sent[0]), &sent))
				assert.Equal(t, "search-1", sent["instance_id"])
				assert.Equal(t, 2000.0, sent["interval_since_last_heartbeat_ms"])
				return
			}
			assert.Error(t, err)
			if tc.expectedErr != nil {
				var esErr *apperrors.ElasticSearchError
				require.ErrorAs(t, err, &esErr)
				assert.Equal(t, tc.expectedErr, esErr)
			}
		})
	}
}

func TestHeartbeatRepository_GetInstanceUptimePercentage(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	testCases := []struct {
		name      string
		rt        *mockRoundTripper
		expected  float64
		expectErr bool
	}{
		{
			name:     "Success",
			rt:       &mockRoundTripper{statusCodes: []int{http.StatusOK}, bodies: []string{`{"aggregations":{"uptime_percentage":{"value":0.955}}}`}},
			expected: 95.5,
		},
		{
			name:     "Success No heartbeats in range",
			rt:       &mockRoundTripper{statusCodes: []int{http.StatusOK}, bodies: []string{`{"aggregations":{"uptime_percentage":{"value":null}}}`}},
			expected: 0,
		},
		{
			name:      "Error Index missing",
			rt:        &mockRoundTripper{statusCodes: []int{http.StatusNotFound}, bodies: []string{esNotFoundBody}},
			expectErr: true,
		},
		{
			name:      "Error Malformed response",
			rt:        &mockRoundTripper{statusCodes: []int{http.StatusOK}, bodies: []string{`{"aggregations":`}},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewHeartbeatRepository(newMockEsClient(t, tc.rt), "instance_heartbeats")
			res, err := repo.GetInstanceUptimePercentage(context.Background(), "search-1", start, end)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, res, 1e-9)
			assert.Contains(t, tc.rt.sent[0], `"term":{"instance_id":"search-1"}`)
			assert.Contains(t, tc.rt.sent[0], `"weight":{"field":"interval_since_last_heartbeat_ms"}`)
		})
	}
}

func TestHeartbeatRepository_GetAllInstancesUptime(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	body := `{
		"aggregations": {
			"instances": {
				"buckets": [
					{
						"key": "search-1",
						"uptime_percentage": {"value": 1},
						"latest_heartbeat": {"hits": {"hits": [{"_source": {"status": "healthy"}}]}}
					},
					{
						"key": "search-2",
						"uptime_percentage": {"value": 0.25},
						"latest_heartbeat": {"hits": {"hits": [{"_source": {"status": "unhealthy"}}]}}
					}
				]
			}
		}
	}`

	repo := NewHeartbeatRepository(newMockEsClient(t, &mockRoundTripper{statusCodes: []int{http.StatusOK}, bodies: []string{body}}), "instance_heartbeats")
	res, err := repo.GetAllInstancesUptime(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, []InstanceUptime{
		{InstanceID: "search-1", UptimePercentage: 100, LastStatus: model.StatusHealthy},
		{InstanceID: "search-2", UptimePercentage: 25, LastStatus: model.StatusUnhealthy},
	}, res)

	repo = NewHeartbeatRepository(newMockEsClient(t, &mockRoundTripper{statusCodes: []int{http.StatusNotFound}, bodies: []string{esNotFoundBody}}), "instance_heartbeats")
	_, err = repo.GetAllInstancesUptime(context.Background(), start, end)
	var esErr *apperrors.ElasticSearchError
	require.ErrorAs(t, err, &esErr)
	assert.Equal(t, "index_not_found_exception", esErr.Type)
}

func TestHeartbeatRepository_EnsureIndex(t *testing.T) {
	testCases := []struct {
		name      string
		rt        *mockRoundTripper
		calls     int
		expectErr bool
	}{
		{
			name:  "Index already exists",
			rt:    &mockRoundTripper{statusCodes: []int{http.StatusOK}, bodies: []string{``}},
			calls: 1,
		},
		{
			name:  "Index created",
			rt:    &mockRoundTripper{statusCodes: []int{http.StatusNotFound, http.StatusOK}, bodies: []string{``, `{"acknowledged":true}`}},
			calls: 2,
		},
		{
			name: "Created concurrently",
			rt: &mockRoundTripper{statusCodes: []int{http.StatusNotFound, http.StatusBadRequest}, bodies: []string{``,
				`{"error":{"type":"resource_already_exists_exception","reason":"index already exists"}}`}},
			calls: 2,
		},
		{
			name: "Create rejected",
			rt: &mockRoundTripper{statusCodes: []int{http.StatusNotFound, http.StatusForbidden}, bodies: []string{``,
				`{"error":{"type":"security_exception","reason":"action unauthorized"}}`}},
			calls:     2,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewHeartbeatRepository(newMockEsClient(t, tc.rt), "instance_heartbeats")
			err := repo.EnsureIndex(context.Background())
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, tc.rt.requests, tc.calls)
			if tc.calls == 2 {
				assert.Contains(t, tc.rt.sent[1], `"instance_id":{"type":"keyword"}`)
			}
		})
	}
}
