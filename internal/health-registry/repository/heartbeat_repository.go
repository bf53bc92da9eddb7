package repository

import (
	apperrors "Proximity_Search_Microservice/internal/health-registry/errors"
	"Proximity_Search_Microservice/internal/health-registry/model"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
)

// InstanceUptime is the share of time an instance reported healthy, in percent.
type InstanceUptime struct {
	InstanceID       string
	UptimePercentage float64
	LastStatus       model.Status
}

//go:generate mockgen -source=heartbeat_repository.go -destination=../mocks/repository/mock_heartbeat_repository.go -package=mockrepository
type HeartbeatRepository interface {
	EnsureIndex(ctx context.Context) error
	Index(ctx context.Context, doc model.HeartbeatDocument) error
	GetInstanceUptimePercentage(ctx context.Context, instanceID string, startTime time.Time, endTime time.Time) (float64, error)
	GetAllInstancesUptime(ctx context.Context, startTime time.Time, endTime time.Time) ([]InstanceUptime, error)
}

type heartbeatRepository struct {
	es    *elasticsearch.Client
	index string
}

type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	}
}

func (h *heartbeatRepository) EnsureIndex(ctx context.Context) error {
	res, err := h.es.Indices.Exists([]string{h.index}, h.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("HeartbeatRepo.EnsureIndex: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"instance_id":                      map[string]interface{}{"type": "keyword"},
				"status":                           map[string]interface{}{"type": "keyword"},
				"status_numeric":                   map[string]interface{}{"type": "integer"},
				"source":                           map[string]interface{}{"type": "keyword"},
				"timestamp":                        map[string]interface{}{"type": "date"},
				"interval_since_last_heartbeat_ms": map[string]interface{}{"type": "long"},
			},
		},
	}
	var buf bytes.Buffer
	if err = json.NewEncoder(&buf).Encode(mapping); err != nil {
		return fmt.Errorf("HeartbeatRepo.EnsureIndex encode mapping: %w", err)
	}
	res, err = h.es.Indices.Create(h.index,
		h.es.Indices.Create.WithContext(ctx),
		h.es.Indices.Create.WithBody(&buf))
	if err != nil {
		return fmt.Errorf("HeartbeatRepo.EnsureIndex: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		var e esErrorResponse
		if err = json.NewDecoder(res.Body).Decode(&e); err != nil {
			return fmt.Errorf("HeartbeatRepo.EnsureIndex decode err response: %w", err)
		}
		if e.Error.Type == "resource_already_exists_exception" {
			return nil
		}
		return fmt.Errorf("HeartbeatRepo.EnsureIndex: %w", apperrors.NewElasticSearchError(res.StatusCode, e.Error.Type, e.Error.Reason))
	}
	return nil
}

func (h *heartbeatRepository) Index(ctx context.Context, doc model.HeartbeatDocument) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("HeartbeatRepo.Index encode document: %w", err)
	}
	res, err := h.es.Index(h.index, &buf, h.es.Index.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("HeartbeatRepo.Index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("HeartbeatRepo.Index: %w", decodeError(res))
	}
	return nil
}

type esUptimePercentageResponse struct {
	Aggregations struct {
		UptimePercentage struct {
			Value *float64 `json:"value"`
		} `json:"uptime_percentage"`
	} `json:"aggregations"`
}

func (h *heartbeatRepository) GetInstanceUptimePercentage(ctx context.Context, instanceID string, startTime time.Time, endTime time.Time) (float64, error) {
	query := map[string]interface{}{
		"size": 0,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{
						"term": map[string]interface{}{
							"instance_id": instanceID,
						},
					},
					timeRange(startTime, endTime),
				},
			},
		},
		"aggs": map[string]interface{}{
			"uptime_percentage": uptimeAggregation(),
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return 0, fmt.Errorf("HeartbeatRepo.GetInstanceUptimePercentage encode query: %w", err)
	}
	res, err := h.es.Search(
		h.es.Search.WithContext(ctx),
		h.es.Search.WithIndex(h.index),
		h.es.Search.WithBody(&buf))
	if err != nil {
		return 0, fmt.Errorf("HeartbeatRepo.GetInstanceUptimePercentage: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("HeartbeatRepo.GetInstanceUptimePercentage: %w", decodeError(res))
	}

	var uptimeResponse esUptimePercentageResponse
	if err = json.NewDecoder(res.Body).Decode(&uptimeResponse); err != nil {
		return 0, fmt.Errorf("HeartbeatRepo.GetInstanceUptimePercentage decode response: %w", err)
	}
	// no heartbeats in range
	if uptimeResponse.Aggregations.UptimePercentage.Value == nil {
		return 0, nil
	}
	return *uptimeResponse.Aggregations.UptimePercentage.Value * 100, nil
}

type esInstancesUptimeResponse struct {
	Aggregations struct {
		Instances struct {
			Buckets []struct {
				Key              string `json:"key"`
				UptimePercentage struct {
					Value *float64 `json:"value"`
				} `json:"uptime_percentage"`
				LatestHeartbeat struct {
					Hits struct {
						Hits []struct {
							Source struct {
								Status model.Status `json:"status"`
							} `json:"_source"`
						} `json:"hits"`
					} `json:"hits"`
				} `json:"latest_heartbeat"`
			} `json:"buckets"`
		} `json:"instances"`
	} `json:"aggregations"`
}

func (h *heartbeatRepository) GetAllInstancesUptime(ctx context.Context, startTime time.Time, endTime time.Time) ([]InstanceUptime, error) {
	query := map[string]interface{}{
		"size":  0,
		"query": timeRange(startTime, endTime),
		"aggs": map[string]interface{}{
			"instances": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "instance_id",
					"size":  10000,
					"order": map[string]interface{}{"_key": "asc"},
				},
				"aggs": map[string]interface{}{
					"uptime_percentage": uptimeAggregation(),
					"latest_heartbeat": map[string]interface{}{
						"top_hits": map[string]interface{}{
							"size": 1,
							"sort": []map[string]interface{}{
								{
									"timestamp": map[string]interface{}{
										"order": "desc",
									},
								},
							},
							"_source": map[string]interface{}{
								"includes": "status",
							},
						},
					},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("HeartbeatRepo.GetAllInstancesUptime encode query: %w", err)
	}
	res, err := h.es.Search(
		h.es.Search.WithContext(ctx),
		h.es.Search.WithIndex(h.index),
		h.es.Search.WithBody(&buf))
	if err != nil {
		return nil, fmt.Errorf("HeartbeatRepo.GetAllInstancesUptime: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("HeartbeatRepo.GetAllInstancesUptime: %w", decodeError(res))
	}

	var uptimeResponse esInstancesUptimeResponse
	if err = json.NewDecoder(res.Body).Decode(&uptimeResponse); err != nil {
		return nil, fmt.Errorf("HeartbeatRepo.GetAllInstancesUptime decode response body: %w", err)
	}
	out := make([]InstanceUptime, 0, len(uptimeResponse.Aggregations.Instances.Buckets))
	for _, bucket := range uptimeResponse.Aggregations.Instances.Buckets {
		uptime := InstanceUptime{InstanceID: bucket.Key}
		if bucket.UptimePercentage.Value != nil {
			uptime.UptimePercentage = *bucket.UptimePercentage.Value * 100
		}
		if hits := bucket.LatestHeartbeat.Hits.Hits; len(hits) > 0 {
			uptime.LastStatus = hits[0].Source.Status
		}
		out = append(out, uptime)
	}
	return out, nil
}

func timeRange(startTime time.Time, endTime time.Time) map[string]interface{} {
	return map[string]interface{}{
		"range": map[string]interface{}{
			"timestamp": map[string]interface{}{
				"gte": startTime,
				"lt":  endTime,
			},
		},
	}
}

// uptimeAggregation weights each heartbeat's 0/1 status by the time it covers.
func uptimeAggregation() map[string]interface{} {
	return map[string]interface{}{
		"weighted_avg": map[string]interface{}{
			"value": map[string]interface{}{
				"field": "status_numeric",
			},
			"weight": map[string]interface{}{
				"field": "interval_since_last_heartbeat_ms",
			},
		},
	}
}

func decodeError(res *esapi.Response) error {
	var e esErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
		return fmt.Errorf("decode err response: %w", err)
	}
	return apperrors.NewElasticSearchError(res.StatusCode, e.Error.Type, e.Error.Reason)
}

func NewHeartbeatRepository(esClient *elasticsearch.Client, index string) HeartbeatRepository {
	return &heartbeatRepository{
		es:    esClient,
		index: index,
	}
}
