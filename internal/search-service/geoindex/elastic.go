package geoindex

import (
	apperrors "Proximity_Search_Microservice/internal/search-service/errors"
	"Proximity_Search_Microservice/internal/search-service/model"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
)

type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	}
}

type esNearestResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID   string    `json:"_id"`
			Sort []float64 `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

type elasticIndex struct {
	es    *elasticsearch.Client
	index string
}

func (e *elasticIndex) Name() string {
	return BackendElasticsearch
}

func (e *elasticIndex) Nearest(ctx context.Context, req NearestRequest) (NearestPage, error) {
	origin := map[string]interface{}{
		"lat": req.Origin.Lat,
		"lon": req.Origin.Lng,
	}
	filters := make([]map[string]interface{}, 0, 3)
	if req.RadiusMeters > 0 {
		filters = append(filters, map[string]interface{}{
			"geo_distance": map[string]interface{}{
				"distance": fmt.Sprintf("%dm", req.RadiusMeters),
				"location": origin,
			},
		})
	}
	if len(req.Categories) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{"category": req.Categories},
		})
	}
	if len(req.Agencies) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{"agency": req.Agencies},
		})
	}
	query := map[string]interface{}{
		"from":             req.Offset,
		"size":             req.Limit,
		"track_total_hits": true,
		"_source":          false,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": filters,
			},
		},
		"sort": []map[string]interface{}{
			{
				"_geo_distance": map[string]interface{}{
					"location":      origin,
					"order":         "asc",
					"unit":          "m",
					"distance_type": "arc",
				},
			},
			{
				"id": map[string]interface{}{
					"order": "asc",
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return NearestPage{}, fmt.Errorf("ElasticIndex.Nearest encode query: %w", err)
	}
	res, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(e.index),
		e.es.Search.WithBody(&buf))
	if err != nil {
		return NearestPage{}, fmt.Errorf("ElasticIndex.Nearest: %w", apperrors.NewIndexError(BackendElasticsearch, false, err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return NearestPage{}, fmt.Errorf("ElasticIndex.Nearest: %w", e.responseError(res))
	}

	var body esNearestResponse
	if err = json.NewDecoder(res.Body).Decode(&body); err != nil {
		return NearestPage{}, fmt.Errorf("ElasticIndex.Nearest decode response: %w", apperrors.NewIndexError(BackendElasticsearch, false, err))
	}
	page := NearestPage{
		Candidates: make([]model.Candidate, 0, len(body.Hits.Hits)),
		Total:      body.Hits.Total.Value,
	}
	for _, hit := range body.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			return NearestPage{}, fmt.Errorf("ElasticIndex.Nearest parse id %q: %w", hit.ID, apperrors.NewIndexError(BackendElasticsearch, true, err))
		}
		if len(hit.Sort) == 0 {
			return NearestPage{}, fmt.Errorf("ElasticIndex.Nearest: %w", apperrors.NewIndexError(BackendElasticsearch, false, fmt.Errorf("hit %s has no sort values", hit.ID)))
		}
		page.Candidates = append(page.Candidates, model.Candidate{ID: id, DistanceMeters: hit.Sort[0]})
	}
	SortCandidates(page.Candidates)
	return page, nil
}

func (e *elasticIndex) Ping(ctx context.Context) error {
	res, err := e.es.Indices.Exists([]string{e.index}, e.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ElasticIndex.Ping: %w", apperrors.NewIndexError(BackendElasticsearch, false, err))
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ElasticIndex.Ping: %w", apperrors.NewIndexError(BackendElasticsearch, res.StatusCode == http.StatusNotFound,
			apperrors.NewElasticSearchError(res.StatusCode, "index_check_failed", "index "+e.index+" is not available")))
	}
	return nil
}

// EnsureIndex creates the index with a geo_point mapping when it does not exist yet.
func (e *elasticIndex) EnsureIndex(ctx context.Context) error {
	res, err := e.es.Indices.Exists([]string{e.index}, e.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ElasticIndex.EnsureIndex: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"analysis": map[string]interface{}{
				"normalizer": map[string]interface{}{
					"lowercase": map[string]interface{}{
						"type":   "custom",
						"filter": []string{"lowercase"},
					},
				},
			},
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":       map[string]interface{}{"type": "long"},
				"name":     map[string]interface{}{"type": "keyword"},
				"location": map[string]interface{}{"type": "geo_point"},
				"category": map[string]interface{}{"type": "keyword", "normalizer": "lowercase"},
				"agency":   map[string]interface{}{"type": "keyword", "normalizer": "lowercase"},
			},
		},
	}
	var buf bytes.Buffer
	if err = json.NewEncoder(&buf).Encode(mapping); err != nil {
		return fmt.Errorf("ElasticIndex.EnsureIndex encode mapping: %w", err)
	}
	res, err = e.es.Indices.Create(e.index,
		e.es.Indices.Create.WithContext(ctx),
		e.es.Indices.Create.WithBody(&buf))
	if err != nil {
		return fmt.Errorf("ElasticIndex.EnsureIndex: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		var esErr esErrorResponse
		if err = json.NewDecoder(res.Body).Decode(&esErr); err != nil {
			return fmt.Errorf("ElasticIndex.EnsureIndex decode err response: %w", err)
		}
		// another instance won the race
		if esErr.Error.Type == "resource_already_exists_exception" {
			return nil
		}
		return fmt.Errorf("ElasticIndex.EnsureIndex: %w", apperrors.NewElasticSearchError(res.StatusCode, esErr.Error.Type, esErr.Error.Reason))
	}
	return nil
}

func (e *elasticIndex) responseError(res *esapi.Response) error {
	var esErr esErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&esErr); err != nil {
		return apperrors.NewIndexError(BackendElasticsearch, false, fmt.Errorf("decode err response: %w", err))
	}
	permanent := res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusBadRequest
	return apperrors.NewIndexError(BackendElasticsearch, permanent,
		apperrors.NewElasticSearchError(res.StatusCode, esErr.Error.Type, esErr.Error.Reason))
}

// ElasticIndex is the Elasticsearch backend; EnsureIndex is exposed for startup.
type ElasticIndex interface {
	Index
	EnsureIndex(ctx context.Context) error
}

func NewElasticIndex(es *elasticsearch.Client, index string) ElasticIndex {
	return &elasticIndex{
		es:    es,
		index: index,
	}
}
