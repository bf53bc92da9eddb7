package poller

import (
	"Proximity_Search_Microservice/internal/health-registry/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"
)

type InstanceClient interface {
	GetInstanceHealth(ctx context.Context, address string, healthEndpoint string) (HealthResponse, error)
}

type instanceClient struct {
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	initialBackoff time.Duration
}

// HealthResponse carries the outcome of one poll. Transport failures land in Error;
// the returned error is reserved for requests that could not be built. Timestamp is the
// instance's own snapshot time, zero when the body carried none.
type HealthResponse struct {
	StatusCode  int
	Status      model.Status
	Diagnostics map[string]float64
	Error       error
	Attempts    int
	Timestamp   time.Time
}

type healthzBody struct {
	InstanceID  string             `json:"instance_id"`
	Status      model.Status       `json:"status"`
	Timestamp   string             `json:"timestamp"`
	Diagnostics map[string]float64 `json:"diagnostics"`
}

func (s *instanceClient) GetInstanceHealth(ctx context.Context, address string, healthEndpoint string) (HealthResponse, error) {
	if !strings.HasPrefix(healthEndpoint, "/") {
		healthEndpoint = "/" + healthEndpoint
	}
	requestUrl := fmt.Sprintf("http://%s%s", address, healthEndpoint)
	backoff := s.initialBackoff
	var err error
	attempt := 1
	for ; attempt <= s.maxRetries; attempt++ {
		if err = s.limiter.Wait(ctx); err != nil {
			break
		}
		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
		if err != nil {
			return HealthResponse{}, fmt.Errorf("InstanceClient.GetInstanceHealth creating request: %w", err)
		}
		var resp *http.Response
		resp, err = s.client.Do(req)
		if err != nil {
			if errors.Is(err, syscall.ECONNREFUSED) || ctx.Err() != nil {
				break
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
			}
			backoff *= 2
			continue
		}
		res := HealthResponse{
			StatusCode: resp.StatusCode,
			Attempts:   attempt,
		}
		var body healthzBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr == nil {
			res.Status = body.Status
			res.Diagnostics = body.Diagnostics
			if ts, parseErr := time.Parse(time.RFC3339Nano, body.Timestamp); parseErr == nil {
				res.Timestamp = ts
			}
		}
		resp.Body.Close()
		return res, nil
	}
	return HealthResponse{
		Error:    err,
		Attempts: min(attempt, s.maxRetries),
	}, nil
}

func NewInstanceClient(maxRetries int, requestTimeout time.Duration, initialBackoff time.Duration, limiter *rate.Limiter) InstanceClient {
	return &instanceClient{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		limiter:        limiter,
		maxRetries:     maxRetries,
		initialBackoff: initialBackoff,
	}
}
