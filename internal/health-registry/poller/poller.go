package poller

import (
	"Proximity_Search_Microservice/internal/health-registry/config"
	"Proximity_Search_Microservice/internal/health-registry/model"
	"Proximity_Search_Microservice/internal/health-registry/service"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Poller actively checks the liveness endpoint of configured instances, for
// deployments where instances cannot push heartbeats.
type Poller interface {
	Start()
	Stop()
}

type poller struct {
	targets       []config.PollTarget
	cfg           config.PollerConfig
	client        InstanceClient
	healthService service.HealthService
	logger        *zap.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func (p *poller) Start() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.onTick()
			case <-p.stopChan:
				return
			}
		}
	}()
}

func (p *poller) Stop() {
	p.once.Do(func() {
		close(p.stopChan)
	})
	p.wg.Wait()
}

func (p *poller) onTick() {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.Interval)
	defer cancel()

	var g errgroup.Group
	if p.cfg.Concurrency > 0 {
		g.SetLimit(p.cfg.Concurrency)
	}
	for _, target := range p.targets {
		g.Go(func() error {
			p.poll(ctx, target)
			return nil
		})
	}
	_ = g.Wait()
}

func (p *poller) poll(ctx context.Context, target config.PollTarget) {
	res, err := p.client.GetInstanceHealth(ctx, target.Address, p.cfg.HealthEndpoint)
	if err != nil {
		p.logger.Error("failed to poll instance",
			zap.String("instance_id", target.InstanceID),
			zap.Error(fmt.Errorf("poller.poll: %w", err)))
		return
	}
	hb := toHeartbeat(target, res)
	if _, _, err = p.healthService.ReportHeartbeat(ctx, hb, service.SourcePoll); err != nil {
		p.logger.Error("failed to report polled heartbeat",
			zap.String("instance_id", target.InstanceID),
			zap.Error(fmt.Errorf("poller.poll: %w", err)))
	}
}

// toHeartbeat turns a poll result into a heartbeat. Anything but a readable liveness
// answer counts as unhealthy. Only answered polls carry the instance's timestamp; the
// registry stamps the rest on receipt.
func toHeartbeat(target config.PollTarget, res HealthResponse) model.Heartbeat {
	hb := model.Heartbeat{
		InstanceID: target.InstanceID,
		Address:    target.Address,
		Status:     model.StatusUnhealthy,
	}
	if res.Error != nil || !res.Status.Valid() {
		return hb
	}
	answered := (res.StatusCode >= 200 && res.StatusCode < 300) || res.StatusCode == http.StatusServiceUnavailable
	if answered {
		hb.Status = res.Status
		hb.Timestamp = res.Timestamp
		hb.Diagnostics = res.Diagnostics
	}
	return hb
}

func NewPoller(targets []config.PollTarget, cfg config.PollerConfig, client InstanceClient, healthService service.HealthService, logger *zap.Logger) Poller {
	return &poller{
		targets:       targets,
		cfg:           cfg,
		client:        client,
		healthService: healthService,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}
