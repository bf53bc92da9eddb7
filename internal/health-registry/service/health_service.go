package service

import (
	"Proximity_Search_Microservice/internal/health-registry/config"
	"Proximity_Search_Microservice/internal/health-registry/model"
	"Proximity_Search_Microservice/internal/health-registry/registry"
	"Proximity_Search_Microservice/internal/health-registry/repository"
	"Proximity_Search_Microservice/pkg/metrics"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Heartbeat sources.
const (
	SourceKafka = "kafka"
	SourcePush  = "push"
	SourcePoll  = "poll"
)

//go:generate mockgen -source=health_service.go -destination=../mocks/service/mock_health_service.go -package=mockservice
type HealthService interface {
	// ReportHeartbeat records hb in the registry and, when accepted, in heartbeat
	// history. History failures are logged, never returned.
	ReportHeartbeat(ctx context.Context, hb model.Heartbeat, source string) (model.InstanceHealthRecord, bool, error)
	IsHealthy(instanceID string) bool
	ListHealthy() []string
	GetInstance(instanceID string) (model.InstanceHealthRecord, error)
	ListInstances() []model.InstanceHealthRecord
	GetInstanceUptimePercentage(ctx context.Context, instanceID string, startTime time.Time, endTime time.Time) (float64, error)
	GetAllInstancesUptime(ctx context.Context, startTime time.Time, endTime time.Time) ([]repository.InstanceUptime, error)
	Prune() int
}

type healthService struct {
	registry      registry.Registry
	heartbeatRepo repository.HeartbeatRepository
	cfg           config.RegistryConfig
	logger        *zap.Logger
}

func (h *healthService) ReportHeartbeat(ctx context.Context, hb model.Heartbeat, source string) (model.InstanceHealthRecord, bool, error) {
	report, err := h.registry.ReportHealth(hb)
	if err != nil {
		return model.InstanceHealthRecord{}, false, fmt.Errorf("HealthService.ReportHeartbeat: %w", err)
	}
	if !report.Accepted {
		h.logger.Debug("ignored out of order heartbeat",
			zap.String("instance_id", hb.InstanceID),
			zap.String("source", source),
			zap.Time("timestamp", hb.Timestamp),
			zap.Time("last_heartbeat", report.Previous))
		return report.Record, false, nil
	}
	metrics.RecordHeartbeat(source, string(report.Record.Status))

	interval := h.cfg.HeartbeatInterval
	if report.Interval > 0 {
		interval = report.Interval
	}
	doc := model.HeartbeatDocument{
		InstanceID:     report.Record.InstanceID,
		Status:         report.Record.Status,
		Source:         source,
		Timestamp:      report.Record.LastHeartbeat,
		IntervalMillis: interval.Milliseconds(),
	}
	if doc.Status == model.StatusHealthy {
		doc.StatusNumeric = 1
	}
	historyCtx, cancel := context.WithTimeout(ctx, h.cfg.HistoryTimeout)
	defer cancel()
	if err = h.heartbeatRepo.Index(historyCtx, doc); err != nil {
		h.logger.Warn("failed to record heartbeat history",
			zap.String("instance_id", doc.InstanceID),
			zap.Error(fmt.Errorf("HealthService.ReportHeartbeat: %w", err)))
	}
	return report.Record, true, nil
}

func (h *healthService) IsHealthy(instanceID string) bool {
	return h.registry.IsHealthy(instanceID)
}

func (h *healthService) ListHealthy() []string {
	return h.registry.ListHealthy()
}

func (h *healthService) GetInstance(instanceID string) (model.InstanceHealthRecord, error) {
	record, err := h.registry.Get(instanceID)
	if err != nil {
		return model.InstanceHealthRecord{}, fmt.Errorf("HealthService.GetInstance: %w", err)
	}
	return record, nil
}

func (h *healthService) ListInstances() []model.InstanceHealthRecord {
	return h.registry.List()
}

func (h *healthService) GetInstanceUptimePercentage(ctx context.Context, instanceID string, startTime time.Time, endTime time.Time) (float64, error) {
	res, err := h.heartbeatRepo.GetInstanceUptimePercentage(ctx, instanceID, startTime, endTime)
	if err != nil {
		return 0, fmt.Errorf("HealthService.GetInstanceUptimePercentage: %w", err)
	}
	return res, nil
}

func (h *healthService) GetAllInstancesUptime(ctx context.Context, startTime time.Time, endTime time.Time) ([]repository.InstanceUptime, error) {
	res, err := h.heartbeatRepo.GetAllInstancesUptime(ctx, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("HealthService.GetAllInstancesUptime: %w", err)
	}
	return res, nil
}

// Prune drops instances silent for longer than the configured retention.
func (h *healthService) Prune() int {
	removed := h.registry.Prune(h.cfg.PruneAfter)
	if removed > 0 {
		h.logger.Info("pruned silent instances", zap.Int("removed", removed))
	}
	return removed
}

func NewHealthService(reg registry.Registry, heartbeatRepo repository.HeartbeatRepository, cfg config.RegistryConfig, logger *zap.Logger) HealthService {
	return &healthService{
		registry:      reg,
		heartbeatRepo: heartbeatRepo,
		cfg:           cfg,
		logger:        logger,
	}
}
