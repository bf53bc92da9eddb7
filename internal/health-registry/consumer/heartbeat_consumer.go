package consumer

import (
	apperrors "Proximity_Search_Microservice/internal/health-registry/errors"
	"Proximity_Search_Microservice/internal/health-registry/model"
	"Proximity_Search_Microservice/internal/health-registry/service"
	"Proximity_Search_Microservice/pkg/infra"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type HeartbeatConsumer interface {
	Start()
	Stop()
}

type heartbeatConsumer struct {
	kafkaReader   infra.KafkaReader
	healthService service.HealthService
	logger        *zap.Logger
	started       atomic.Bool
	done          chan struct{}
}

func (h *heartbeatConsumer) Start() {
	h.started.Store(true)
	go func() {
		defer close(h.done)
		for {
			m, err := h.kafkaReader.FetchMessage(context.Background())
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				err = fmt.Errorf("heartbeatConsumer.Start: %w", err)
				h.logger.Log(zap.ErrorLevel, "failed to fetch message", zap.Error(err))
				continue
			}
			h.handle(m)
		}
	}()
}

func (h *heartbeatConsumer) handle(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if m.Value == nil {
		h.commit(ctx, m)
		return
	}
	var hb model.Heartbeat
	if err := json.Unmarshal(m.Value, &hb); err != nil {
		err = fmt.Errorf("heartbeatConsumer.handle: %w", err)
		h.logger.Log(zap.ErrorLevel, "failed to unmarshal message", zap.Error(err))
		h.commit(ctx, m)
		return
	}
	if hb.InstanceID == "" {
		hb.InstanceID = string(m.Key)
	}
	_, _, err := h.healthService.ReportHeartbeat(ctx, hb, service.SourceKafka)
	if err != nil {
		err = fmt.Errorf("heartbeatConsumer.handle: %w", err)
		// a malformed heartbeat will never succeed, skip it
		if errors.Is(err, apperrors.ErrInvalidHeartbeat) {
			h.logger.Log(zap.WarnLevel, "rejected heartbeat", zap.Error(err), zap.String("instance_id", hb.InstanceID))
			h.commit(ctx, m)
			return
		}
		h.logger.Log(zap.ErrorLevel, "failed to report heartbeat", zap.Error(err))
		return
	}
	h.commit(ctx, m)
}

func (h *heartbeatConsumer) commit(ctx context.Context, m kafka.Message) {
	if err := h.kafkaReader.CommitMessages(ctx, m); err != nil {
		err = fmt.Errorf("heartbeatConsumer.commit: %w", err)
		h.logger.Log(zap.ErrorLevel, "failed to commit messages", zap.Error(err))
	}
}

// Stop closes the reader, which ends the fetch loop, and waits for it to exit.
func (h *heartbeatConsumer) Stop() {
	if err := h.kafkaReader.Close(); err != nil {
		h.logger.Log(zap.ErrorLevel, "failed to close kafka reader", zap.Error(fmt.Errorf("heartbeatConsumer.Stop: %w", err)))
	}
	if h.started.Load() {
		<-h.done
	}
}

func NewHeartbeatConsumer(reader infra.KafkaReader, healthService service.HealthService, logger *zap.Logger) HeartbeatConsumer {
	return &heartbeatConsumer{
		kafkaReader:   reader,
		healthService: healthService,
		logger:        logger,
		done:          make(chan struct{}),
	}
}
