package heartbeat

import (
	registrymodel "Proximity_Search_Microservice/internal/health-registry/model"
	"Proximity_Search_Microservice/internal/search-service/config"
	"Proximity_Search_Microservice/pkg/infra"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// DependencyState holds the last probe results. The ranking resolver reads it to skip
// the index when it is known to be down.
type DependencyState struct {
	indexUp atomic.Bool
	cacheUp atomic.Bool
}

func NewDependencyState() *DependencyState {
	s := &DependencyState{}
	s.indexUp.Store(true)
	s.cacheUp.Store(true)
	return s
}

func (s *DependencyState) IndexAvailable() bool {
	return s.indexUp.Load()
}

func (s *DependencyState) CacheAvailable() bool {
	return s.cacheUp.Load()
}

type DiagnosticsFunc func() map[string]float64

type Emitter interface {
	Start()
	// Stop ends the ticker and publishes a final unhealthy heartbeat.
	Stop()
	Latest() (registrymodel.Heartbeat, bool)
}

type emitter struct {
	instanceID  string
	cfg         config.HeartbeatConfig
	index       Pinger
	cache       Pinger
	state       *DependencyState
	diagnostics DiagnosticsFunc
	kafka       infra.KafkaWriter
	logger      *zap.Logger
	now         func() time.Time

	latest   atomic.Pointer[registrymodel.Heartbeat]
	stopChan chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func (e *emitter) Start() {
	e.onTick()
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(e.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.onTick()
			case <-e.stopChan:
				return
			}
		}
	}()
}

func (e *emitter) Stop() {
	e.once.Do(func() {
		close(e.stopChan)
		e.wg.Wait()

		hb := e.build(registrymodel.StatusUnhealthy)
		e.latest.Store(&hb)
		e.publish(hb)
		if err := e.kafka.Close(); err != nil {
			e.logger.Error("failed to close heartbeat writer", zap.Error(fmt.Errorf("heartbeatEmitter.Stop: %w", err)))
		}
	})
}

func (e *emitter) Latest() (registrymodel.Heartbeat, bool) {
	hb := e.latest.Load()
	if hb == nil {
		return registrymodel.Heartbeat{}, false
	}
	return *hb, true
}

func (e *emitter) onTick() {
	indexUp := e.probe(e.index, "geo index")
	cacheUp := e.probe(e.cache, "result store")
	e.state.indexUp.Store(indexUp)
	e.state.cacheUp.Store(cacheUp)

	status := registrymodel.StatusHealthy
	if !indexUp || !cacheUp {
		status = registrymodel.StatusDegraded
	}
	hb := e.build(status)
	e.latest.Store(&hb)
	e.publish(hb)
}

func (e *emitter) probe(p Pinger, name string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.ProbeTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		e.logger.Warn("dependency probe failed", zap.String("dependency", name), zap.Error(err))
		return false
	}
	return true
}

func (e *emitter) build(status registrymodel.Status) registrymodel.Heartbeat {
	hb := registrymodel.Heartbeat{
		InstanceID: e.instanceID,
		Address:    e.cfg.Address,
		Status:     status,
		Timestamp:  e.now().UTC(),
	}
	if e.diagnostics != nil {
		hb.Diagnostics = e.diagnostics()
	}
	return hb
}

func (e *emitter) publish(hb registrymodel.Heartbeat) {
	b, err := json.Marshal(hb)
	if err != nil {
		e.logger.Error("failed to marshal heartbeat", zap.Error(fmt.Errorf("heartbeatEmitter.publish: %w", err)))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Interval)
	defer cancel()
	err = e.kafka.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.instanceID),
		Value: b,
	})
	if err != nil {
		e.logger.Error("failed to write heartbeat to kafka", zap.Error(fmt.Errorf("heartbeatEmitter.publish: %w", err)))
	}
}

func NewEmitter(
	instanceID string,
	cfg config.HeartbeatConfig,
	index Pinger,
	cache Pinger,
	state *DependencyState,
	diagnostics DiagnosticsFunc,
	kafkaWriter infra.KafkaWriter,
	logger *zap.Logger,
) Emitter {
	return &emitter{
		instanceID:  instanceID,
		cfg:         cfg,
		index:       index,
		cache:       cache,
		state:       state,
		diagnostics: diagnostics,
		kafka:       kafkaWriter,
		logger:      logger,
		now:         time.Now,
		stopChan:    make(chan struct{}),
	}
}
