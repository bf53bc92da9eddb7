package heartbeat

import (
	registrymodel "Proximity_Search_Microservice/internal/health-registry/model"
	"Proximity_Search_Microservice/internal/search-service/config"
	mockgeoindex "Proximity_Search_Microservice/internal/search-service/mocks/geoindex"
	mockrepository "Proximity_Search_Microservice/internal/search-service/mocks/repository"
	"Proximity_Search_Microservice/pkg/infra"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func decodeHeartbeat(t *testing.T, msg kafka.Message) registrymodel.Heartbeat {
	t.Helper()
	var hb registrymodel.Heartbeat
	require.NoError(t, json.Unmarshal(msg.Value, &hb))
	return hb
}

func TestEmitter_onTick(t *testing.T) {
	testCases := []struct {
		name          string
		setupMocks    func(index *mockgeoindex.MockIndex, store *mockrepository.MockResultStore, writer *infra.MockKafkaWriter, published *[]kafka.Message)
		expectStatus  registrymodel.Status
		expectIndexUp bool
		expectCacheUp bool
	}{
		{
			name: "Success all dependencies reachable",
			setupMocks: func(index *mockgeoindex.MockIndex, store *mockrepository.MockResultStore, writer *infra.MockKafkaWriter, published *[]kafka.Message) {
				index.EXPECT().Ping(gomock.Any()).Return(nil)
				store.EXPECT().Ping(gomock.Any()).Return(nil)
				writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
					*published = append(*published, msgs...)
					return nil
				})
			},
			expectStatus:  registrymodel.StatusHealthy,
			expectIndexUp: true,
			expectCacheUp: true,
		},
		{
			name: "Degraded index unreachable",
			setupMocks: func(index *mockgeoindex.MockIndex, store *mockrepository.MockResultStore, writer *infra.MockKafkaWriter, published *[]kafka.Message) {
				index.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
				store.EXPECT().Ping(gomock.Any()).Return(nil)
				writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
					*published = append(*published, msgs...)
					return nil
				})
			},
			expectStatus:  registrymodel.StatusDegraded,
			expectIndexUp: false,
			expectCacheUp: true,
		},
		{
			name: "Degraded cache unreachable",
			setupMocks: func(index *mockgeoindex.MockIndex, store *mockrepository.MockResultStore, writer *infra.MockKafkaWriter, published *[]kafka.Message) {
				index.EXPECT().Ping(gomock.Any()).Return(nil)
				store.EXPECT().Ping(gomock.Any()).Return(errors.New("redis down"))
				writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
					*published = append(*published, msgs...)
					return nil
				})
			},
			expectStatus:  registrymodel.StatusDegraded,
			expectIndexUp: true,
			expectCacheUp: false,
		},
		{
			name: "Kafka failure keeps local snapshot",
			setupMocks: func(index *mockgeoindex.MockIndex, store *mockrepository.MockResultStore, writer *infra.MockKafkaWriter, published *[]kafka.Message) {
				index.EXPECT().Ping(gomock.Any()).Return(nil)
				store.EXPECT().Ping(gomock.Any()).Return(nil)
				writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("kafka is down"))
			},
			expectStatus:  registrymodel.StatusHealthy,
			expectIndexUp: true,
			expectCacheUp: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			index := mockgeoindex.NewMockIndex(ctrl)
			store := mockrepository.NewMockResultStore(ctrl)
			writer := infra.NewMockKafkaWriter(ctrl)
			var published []kafka.Message
			tc.setupMocks(index, store, writer, &published)

			state := NewDependencyState()
			e := &emitter{
				instanceID: "search-1",
				cfg:        config.HeartbeatConfig{Interval: time.Second, ProbeTimeout: 100 * time.Millisecond, Address: "10.0.0.1:8080"},
				index:      index,
				cache:      store,
				state:      state,
				diagnostics: func() map[string]float64 {
					return map[string]float64{registrymodel.DiagActiveConnections: 4}
				},
				kafka:    writer,
				logger:   zap.NewNop(),
				now:      func() time.Time { return fixedNow },
				stopChan: make(chan struct{}),
			}
			e.onTick()

			assert.Equal(t, tc.expectIndexUp, state.IndexAvailable())
			assert.Equal(t, tc.expectCacheUp, state.CacheAvailable())

			latest, ok := e.Latest()
			require.True(t, ok)
			assert.Equal(t, tc.expectStatus, latest.Status)
			assert.Equal(t, fixedNow, latest.Timestamp)
			assert.Equal(t, 4.0, latest.Diagnostics[registrymodel.DiagActiveConnections])

			for _, msg := range published {
				assert.Equal(t, "search-1", string(msg.Key))
				hb := decodeHeartbeat(t, msg)
				assert.Equal(t, tc.expectStatus, hb.Status)
				assert.Equal(t, "10.0.0.1:8080", hb.Address)
			}
		})
	}
}

func TestEmitter_LatestBeforeStart(t *testing.T) {
	e := NewEmitter("search-1", config.HeartbeatConfig{Interval: time.Second}, nil, nil, NewDependencyState(), nil, nil, zap.NewNop())
	_, ok := e.Latest()
	assert.False(t, ok)
}

func TestDependencyState_DefaultsAvailable(t *testing.T) {
	s := NewDependencyState()
	assert.True(t, s.IndexAvailable())
	assert.True(t, s.CacheAvailable())
}

func TestEmitter_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	index := mockgeoindex.NewMockIndex(ctrl)
	store := mockrepository.NewMockResultStore(ctrl)
	writer := infra.NewMockKafkaWriter(ctrl)

	var statuses []registrymodel.Status
	index.EXPECT().Ping(gomock.Any()).Return(nil).MinTimes(2)
	store.EXPECT().Ping(gomock.Any()).Return(nil).MinTimes(2)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
		for _, m := range msgs {
			statuses = append(statuses, decodeHeartbeat(t, m).Status)
		}
		return nil
	}).MinTimes(3)
	writer.EXPECT().Close().Return(nil).Times(1)

	e := NewEmitter(
		"search-1",
		config.HeartbeatConfig{Interval: 50 * time.Millisecond, ProbeTimeout: 20 * time.Millisecond},
		index,
		store,
		NewDependencyState(),
		nil,
		writer,
		zap.NewNop(),
	)
	e.Start()
	time.Sleep(120 * time.Millisecond)
	e.Stop()
	e.Stop()

	require.GreaterOrEqual(t, len(statuses), 3)
	assert.Equal(t, registrymodel.StatusHealthy, statuses[0])
	assert.Equal(t, registrymodel.StatusUnhealthy, statuses[len(statuses)-1])

	latest, ok := e.Latest()
	require.True(t, ok)
	assert.Equal(t, registrymodel.StatusUnhealthy, latest.Status)
}
