package model

import "time"

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

func (s Status) Valid() bool {
	switch s {
	case StatusHealthy, StatusDegraded, StatusUnhealthy:
		return true
	}
	return false
}

// Diagnostic counter names reported by search instances.
const (
	DiagActiveConnections = "active_connections"
	DiagCacheHitRate      = "cache_hit_rate"
	DiagFallbackTotal     = "fallback_total"
)

// Heartbeat is the message a backend instance publishes on every tick.
type Heartbeat struct {
	InstanceID  string             `json:"instance_id"`
	Address     string             `json:"address,omitempty"`
	Status      Status             `json:"status"`
	Timestamp   time.Time          `json:"timestamp"`
	Diagnostics map[string]float64 `json:"diagnostics,omitempty"`
}

// InstanceHealthRecord is the registry's view of one instance. LastHeartbeat is the
// sender's timestamp (receipt time when the heartbeat carried none); ReceivedAt is the
// registry clock at receipt.
type InstanceHealthRecord struct {
	InstanceID    string             `json:"instance_id"`
	Address       string             `json:"address,omitempty"`
	Status        Status             `json:"status"`
	LastHeartbeat time.Time          `json:"last_heartbeat"`
	ReceivedAt    time.Time          `json:"received_at"`
	Diagnostics   map[string]float64 `json:"diagnostics,omitempty"`
	Healthy       bool               `json:"healthy"`
}

// HeartbeatDocument is one row of heartbeat history.
type HeartbeatDocument struct {
	InstanceID     string    `json:"instance_id"`
	Status         Status    `json:"status"`
	StatusNumeric  int       `json:"status_numeric"`
	Source         string    `json:"source"`
	Timestamp      time.Time `json:"timestamp"`
	IntervalMillis int64     `json:"interval_since_last_heartbeat_ms"`
}
