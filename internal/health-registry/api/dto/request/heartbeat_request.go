package request

import "time"

type HeartbeatRequest struct {
	Status      string             `json:"status" binding:"required,oneof=healthy degraded unhealthy"`
	Address     string             `json:"address"`
	Timestamp   *time.Time         `json:"timestamp"`
	Diagnostics map[string]float64 `json:"diagnostics"`
}
