package response

import "time"

type InstanceResponse struct {
	InstanceID    string             `json:"instance_id"`
	Address       string             `json:"address,omitempty"`
	Status        string             `json:"status"`
	Healthy       bool               `json:"healthy"`
	LastHeartbeat time.Time          `json:"last_heartbeat"`
	ReceivedAt    time.Time          `json:"received_at"`
	Diagnostics   map[string]float64 `json:"diagnostics,omitempty"`
}

type HealthyInstancesResponse struct {
	Count     int      `json:"count"`
	Instances []string `json:"instances"`
}

type HeartbeatAcceptedResponse struct {
	Accepted bool             `json:"accepted"`
	Instance InstanceResponse `json:"instance"`
}

type UptimeResponse struct {
	UptimePercentage float64 `json:"uptime_percentage"`
}

type InstanceUptimeResponse struct {
	InstanceID       string  `json:"instance_id"`
	UptimePercentage float64 `json:"uptime_percentage"`
	LastStatus       string  `json:"last_status,omitempty"`
}
