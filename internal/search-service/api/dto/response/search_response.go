package response

type SearchItemResponse struct {
	ID             int64    `json:"id"`
	DistanceMeters *float64 `json:"distance_m"`
}

type SearchResponse struct {
	Results        []SearchItemResponse `json:"results"`
	Total          int64                `json:"total"`
	NextCursor     string               `json:"next_cursor,omitempty"`
	SortApplied    string               `json:"sort_applied"`
	FallbackReason string               `json:"fallback_reason,omitempty"`
}

type InvalidateResponse struct {
	Removed int `json:"removed"`
}

type HealthResponse struct {
	InstanceID  string             `json:"instance_id"`
	Status      string             `json:"status"`
	Timestamp   string             `json:"timestamp,omitempty"`
	Diagnostics map[string]float64 `json:"diagnostics,omitempty"`
}
