package request

type InvalidateRequest struct {
	All        bool     `json:"all"`
	Categories []string `json:"categories" validate:"dive,required"`
	Agencies   []string `json:"agencies" validate:"dive,required"`
	Lat        *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng        *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
}
