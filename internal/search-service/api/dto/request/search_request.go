package request

// SearchRequest binds the query string of a search. Lat and Lng stay strings so a
// malformed coordinate reaches the ranking resolver instead of failing binding.
type SearchRequest struct {
	Sort         string   `form:"sort"`
	Lat          *string  `form:"lat"`
	Lng          *string  `form:"lng"`
	RadiusMeters int      `form:"radius_m" binding:"gte=0" validate:"gte=0"`
	Categories   []string `form:"category"`
	Agencies     []string `form:"agency"`
	OpenNow      bool     `form:"open_now"`
	Cursor       string   `form:"cursor"`
	Limit        int      `form:"limit" binding:"gte=0" validate:"gte=0"`
}
