package catalog

// SearchResponse is the /search payload.
type SearchResponse struct {
	Query            string      `json:"query"`
	Products         []Product   `json:"products"`
	Total            int         `json:"total"`
	Page             int         `json:"page"`
	Limit            int         `json:"limit"`
	TotalPages       int         `json:"total_pages"`
	SourcesSucceeded int         `json:"sources_succeeded"`
	SourcesFailed    int         `json:"sources_failed"`
	AllSourcesFailed bool        `json:"all_sources_failed"`
	Filters          FilterState `json:"filters"`
	Duration         string      `json:"duration"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}
