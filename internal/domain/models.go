package domain

// Plant is a catalog entry as served by the plants API
type Plant struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	ScientificName string        `json:"scientific_name,omitempty"`
	Category       string        `json:"category,omitempty"`
	CategoryID     int           `json:"category_id,omitempty"`
	CategoryInfo   *CategoryInfo `json:"category_info,omitempty"`
	Benefits       []string      `json:"benefits,omitempty"`
	Description    string        `json:"description,omitempty"`
	Usage          string        `json:"usage,omitempty"`
	Image          string        `json:"image,omitempty"`
	Images         []string      `json:"images,omitempty"`
}

// CategoryInfo is the nested category record
type CategoryInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PlantsResponse is the body of GET /api/plants.
// A missing "plants" key decodes to a nil slice, which callers treat like an empty one.
type PlantsResponse struct {
	Plants []Plant `json:"plants"`
}

// ErrorResponse is the body the catalog returns on failure
type ErrorResponse struct {
	Error string `json:"error"`
}
