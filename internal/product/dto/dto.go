package dto

type ProductFilters struct {
	Category    string `json:"category"`
	SearchQuery string `json:"search_query"`
	SortBy      string `json:"sort_by"`    // name, price, created_at
	SortOrder   string `json:"sort_order"` // asc, desc
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}
