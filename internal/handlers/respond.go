package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// writeJSON serializes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response. The message is user-facing
// and surfaced by the frontend's notification toasts as-is.
func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// listResponse is the shape of every paginated collection response.
// Total reflects the whole collection, not the returned page.
type listResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
}

// Pagination defaults and bounds shared by the list endpoints.
const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// pageParams reads ?page and ?page_size from the query string, applying
// defaults and clamping. Pages are zero-based; offset = page * pageSize.
func pageParams(r *http.Request) (page, pageSize int) {
	page = 0
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	pageSize = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = v
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
