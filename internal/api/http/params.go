package http

import (
	"fmt"
	"net/http"
	"strconv"

	"libris-backend/internal/domain"

	"github.com/gorilla/mux"
)

const maxPageSize = 100

// pathID reads the {id} route variable.
func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidArgument, raw)
	}
	return int32(id), nil
}

// pagination reads page/page_size query parameters, falling back to page 1
// and the configured default size.
func pagination(r *http.Request, defaultPageSize int32) (int32, int32) {
	page := int32(1)
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	pageSize := defaultPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= maxPageSize {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}
