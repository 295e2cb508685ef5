package search

import (
	"errors"
	"net/http"
	"strings"

	"bookclub/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Search handles GET /api/search-book
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	title := query.Get("title")
	author := query.Get("author")

	results, err := h.service.SearchBookInfo(r.Context(), title, author)
	if err != nil {
		if errors.Is(err, ErrTitleRequired) {
			httpx.JSONError(r, w, http.StatusBadRequest, "TITLE_REQUIRED", "Query parameter 'title' is required", nil)
			return
		}
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(r, w, results, nil)
}

// Suggest handles GET /api/search-suggest
func (h *HTTPHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	httpx.JSONSuccess(r, w, h.service.Autocomplete(r.Context(), query), nil)
}
