package book

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookclub/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /api/books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(r, w, books, nil)
}

// Create handles POST /api/books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", nil)
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccessCreated(r, w, created)
}

// Update handles PUT /api/books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", nil)
		return
	}

	updated, err := h.service.Update(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		h.writeError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, updated, nil)
}

// Delete handles DELETE /api/books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, removed, nil)
}

// Vote handles POST /api/books/{id}/vote
func (h *HTTPHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"userId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	updated, err := h.service.ToggleVote(r.Context(), r.PathValue("id"), body.UserID)
	if err != nil {
		h.writeError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, updated, nil)
}

// AddReview handles POST /api/books/{id}/reviews
func (h *HTTPHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID  string   `json:"userId"`
		Content string   `json:"content"`
		Rating  *float64 `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", nil)
		return
	}

	review, err := h.service.AddReview(r.Context(), r.PathValue("id"), body.UserID, body.Content, body.Rating)
	if err != nil {
		h.writeError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, review)
}

// DeleteReview handles DELETE /api/books/{id}/reviews/{reviewID}
func (h *HTTPHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), r.PathValue("id"), r.PathValue("reviewID")); err != nil {
		h.writeError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, map[string]bool{"success": true}, nil)
}

// AddComment handles POST /api/books/{id}/reviews/{reviewID}/comments
func (h *HTTPHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID  string `json:"userId"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", nil)
		return
	}

	comment, err := h.service.AddComment(r.Context(), r.PathValue("id"), r.PathValue("reviewID"), body.UserID, body.Content)
	if err != nil {
		h.writeError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, comment)
}

// DeleteComment handles DELETE /api/books/{id}/reviews/{reviewID}/comments/{commentID}
func (h *HTTPHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteComment(r.Context(), r.PathValue("id"), r.PathValue("reviewID"), r.PathValue("commentID"))
	if err != nil {
		h.writeError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, map[string]bool{"success": true}, nil)
}

func (h *HTTPHandler) writeError(r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrReviewNotFound):
		httpx.JSONError(r, w, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
	case errors.Is(err, ErrCommentNotFound):
		httpx.JSONError(r, w, http.StatusNotFound, "NOT_FOUND", "Comment not found", nil)
	default:
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
