package book

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*HTTPHandler, *Service) {
	t.Helper()
	service := NewService(newMemoryRepo())
	return NewHTTPHandler(service), service
}

func TestHTTPHandler_ListAndCreate(t *testing.T) {
	handler, _ := newTestHandler(t)

	t.Run("empty list", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/books", nil)

		handler.List(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
	})

	t.Run("create", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/books",
			strings.NewReader(`{"title":"Dune","author":"Frank Herbert","addedBy":"alice"}`))

		handler.Create(w, r)

		require.Equal(t, http.StatusCreated, w.Code)

		var body struct {
			Data Book `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Data.ID)
		assert.Equal(t, "Dune", body.Data.Title)
		assert.Equal(t, StatusCandidate, body.Data.Status)
	})

	t.Run("invalid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader("{broken"))

		handler.Create(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	handler, service := newTestHandler(t)
	created, err := service.Create(context.Background(), CreateInput{Title: "Dune"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/books/"+created.ID,
			strings.NewReader(`{"status":"finished"}`))
		r.SetPathValue("id", created.ID)

		handler.Update(w, r)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data Book `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "finished", body.Data.Status)
		assert.Equal(t, "Dune", body.Data.Title)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/books/missing", strings.NewReader(`{}`))
		r.SetPathValue("id", "missing")

		handler.Update(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	handler, service := newTestHandler(t)
	created, err := service.Create(context.Background(), CreateInput{Title: "Dune"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/books/"+created.ID, nil)
	r.SetPathValue("id", created.ID)

	handler.Delete(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodDelete, "/api/books/"+created.ID, nil)
	r.SetPathValue("id", created.ID)

	handler.Delete(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHTTPHandler_Vote(t *testing.T) {
	handler, service := newTestHandler(t)
	created, err := service.Create(context.Background(), CreateInput{Title: "Dune"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/books/"+created.ID+"/vote",
		strings.NewReader(`{"userId":"alice"}`))
	r.SetPathValue("id", created.ID)

	handler.Vote(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Votes["alice"])
}

func TestHTTPHandler_ReviewsAndComments(t *testing.T) {
	handler, service := newTestHandler(t)
	ctx := context.Background()
	created, err := service.Create(ctx, CreateInput{Title: "Dune"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/books/"+created.ID+"/reviews",
		strings.NewReader(`{"userId":"alice","content":"Loved it.","rating":4.5}`))
	r.SetPathValue("id", created.ID)

	handler.AddReview(w, r)

	require.Equal(t, http.StatusCreated, w.Code)

	var reviewBody struct {
		Data Review `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviewBody))
	reviewID := reviewBody.Data.ID
	require.NotEmpty(t, reviewID)

	t.Run("add comment", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/books/"+created.ID+"/reviews/"+reviewID+"/comments",
			strings.NewReader(`{"userId":"bob","content":"Same."}`))
		r.SetPathValue("id", created.ID)
		r.SetPathValue("reviewID", reviewID)

		handler.AddComment(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("comment on unknown review", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/books/"+created.ID+"/reviews/missing/comments",
			strings.NewReader(`{"content":"hi"}`))
		r.SetPathValue("id", created.ID)
		r.SetPathValue("reviewID", "missing")

		handler.AddComment(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete review", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodDelete, "/api/books/"+created.ID+"/reviews/"+reviewID, nil)
		r.SetPathValue("id", created.ID)
		r.SetPathValue("reviewID", reviewID)

		handler.DeleteReview(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
