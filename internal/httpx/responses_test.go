package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func requestWithID(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(ContextWithRequestID(r.Context(), id))
}

func TestJSONSuccess_CarriesRequestIDMeta(t *testing.T) {
	w := httptest.NewRecorder()

	JSONSuccess(requestWithID("req-42"), w, map[string]string{"k": "v"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"k":"v"},"meta":{"request_id":"req-42"}}`, w.Body.String())
}

func TestJSONSuccess_NoMetaWithoutRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	JSONSuccess(r, w, []string{}, nil)

	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestJSONSuccess_MergesCustomMeta(t *testing.T) {
	w := httptest.NewRecorder()

	JSONSuccess(requestWithID("req-7"), w, nil, map[string]interface{}{"total": 3})

	assert.JSONEq(t, `{"success":true,"meta":{"request_id":"req-7","total":3}}`, w.Body.String())
}

func TestJSONSuccessCreated(t *testing.T) {
	w := httptest.NewRecorder()

	JSONSuccessCreated(requestWithID("req-9"), w, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":"1"},"meta":{"request_id":"req-9"}}`, w.Body.String())
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()

	JSONError(requestWithID("req-3"), w, http.StatusBadRequest, "TITLE_REQUIRED", "Query parameter 'title' is required", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{
		"success": false,
		"error": {"code":"TITLE_REQUIRED","message":"Query parameter 'title' is required"},
		"meta": {"request_id":"req-3"}
	}`, w.Body.String())
}
