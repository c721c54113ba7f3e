package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sylo/internal/domain"
)

func TestOptionalString(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"v": null}`, wantPresent: true},
		{name: "empty", body: `{"v": ""}`, wantPresent: true, wantValue: strPtr("")},
		{name: "value", body: `{"v": "x"}`, wantPresent: true, wantValue: strPtr("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				V OptionalString `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.wantPresent, got.V.Present)
			assert.Equal(t, tt.wantValue, got.V.Value)
		})
	}
}

func TestOptional_NonString(t *testing.T) {
	var got struct {
		Score Optional[float64] `json:"score"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"score": 42.5}`), &got))
	require.True(t, got.Score.Present)
	assert.Equal(t, 42.5, *got.Score.Value)

	assert.Error(t, json.Unmarshal([]byte(`{"score": "high"}`), &got))
}

func TestParseJSON(t *testing.T) {
	type dest struct {
		Title string `json:"title"`
	}
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
	}{
		{name: "valid", body: `{"title":"a"}`, wantOK: true, wantStatus: http.StatusOK},
		{name: "unknown field", body: `{"title":"a","owner":"b"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed", body: `{"title":`, wantStatus: http.StatusBadRequest},
		{name: "too large", body: `{"title":"` + strings.Repeat("x", maxBodyBytes) + `"}`, wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d dest
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(tt.body))

			ok := ParseJSON(rec, req, &d)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if !ok {
				assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestPathUUID(t *testing.T) {
	mux := http.NewServeMux()
	var got string
	var gotErr error
	mux.HandleFunc("GET /p/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = PathUUID(r, "id")
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/p/6F9619FF-8B86-D011-B42D-00CF4FC964FF", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00cf4fc964ff", got)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/p/not-a-uuid", nil))
	assert.Error(t, gotErr)
}

func TestPathUUIDs(t *testing.T) {
	mux := http.NewServeMux()
	var ids []string
	var ok bool
	mux.HandleFunc("GET /p/{id}/t/{taskId}", func(w http.ResponseWriter, r *http.Request) {
		ids, ok = PathUUIDs(w, r, "id", "taskId")
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/p/6f9619ff-8b86-d011-b42d-00cf4fc964ff/t/1b4e28ba-2fa1-11d2-883f-0016d3cca427", nil))
	require.True(t, ok)
	assert.Equal(t, []string{"6f9619ff-8b86-d011-b42d-00cf4fc964ff", "1b4e28ba-2fa1-11d2-883f-0016d3cca427"}, ids)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/p/6f9619ff-8b86-d011-b42d-00cf4fc964ff/t/nope", nil))
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "taskId")
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"not found", fmt.Errorf("task abc: %w", domain.ErrNotFound), http.StatusNotFound, "task abc: not found"},
		{"conflict", &domain.ConflictError{Message: "exists"}, http.StatusConflict, "exists"},
		{"store failure hides detail", domain.NewStoreError("insert task", errors.New("conn reset")), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/projects/abc", nil)

			status := RespondError(rec, req, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			var body Problem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDetail, body.Detail)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "/api/projects/abc", body.Instance)
			assert.NotEqual(t, "about:blank", body.Type)
		})
	}
}

func TestUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserID(req)
	assert.False(t, ok)

	id, ok := UserID(WithUserID(req, "user-1"))
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)
}

func strPtr(s string) *string { return &s }
