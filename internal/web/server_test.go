package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aejsx/internal/model"
)

func post(t *testing.T, body string) (*httptest.ResponseRecorder, TransformResponse) {
	t.Helper()
	h := NewServer(model.DefaultOptions(), nil).Handler()
	req := httptest.NewRequest(http.MethodPost, "/api/transform", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp TransformResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestTransformFlat(t *testing.T) {
	rec, resp := post(t, `{"file":"a.js","code":"export const a = 1;"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{\n\ta: 1,\n}", resp.Code)
	assert.Equal(t, []model.Export{{Local: "a", Exported: "a"}}, resp.Exports)
	assert.Empty(t, resp.Error)
}

func TestTransformWrapped(t *testing.T) {
	rec, resp := post(t, `{"code":"const b = 2;\nexport { b as c };","wrap":true,"format":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{\n  get() {\n    const b = 2;\n    return { c: b }\n  }\n}", resp.Code)
}

func TestTransformParseError(t *testing.T) {
	rec, resp := post(t, `{"file":"bad.js","code":"const = ;"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, resp.Error, "in bad.js")
	assert.Equal(t, 1, resp.Line)
	assert.Empty(t, resp.Code)
	assert.NotNil(t, resp.Exports)
}

func TestTransformBadRequest(t *testing.T) {
	rec, _ := post(t, `{"code":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h := NewServer(model.DefaultOptions(), nil).Handler()
	get := httptest.NewRecorder()
	h.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/transform", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, get.Code)
	assert.Equal(t, http.MethodPost, get.Header().Get("Allow"))
}

func TestStaticAndHelp(t *testing.T) {
	h := NewServer(model.DefaultOptions(), nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/transform")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/help", nil))
	assert.Contains(t, rec.Body.String(), "# aejsx "+model.Version)
	assert.NotContains(t, rec.Body.String(), "{{VERSION}}")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.JSONEq(t, `{"version":"`+model.Version+`"}`, rec.Body.String())
}
