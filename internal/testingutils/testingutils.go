// Package testingutils holds HTTP helpers shared by handler tests.
package testingutils

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/middleware"
)

// SetupTestRouter creates a new Gin router for testing
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Recovery(zerolog.Nop()))
	return router
}

// PerformRequest performs an HTTP request for testing
func PerformRequest(router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	return PerformRequestWithContext(context.Background(), router, method, path, body, token)
}

// PerformRequestWithContext performs an HTTP request bound to ctx
func PerformRequestWithContext(ctx context.Context, router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req = req.WithContext(ctx)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DecodeJSON unmarshals the response body into a T
func DecodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// AssertError asserts the status code and the "error" message of a response
func AssertError(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code)
	body := DecodeJSON[map[string]interface{}](t, w)
	assert.Equal(t, expectedError, body["error"])
}
