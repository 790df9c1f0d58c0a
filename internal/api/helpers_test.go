package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/middleware"
)

const testClientID = "key-0000test"

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// newTestRouter creates a gin engine that marks requests as authenticated.
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ClientIDKey, testClientID)
		c.Next()
	})

	return r
}

// decodeBody unmarshals the recorded JSON body into a T.
func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, w.Body.String())
	}

	return v
}

// errorCode returns the "code" field of a recorded error body.
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	return decodeBody[map[string]string](t, w)["code"]
}

// doRequest sends a request to r, with a JSON body when body is non-empty.
func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}
