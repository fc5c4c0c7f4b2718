package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ojplay/pkg/utils/logger"

	"github.com/gin-gonic/gin"
)

func newRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLogMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		*seen = logger.RequestIDFrom(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestIDMiddlewareKeepsIncomingID(t *testing.T) {
	var seen string
	r := newRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if seen != "req-42" {
		t.Errorf("context request id = %q", seen)
	}
	if got := w.Header().Get(requestIDHeader); got != "req-42" {
		t.Errorf("response header = %q", got)
	}
}

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	var seen string
	r := newRouter(&seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if seen == "" {
		t.Fatal("expected a generated request id")
	}
	if w.Header().Get(requestIDHeader) != seen {
		t.Errorf("header %q does not match context %q", w.Header().Get(requestIDHeader), seen)
	}
}
