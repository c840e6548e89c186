package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(BodyLimitMiddleware(16))
	router.POST("/upload", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		body       string
		hideLength bool
		wantStatus int
	}{
		{name: "within limit", body: "<small/>", wantStatus: http.StatusOK},
		{name: "declared length too large", body: strings.Repeat("x", 32), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "undeclared length too large", body: strings.Repeat("x", 32), hideLength: true, wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(tt.body))
			if tt.hideLength {
				req.ContentLength = -1
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/validate", RequireContentType("application/xhtml+xml", "text/html"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		contentType string
		wantStatus  int
	}{
		{"application/xhtml+xml", http.StatusOK},
		{"text/html; charset=utf-8", http.StatusOK},
		{"application/json", http.StatusUnsupportedMediaType},
		{"", http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader("<html/>"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
