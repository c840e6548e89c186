package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		header      string
		expectNewID bool
	}{
		{
			name:        "new id generated when header is absent",
			expectNewID: true,
		},
		{
			name:   "well-formed id is preserved",
			header: "req-2024.04_01",
		},
		{
			name:        "id with unsafe characters is replaced",
			header:      "abc\ninjected=1",
			expectNewID: true,
		},
		{
			name:        "overlong id is replaced",
			header:      strings.Repeat("a", 65),
			expectNewID: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromGin, fromContext string

			router := gin.New()
			router.Use(CorrelationIDMiddleware())
			router.GET("/test", func(c *gin.Context) {
				fromGin = GetCorrelationID(c)
				fromContext = CorrelationIDFromContext(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set(CorrelationIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, fromGin, fromContext)
			assert.Equal(t, fromGin, w.Header().Get(CorrelationIDHeader))

			if tt.expectNewID {
				_, err := uuid.Parse(fromGin)
				assert.NoError(t, err, "expected a generated uuid, got %q", fromGin)
			} else {
				assert.Equal(t, tt.header, fromGin)
			}
		})
	}
}

func TestCorrelationIDFromContext_Empty(t *testing.T) {
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
	assert.NotNil(t, LogWithCorrelationID(context.Background()))
	assert.NotNil(t, LogWithCorrelationID(WithCorrelationID(context.Background(), "abc")))
}
