package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMaxBodySize(t *testing.T) {
	tests := []struct {
		name     string
		limit    int64
		body     []byte
		wantCode int
	}{
		{"under limit", 1024, []byte(`{"amount":500}`), http.StatusOK},
		{"exact limit", 5, []byte("12345"), http.StatusOK},
		{"over limit", 16, []byte(strings.Repeat("A", 100)), http.StatusRequestEntityTooLarge},
		{"no body", 1024, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(MaxBodySize(tt.limit))
			r.POST("/test", func(c *gin.Context) {
				b, err := io.ReadAll(c.Request.Body)
				if err != nil {
					c.String(http.StatusRequestEntityTooLarge, "too large")
					return
				}
				c.String(http.StatusOK, string(b))
			})

			var body io.Reader = http.NoBody
			if tt.body != nil {
				body = bytes.NewReader(tt.body)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", body))

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, string(tt.body), w.Body.String())
			}
		})
	}
}
