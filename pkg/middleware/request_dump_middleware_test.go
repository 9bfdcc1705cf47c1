package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestDumpPreservesBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestDumpMiddleware())

	var seen string
	r.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		seen = string(body)
		c.Status(http.StatusOK)
	})

	payload := `{"email":"athlete@example.com","password":"hunter22"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, seen, "handlers must see the untouched body")
}

func TestSanitizeHeaders(t *testing.T) {
	h := http.Header{
		"Authorization": {"Bearer secret-token"},
		"Cookie":        {"session=abc"},
		"Content-Type":  {"application/json"},
	}

	out := sanitizeHeaders(h)
	assert.Equal(t, []string{"[redacted]"}, out["Authorization"])
	assert.Equal(t, []string{"[redacted]"}, out["Cookie"])
	assert.Equal(t, []string{"application/json"}, out["Content-Type"])
	assert.Equal(t, []string{"Bearer secret-token"}, h["Authorization"], "original headers untouched")
}

func TestDumpBodyMasksCredentials(t *testing.T) {
	out := dumpBody("application/json", []byte(`{"email":"a@b.c","password":"hunter22"}`))
	assert.Contains(t, out, `"email":"a@b.c"`)
	assert.Contains(t, out, `"password":"[redacted]"`)
	assert.NotContains(t, out, "hunter22")

	out = dumpBody("application/json", []byte(`{"Token":"tok_123"}`))
	assert.NotContains(t, out, "tok_123", "masking is case-insensitive")
}

func TestDumpBodySkipsUploadsAndTruncates(t *testing.T) {
	assert.Equal(t, "[multipart body omitted]",
		dumpBody("multipart/form-data", []byte("----boundary")))

	long := strings.Repeat("x", maxDumpBytes+100)
	out := dumpBody("text/plain", []byte(long))
	assert.True(t, strings.HasSuffix(out, "... (truncated)"))
	assert.Less(t, len(out), len(long))

	assert.Empty(t, dumpBody("application/json", nil))
}
