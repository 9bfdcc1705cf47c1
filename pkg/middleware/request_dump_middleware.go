package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	logger "lapados-backend/pkg/logging"
)

// maxDumpBytes caps how much of a request body reaches the debug log.
// Upload and LLM payloads can be large; the log only needs the head.
const maxDumpBytes = 4 << 10

// sensitiveFields are JSON keys whose values are masked before logging.
// Register and login carry passwords; integration payloads carry tokens.
var sensitiveFields = map[string]bool{
	"password": true,
	"token":    true,
}

// RequestDumpMiddleware logs every request at debug level with credentials
// masked. The body is re-buffered so downstream binding still sees it.
func RequestDumpMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		logger.Debug(
			"[Request]\n"+
				"\tMethod: %s\n"+
				"\tURL: %s\n"+
				"\tHeaders: %v\n"+
				"\tParams: %v\n"+
				"\tBody: %s",
			c.Request.Method,
			c.Request.URL.String(),
			sanitizeHeaders(c.Request.Header),
			c.Params,
			dumpBody(c.ContentType(), bodyBytes),
		)

		c.Next()
	}
}

// sanitizeHeaders copies the header set with bearer tokens and cookies
// masked.
func sanitizeHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			out[k] = []string{"[redacted]"}
			continue
		}
		out[k] = v
	}
	return out
}

// dumpBody renders a loggable view of the body: file uploads are omitted,
// JSON objects get their sensitive fields masked, and anything long is
// truncated.
func dumpBody(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return "[multipart body omitted]"
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err == nil {
		for k := range obj {
			if sensitiveFields[strings.ToLower(k)] {
				obj[k] = "[redacted]"
			}
		}
		if masked, err := json.Marshal(obj); err == nil {
			body = masked
		}
	}

	if len(body) > maxDumpBytes {
		return string(body[:maxDumpBytes]) + "... (truncated)"
	}
	return string(body)
}
