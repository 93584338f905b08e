package middleware

import (
	"bytes"
	"net/http"

	"Yatube/internal/cache"

	"github.com/gin-gonic/gin"
)

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheIndex serves the global listing from the response cache while
// the entry is fresh; a miss renders normally and stores the payload.
// Posts created inside the window stay invisible until expiry.
func CacheIndex(rc *cache.ResponseCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if body, contentType, ok := rc.Get(); ok {
			c.Data(http.StatusOK, contentType, body)
			c.Abort()
			return
		}
		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()
		if c.Writer.Status() == http.StatusOK {
			rc.Set(w.buf.Bytes(), w.Header().Get("Content-Type"))
		}
	}
}
