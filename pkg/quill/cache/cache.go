package cache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Pages is a full-page cache for GET responses, keyed on path+query.
// Entries expire by TTL only; there is no active invalidation. A nil
// client disables caching entirely.
func Pages(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := "page:" + c.Request.URL.RequestURI()
		ctx := c.Request.Context()

		if blob, err := rdb.Get(ctx, key).Bytes(); err == nil {
			contentType, body, ok := split(blob)
			if ok {
				c.Data(http.StatusOK, contentType, body)
				c.Abort()
				return
			}
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			entry := append([]byte(writer.Header().Get("Content-Type")+"\n"), writer.body.Bytes()...)
			rdb.Set(ctx, key, entry, ttl)
		}
	}
}

// Entries are stored as "content-type\nbody".
func split(blob []byte) (string, []byte, bool) {
	i := bytes.IndexByte(blob, '\n')
	if i < 0 {
		return "", nil, false
	}
	return string(blob[:i]), blob[i+1:], true
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
