package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey = "response_meta"
	cacheHitKey     = "cache_hit"
	countKey        = "count"
)

type responseMeta struct {
	started time.Time
	values  map[string]interface{}
}

// WithResponseMeta starts the per-request metadata that handlers merge into the envelope.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(responseMetaKey, &responseMeta{started: time.Now(), values: map[string]interface{}{}})
		c.Next()
	}
}

// SetMeta stores an arbitrary envelope meta value.
func SetMeta(c *gin.Context, key string, value interface{}) {
	metaFor(c).values[key] = value
}

// SetCacheHit records whether statistics were served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, cacheHitKey, hit)
}

// SetCount records the number of items in a list response.
func SetCount(c *gin.Context, n int) {
	SetMeta(c, countKey, n)
}

// ExtractMeta snapshots the collected metadata. processing_time_ms is only present
// when WithResponseMeta ran for the request.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	meta := metaFor(c)
	if len(meta.values) == 0 && meta.started.IsZero() {
		return nil
	}
	out := make(map[string]interface{}, len(meta.values)+1)
	for k, v := range meta.values {
		out[k] = v
	}
	if !meta.started.IsZero() {
		out["processing_time_ms"] = time.Since(meta.started).Milliseconds()
	}
	return out
}

func metaFor(c *gin.Context) *responseMeta {
	if raw, ok := c.Get(responseMetaKey); ok {
		if meta, ok := raw.(*responseMeta); ok {
			return meta
		}
	}
	meta := &responseMeta{values: map[string]interface{}{}}
	c.Set(responseMetaKey, meta)
	return meta
}
