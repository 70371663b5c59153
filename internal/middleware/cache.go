package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-blog-api/internal/config"
)

// captureWriter duplicates the response body into a buffer while forwarding
// it to the client, so a successful response can be cached after the handler
// ran. Bodies beyond the configured limit are forwarded but not cached.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.size += int64(len(b))
	if cw.limit <= 0 || cw.size <= cw.limit {
		cw.buf.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

// cacheKey derives a stable Redis key from the route (and optionally the
// query string) under the configured prefix.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	route := c.Path()
	for _, name := range c.ParamNames() {
		route = strings.Replace(route, ":"+name, c.Param(name), 1)
	}

	var tail string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		tail = route
	default: // "route_query"
		tail = route + "?" + c.Request().URL.RawQuery
	}
	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// encodePayload packs [4 bytes status][4 bytes ctLen][contentType][body].
func encodePayload(status int, contentType string, body []byte) []byte {
	out := make([]byte, 8, 8+len(contentType)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(contentType)))
	out = append(out, contentType...)
	out = append(out, body...)
	return out
}

func decodePayload(bs []byte) (status int, contentType string, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, "", nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	ctLen := int(binary.BigEndian.Uint32(bs[4:8]))
	if ctLen < 0 || 8+ctLen > len(bs) {
		return 0, "", nil, false
	}
	return status, string(bs[8 : 8+ctLen]), bs[8+ctLen:], true
}

// NewRedisCache returns a middleware that serves successful GET responses
// from Redis. Only public read endpoints should be wrapped with it; anything
// derived from the authenticated user must never be cached this way. With
// caching disabled or no Redis client the middleware is a passthrough.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			key := cacheKey(cfg, c)
			if bs, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
				if status, ct, body, ok := decodePayload(bs); ok {
					c.Response().Header().Set("X-Cache", "HIT")
					if ct != "" {
						c.Response().Header().Set(echo.HeaderContentType, ct)
					}
					c.Response().WriteHeader(status)
					_, err := c.Response().Write(body)
					return err
				}
			}

			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			withinLimit := cw.limit <= 0 || cw.size <= cw.limit
			if cw.status == http.StatusOK && withinLimit {
				ct := c.Response().Header().Get(echo.HeaderContentType)
				payload := encodePayload(cw.status, ct, cw.buf.Bytes())
				// The request context may already be done; store anyway.
				_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
			}
			return nil
		}
	}
}
