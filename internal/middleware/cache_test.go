package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-blog-api/internal/config"
)

func TestEncodeDecodePayload_Roundtrip(t *testing.T) {
	t.Parallel()

	body := []byte(`{"items":[]}`)
	bs := encodePayload(http.StatusOK, echo.MIMEApplicationJSON, body)

	status, ct, got, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Fatalf("status: got %d", status)
	}
	if ct != echo.MIMEApplicationJSON {
		t.Fatalf("content type: got %q", ct)
	}
	if string(got) != string(body) {
		t.Fatalf("body: got %q want %q", got, body)
	}
}

func TestDecodePayload_Truncated(t *testing.T) {
	t.Parallel()

	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 7)} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Fatalf("decode of %d bytes should fail", len(bs))
		}
	}
}

func TestCacheKey_ResolvesParams(t *testing.T) {
	t.Parallel()

	e := echo.New()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	key := func(path, id string) string {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/posts/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
		return cacheKey(cfg, c)
	}

	if key("/v1/posts/1", "1") == key("/v1/posts/2", "2") {
		t.Fatal("different post ids must produce different cache keys")
	}
	if key("/v1/posts/1", "1") != key("/v1/posts/1", "1") {
		t.Fatal("cache key must be stable")
	}
}

func TestNewRedisCache_DisabledIsPassthrough(t *testing.T) {
	t.Parallel()

	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/posts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.JSON(http.StatusOK, echo.Map{"items": []string{}})
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("disabled cache must pass the request through")
	}
	if rec.Header().Get("X-Cache") != "" {
		t.Fatal("passthrough must not set cache headers")
	}
}
