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

	"github.com/CGDEV2002/Brecho-E-commerce/internal/config"
)

// bodyRecorder captures the response body and status while forwarding to the
// client, so successful listings can be stored after the handler ran.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (br *bodyRecorder) WriteHeader(code int) {
	br.status = code
	br.ResponseWriter.WriteHeader(code)
}

func (br *bodyRecorder) Write(b []byte) (int, error) {
	if br.limit <= 0 || br.size < br.limit {
		remain := br.limit - br.size
		if br.limit <= 0 || int64(len(b)) <= remain {
			br.buf.Write(b)
		} else {
			br.buf.Write(b[:remain])
		}
	}
	br.size += int64(len(b))
	return br.ResponseWriter.Write(b)
}

// catalogCacheKey hashes route + raw query under the configured prefix.  The
// query string participates because every filter combination is a distinct
// listing.
func catalogCacheKey(cfg config.CacheConfig, c echo.Context) string {
	tail := c.Path() + "?" + c.Request().URL.RawQuery
	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// Cached payload layout:
// [4 bytes status][len-prefixed content-type][len-prefixed total-count][body].
// Total-count rides along because paginating clients read X-Total-Count off
// the listing response; a HIT must carry the same headers as a MISS.
func packCached(status int, contentType, totalCount string, body []byte) []byte {
	out := make([]byte, 0, 12+len(contentType)+len(totalCount)+len(body))
	var word [4]byte
	binary.BigEndian.PutUint32(word[:], uint32(status))
	out = append(out, word[:]...)
	out = appendPrefixed(out, contentType)
	out = appendPrefixed(out, totalCount)
	return append(out, body...)
}

func appendPrefixed(dst []byte, s string) []byte {
	var word [4]byte
	binary.BigEndian.PutUint32(word[:], uint32(len(s)))
	return append(append(dst, word[:]...), s...)
}

func unpackCached(bs []byte) (status int, contentType, totalCount string, body []byte, ok bool) {
	if len(bs) < 4 {
		return 0, "", "", nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	rest := bs[4:]
	contentType, rest, ok = readPrefixed(rest)
	if !ok {
		return 0, "", "", nil, false
	}
	totalCount, rest, ok = readPrefixed(rest)
	if !ok {
		return 0, "", "", nil, false
	}
	return status, contentType, totalCount, rest, true
}

func readPrefixed(bs []byte) (s string, rest []byte, ok bool) {
	if len(bs) < 4 {
		return "", nil, false
	}
	n := int(binary.BigEndian.Uint32(bs[0:4]))
	if n < 0 || 4+n > len(bs) {
		return "", nil, false
	}
	return string(bs[4 : 4+n]), bs[4+n:], true
}

// CatalogCache caches successful catalog listing responses in Redis.  It is
// registered per-route on the public list endpoints only: the product detail
// route must never go through it, because every detail fetch has to reach
// the database to increment the view counter.  With no Redis client the
// middleware is a pass-through.
func CatalogCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxBody := int64(cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			ctx := c.Request().Context()
			key := catalogCacheKey(cfg, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, ctype, total, body, ok := unpackCached(bs); ok {
					if ctype != "" {
						c.Response().Header().Set(echo.HeaderContentType, ctype)
					}
					if total != "" {
						c.Response().Header().Set("X-Total-Count", total)
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					_, _ = c.Response().Write(body)
					return nil
				}
			}

			br := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = br
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			// Only 200s are worth keeping, and only when the whole body fit.
			if br.status == http.StatusOK && (maxBody <= 0 || br.size <= maxBody) {
				ctype := c.Response().Header().Get(echo.HeaderContentType)
				total := c.Response().Header().Get("X-Total-Count")
				payload := packCached(br.status, ctype, total, br.buf.Bytes())
				_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
			}
			return nil
		}
	}
}
