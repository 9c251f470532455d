package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP lets loopback and RFC 1918 clients bypass a limiter.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowIPs bypasses the limiter for an explicit allowlist.
func AllowIPs(ips ...string) AllowFunc {
	set := make(map[string]struct{}, len(ips))
	for _, ip := range ips {
		if parsed := net.ParseIP(ip); parsed != nil {
			set[parsed.String()] = struct{}{}
		}
	}
	return func(c *gin.Context) bool {
		_, ok := set[ipFromCtx(c)]
		return ok
	}
}

// AllowAny bypasses when any of fns does. Nil entries are ignored; with none
// left it returns nil, which RateLimit treats as no bypass.
func AllowAny(fns ...AllowFunc) AllowFunc {
	var set []AllowFunc
	for _, fn := range fns {
		if fn != nil {
			set = append(set, fn)
		}
	}
	if len(set) == 0 {
		return nil
	}
	return func(c *gin.Context) bool {
		for _, fn := range set {
			if fn(c) {
				return true
			}
		}
		return false
	}
}
