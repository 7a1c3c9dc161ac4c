package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DomainValidatorMiddleware answers 403 to requests whose Host is not domain.
// The port is ignored because the blog is often reached through a proxy on a
// different port than the one it listens on. Comparison is case-insensitive
// and tolerates a trailing dot.
func DomainValidatorMiddleware(domain string) gin.HandlerFunc {
	want := normalizeHost(domain)
	return func(c *gin.Context) {
		if normalizeHost(requestHost(c.Request)) != want {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// requestHost is the Host header without its port. A bare host, or a
// bracketed IPv6 literal without a port, is returned as is.
func requestHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.Host)
	if err != nil {
		return strings.Trim(r.Host, "[]")
	}
	return host
}

func normalizeHost(host string) string {
	return strings.TrimSuffix(strings.ToLower(host), ".")
}
