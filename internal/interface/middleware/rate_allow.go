package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the limiter for loopback and private-range clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowInDevelopment returns AllowPrivateIP for the development env and nil otherwise.
func AllowInDevelopment(env string) AllowFunc {
	if env != "development" {
		return nil
	}
	return AllowPrivateIP()
}
