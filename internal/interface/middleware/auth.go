package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-barber/pkg/response"
)

// CtxUserIDKey is where Auth stores the authenticated user id.
const CtxUserIDKey = "userID"

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Auth requires "Authorization: Bearer <token>" and sets userID in the Gin context.
// Only an absent header is "Token not provided"; any other failure is "Token invalid".
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Fail(c, http.StatusUnauthorized, "Token not provided", nil)
			return
		}
		token := bearerToken(header)
		if token == "" {
			response.Fail(c, http.StatusUnauthorized, "Token invalid", nil)
			return
		}
		userID, err := verifier.VerifyToken(token)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Token invalid", nil)
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
