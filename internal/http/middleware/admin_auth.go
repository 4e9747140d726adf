package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nukigor/ai-voxarena/internal/http/response"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

// AdminClaims is the token shape accepted on admin-only routes.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AdminAuth struct {
	log    *logger.Logger
	secret []byte
}

// NewAdminAuth guards admin routes with HS256 bearer tokens. An empty secret
// leaves the routes open.
func NewAdminAuth(log *logger.Logger, secret string) *AdminAuth {
	return &AdminAuth{log: log.With("middleware", "AdminAuth"), secret: []byte(strings.TrimSpace(secret))}
}

func (a *AdminAuth) Enabled() bool { return a != nil && len(a.secret) > 0 }

func (a *AdminAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}
		raw := bearerToken(c)
		if raw == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
			c.Abort()
			return
		}
		claims, err := a.parse(raw)
		if err != nil {
			a.log.Debug("admin token rejected", "error", err)
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
			c.Abort()
			return
		}
		if claims.Role != "admin" {
			response.RespondError(c, http.StatusForbidden, "forbidden", errors.New("forbidden"))
			c.Abort()
			return
		}
		c.Set("admin_subject", claims.Subject)
		c.Next()
	}
}

func (a *AdminAuth) parse(raw string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
