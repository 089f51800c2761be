package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/jwtutil"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/logger"
)

// JWTAuth validates the bearer token and stores the caller's identity in
// the request context.
func JWTAuth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			claims, err := bearerClaims(c, jwtUtil)
			if err != nil {
				log.Warn("rejected unauthenticated request", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
			}

			setIdentity(c, claims)
			return next(c)
		}
	}
}

// OptionalJWTAuth resolves the caller's identity when a valid token is
// present but lets anonymous requests through untouched.
func OptionalJWTAuth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := bearerClaims(c, jwtUtil); err == nil {
				setIdentity(c, claims)
			}
			return next(c)
		}
	}
}

// RequireAdmin guards admin routes. Must run after JWTAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			logger.FromEcho(c).Warn("non-admin request to admin route")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
		}
		return next(c)
	}
}

func bearerClaims(c echo.Context, jwtUtil *jwtutil.JWTUtil) (*jwtutil.UserClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	return jwtUtil.ValidateToken(parts[1])
}

func setIdentity(c echo.Context, claims *jwtutil.UserClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	c.Set("user_role", claims.Role)
}

// UserID returns the authenticated caller's id, if any.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get("user_id").(uint)
	return id, ok
}

// IsAdmin reports whether the authenticated caller is an administrator.
func IsAdmin(c echo.Context) bool {
	role, _ := c.Get("user_role").(string)
	return role == string(model.RoleAdmin)
}
