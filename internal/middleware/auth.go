package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staffboard/internal/model"
	"staffboard/pkg/jwtutil"
	"staffboard/pkg/logger"
	"staffboard/prometheus"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
	ContextWorkerID = "worker_id"
)

// AuthMiddleware validates the JWT token from the Authorization header and
// stores the session's subject and role in the request context. This is the
// read tier: any valid token passes.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		tokenString := BearerToken(c)
		if tokenString == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		if claims.WorkerID != nil {
			c.Set(ContextWorkerID, *claims.WorkerID)
		}

		return next(c)
	}
}

// RequireAdmin is the write tier: the session role must be admin. Apply after
// AuthMiddleware.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get(ContextRole).(string)
		if role != model.RoleAdmin {
			log := logger.FromEcho(c)
			log.Warn("admin access denied", zap.String("role", role))
			prometheus.RecordAuthError("forbidden")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin privileges required"})
		}
		return next(c)
	}
}

// RequireWorker is the self-service tier: the session must carry a worker
// token (admins pass too). Handlers still check that the token's worker id
// matches the target.
func RequireWorker(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get(ContextRole).(string)
		if role != model.RoleWorker && role != model.RoleAdmin {
			prometheus.RecordAuthError("forbidden")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "worker credentials required"})
		}
		return next(c)
	}
}

// BearerToken extracts the token from the Authorization header, falling back
// to the token query parameter for websocket handshakes.
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	return c.QueryParam("token")
}
