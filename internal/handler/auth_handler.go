package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"staffboard/internal/model"
	"staffboard/pkg/database"
	"staffboard/pkg/jwtutil"
	"staffboard/pkg/logger"
	"staffboard/prometheus"
)

// Login exchanges operator credentials for a bearer token.
func Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var user model.User
	result := database.GetDB().Where("username = ?", req.Username).First(&user)
	if result.Error != nil {
		log.Error("User not found", zap.String("username", req.Username))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": map[string]interface{}{
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// WorkerLogin exchanges a worker id for a limited self-service token. The
// token authorizes only that worker's own status and area changes.
func WorkerLogin(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		WorkerID uint `json:"worker_id"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	var worker model.Worker
	if result := database.GetDB().First(&worker, req.WorkerID); result.Error != nil {
		log.Error("Worker not found for self-service login", zap.Uint("worker_id", req.WorkerID))
		prometheus.RecordAuthError("worker_not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "worker not found"})
	}

	token, err := jwtutil.GenerateWorkerToken(worker.ID, worker.Name)
	if err != nil {
		log.Error("Failed to generate worker token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("Worker self-service login", zap.Uint("worker_id", worker.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"token":  token,
		"worker": worker,
	})
}

// VerifyToken reports whether the presented token is still valid and echoes
// the session it belongs to.
func VerifyToken(c echo.Context) error {
	username, _ := c.Get("username").(string)
	role, _ := c.Get("role").(string)
	return c.JSON(http.StatusOK, echo.Map{
		"valid": true,
		"user": map[string]interface{}{
			"username": username,
			"role":     role,
		},
	})
}

// Me returns the authenticated operator's account record.
func Me(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, _ := c.Get("user_id").(uint)
	var user model.User
	if result := database.GetDB().Select("username", "role").First(&user, userID); result.Error != nil {
		log.Error("User not found", zap.Uint("user_id", userID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"username": user.Username,
		"role":     user.Role,
	})
}
