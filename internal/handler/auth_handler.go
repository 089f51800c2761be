package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/radheshyamgupta01/TLF-sub001/internal/model"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/jwtutil"
	"github.com/radheshyamgupta01/TLF-sub001/pkg/logger"
	"github.com/radheshyamgupta01/TLF-sub001/prometheus"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	DB  *gorm.DB
	JWT *jwtutil.JWTUtil
}

// Roles a user may register as. Admin accounts are provisioned out of band.
var registrableRoles = map[model.UserRole]bool{
	model.RoleBuyer: true, model.RoleSeller: true,
	model.RoleBroker: true, model.RoleDeveloper: true,
}

// Register handles new account creation.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Name     string         `json:"name"`
		Email    string         `json:"email"`
		Phone    string         `json:"phone"`
		Password string         `json:"password"`
		Role     model.UserRole `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and a password of at least 6 characters are required"})
	}
	if req.Role == "" {
		req.Role = model.RoleBuyer
	}
	if !registrableRoles[req.Role] {
		prometheus.RecordAuthError("invalid_role")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}

	var existing model.User
	if result := h.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		log.Warn("email already registered", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     req.Role,
		IsActive: true,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := h.DB.Create(&user); result.Error != nil {
		log.Error("failed to create user", zap.Error(result.Error))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("user registered",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registered successfully",
		"user":    user,
	})
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := h.DB.Where("email = ? AND is_active = ?", req.Email, true).First(&user)
	if result.Error != nil {
		log.Warn("login for unknown or inactive user", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.JWT.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		log.Error("failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("user logged in",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}
