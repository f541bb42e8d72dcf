package v1

import (
	"net/http"

	"opportunityhub-backend/internal/delivery/http/middleware"
	"opportunityhub-backend/internal/delivery/http/response"
	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"
	"opportunityhub-backend/pkg/logger"
	"opportunityhub-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authUC       domain.AuthUsecase
	loginTracker *security.LoginTracker
	secLogger    *security.Logger
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, loginTracker *security.LoginTracker, secLogger *security.Logger, authLimit gin.HandlerFunc) {
	handler := &AuthHandler{
		authUC:       authUC,
		loginTracker: loginTracker,
		secLogger:    secLogger,
	}

	// Public Routes
	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", authLimit, handler.Login)
		publicAuth.POST("/register", authLimit, handler.Register)
		publicAuth.POST("/refresh", handler.Refresh)
	}

	// Protected Routes
	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", handler.Logout)
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.GET("/profile", handler.GetProfile)
		protectedAuth.PUT("/profile", handler.UpdateProfile)
		protectedAuth.PATCH("/profile", handler.UpdateProfile)
		protectedAuth.POST("/change-password", handler.ChangePassword)
	}
}

type RegisterRequest struct {
	Username    string  `json:"username" binding:"omitempty,max=150,valid_username"`
	Email       string  `json:"email" binding:"omitempty,email"`
	Password    string  `json:"password"`
	Password2   string  `json:"password2"`
	UserType    string  `json:"user_type"`
	FirstName   string  `json:"first_name" binding:"omitempty,max=150,valid_name"`
	LastName    string  `json:"last_name" binding:"omitempty,max=150,valid_name"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,valid_phone"`
	Location    *string `json:"location" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type UpdateProfileRequest struct {
	Bio         *string      `json:"bio" binding:"omitempty,max=500"`
	DateOfBirth *domain.Date `json:"date_of_birth"`
}

// Register godoc
// @Summary      User Registration
// @Description  Register a youth or employer account and receive a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Password2:   req.Password2,
		Role:        domain.Role(req.UserType),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.secLogger.LogAccountEvent(c.Request.Context(), security.EventAccountRegistered, result.User.ID, middleware.RequestMeta(c))
	response.Success(c, http.StatusCreated, result.Message, result)
}

// Login godoc
// @Summary      User Login
// @Description  Authenticate with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	meta := middleware.RequestMeta(c)

	if req.Username != "" {
		blocked, err := h.loginTracker.IsBlocked(ctx, req.Username)
		if err != nil {
			logger.Log.Warn("login tracker unavailable", zap.Error(err))
		}
		if blocked {
			h.secLogger.LogLoginBlocked(ctx, req.Username, meta)
			c.Error(apperror.TooManyRequests("Too many failed login attempts. Please try again later."))
			return
		}
	}

	result, err := h.authUC.Login(ctx, req.Username, req.Password)
	if err != nil {
		if apperror.Is(err, apperror.TypeAuthentication) {
			h.secLogger.LogLoginFailed(ctx, req.Username, meta, "invalid_credentials")
			if _, trackErr := h.loginTracker.RecordFailedAttempt(ctx, req.Username, meta.IP); trackErr != nil {
				logger.Log.Warn("failed to record login attempt", zap.Error(trackErr))
			}
		}
		c.Error(err)
		return
	}

	h.loginTracker.ClearAttempts(ctx, req.Username)
	h.secLogger.LogAccountEvent(ctx, security.EventLoginSuccess, result.User.ID, meta)
	response.Success(c, http.StatusOK, result.Message, result)
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Exchange a refresh token for a new token pair. The old refresh token is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refresh  body      RefreshRequest  true  "Refresh Token"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.authUC.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", pair)
}

// Logout godoc
// @Summary      Logout
// @Description  Revoke the given refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        logout  body      LogoutRequest  true  "Refresh Token"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req LogoutRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authUC.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		c.Error(err)
		return
	}

	if req.RefreshToken != "" {
		h.secLogger.LogAccountEvent(c.Request.Context(), security.EventTokenRevoked, actor.AccountID(), middleware.RequestMeta(c))
	}
	response.Success(c, http.StatusOK, "Logout successful", nil)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	account, err := h.authUC.GetMe(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", account)
}

// GetProfile godoc
// @Summary      Get base profile
// @Tags         auth
// @Produce      json
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/profile [get]
// @Security     BearerAuth
func (h *AuthHandler) GetProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	profile, err := h.authUC.GetProfile(c.Request.Context(), actor)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile godoc
// @Summary      Update base profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateProfileRequest  true  "Profile fields"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/profile [put]
// @Security     BearerAuth
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.authUC.UpdateProfile(c.Request.Context(), actor, domain.UpdateProfileInput{
		Bio:         req.Bio,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Change the caller's password. All refresh tokens are revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        passwords  body      ChangePasswordRequest  true  "Old and new password"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/change-password [post]
// @Security     BearerAuth
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authUC.ChangePassword(c.Request.Context(), actor, req.OldPassword, req.NewPassword); err != nil {
		c.Error(err)
		return
	}

	h.secLogger.LogAccountEvent(c.Request.Context(), security.EventPasswordChanged, actor.AccountID(), middleware.RequestMeta(c))
	response.Success(c, http.StatusOK, "Password updated successfully", nil)
}
