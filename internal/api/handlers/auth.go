package handlers

import (
	"net/http"
	"time"

	"github.com/festhub/eventhub/internal/api/dto"
	"github.com/festhub/eventhub/internal/api/middleware"
	"github.com/festhub/eventhub/internal/auth"
	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/domain/user"
	"github.com/festhub/eventhub/internal/pkg/errors"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/utils"
	"github.com/festhub/eventhub/internal/pkg/validator"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService user.Service
	issuer      *auth.Issuer
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userService user.Service,
	issuer *auth.Issuer,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		issuer:      issuer,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Register handles user registration
// @Summary User registration
// @Description Register a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "User successfully registered"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "")
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		respondError(w, r, errors.ValidationError("Validation failed", validationErrs), "")
		return
	}

	newUser, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(w, r, err, "Failed to create user")
		return
	}

	tokens, err := h.startSession(w, newUser)
	if err != nil {
		respondError(w, r, err, "Failed to generate tokens")
		return
	}

	if middleware.IsLegacy(r) {
		utils.WriteJSON(w, http.StatusOK, dto.ToUserDTO(newUser))
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         dto.ToUserDTO(newUser),
	})
}

// Login handles user login
// @Summary User login
// @Description Authenticate user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid password"
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, "")
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		respondError(w, r, errors.ValidationError("Validation failed", validationErrs), "")
		return
	}

	authenticatedUser, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		respondError(w, r, err, "Failed to authenticate")
		return
	}

	tokens, err := h.startSession(w, authenticatedUser)
	if err != nil {
		respondError(w, r, err, "Failed to generate token")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": authenticatedUser.ID,
	}).Info("User logged in")

	if middleware.IsLegacy(r) {
		utils.WriteJSON(w, http.StatusOK, dto.ToUserDTO(authenticatedUser))
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         dto.ToUserDTO(authenticatedUser),
	})
}

// Profile returns the user behind the session token. Legacy clients get
// JSON null when there is no session.
// @Summary Current user
// @Description Get the user for the session cookie or bearer token
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO "User information"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		if middleware.IsLegacy(r) {
			utils.WriteJSON(w, http.StatusOK, nil)
			return
		}
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to get user")
		return
	}

	respond(w, r, http.StatusOK, dto.ToUserDTO(u))
}

// Logout clears the session cookies
// @Summary User logout
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie, middleware.LegacyTokenCookie} {
		h.setCookie(w, name, "", -1)
	}

	if middleware.IsLegacy(r) {
		utils.WriteJSON(w, http.StatusOK, true)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out successfully", nil)
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Exchange a refresh token from the body or the refreshToken cookie for a new pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "Refresh token"
// @Success 200 {object} dto.AuthResponse "New tokens generated"
// @Failure 401 {object} utils.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err, "")
			return
		}
	}
	if req.RefreshToken == "" {
		if cookie, err := r.Cookie(middleware.RefreshTokenCookie); err == nil {
			req.RefreshToken = cookie.Value
		}
	}
	if req.RefreshToken == "" {
		utils.WriteError(w, errors.Unauthorized("Missing refresh token"))
		return
	}

	claims, err := h.issuer.ParseRefresh(req.RefreshToken)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid refresh token"))
		return
	}

	u, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to get user for refresh")
		utils.WriteError(w, errors.Unauthorized("Invalid refresh token"))
		return
	}

	tokens, err := h.startSession(w, u)
	if err != nil {
		respondError(w, r, err, "Failed to generate tokens")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         dto.ToUserDTO(u),
	})
}

// startSession mints a token pair for u and sets the session cookies
func (h *AuthHandler) startSession(w http.ResponseWriter, u *user.User) (auth.TokenPair, error) {
	tokens, err := h.issuer.Mint(auth.Identity{UserID: u.ID, Email: u.Email, Name: u.Name})
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate tokens")
		return auth.TokenPair{}, errors.Internal("Failed to generate token", err)
	}

	h.setCookie(w, middleware.AccessTokenCookie, tokens.AccessToken, h.issuer.AccessTTL())
	h.setCookie(w, middleware.RefreshTokenCookie, tokens.RefreshToken, h.issuer.RefreshTTL())
	return tokens, nil
}

// setCookie writes a session cookie; a negative ttl deletes it
func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   maxAge,
	})
}
