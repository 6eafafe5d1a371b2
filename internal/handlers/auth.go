package handlers

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/auth"
	"github.com/shelvit/backend/internal/middleware"
	"github.com/shelvit/backend/internal/models"
	"github.com/shelvit/backend/internal/repositories"
)

// AuthHandler handles signup, login and the token lifecycle endpoints
type AuthHandler struct {
	users  repositories.UserRepository
	tokens *auth.TokenService
	ledger repositories.TokenRepository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users repositories.UserRepository, tokens *auth.TokenService, ledger repositories.TokenRepository) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, ledger: ledger}
}

type authResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	auth.TokenPair
}

// Signup creates an account and issues its first token pair
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.SchemaValidation
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.SchemaValidation
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := h.users.CreateUser(c.Request().Context(), user); err != nil {
		return err
	}

	pair, err := h.tokens.IssuePair(c.Request().Context(), user.ID.Hex())
	if err != nil {
		return err
	}
	return respond(c, authResponse{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		Email:     user.Email,
		TokenPair: *pair,
	}, "Successfully signed up")
}

// Login checks the password and issues a token pair
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.SchemaValidation
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.SchemaValidation
	}

	user, err := h.users.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return apperrors.Unauthorized
	}

	pair, err := h.tokens.IssuePair(c.Request().Context(), user.ID.Hex())
	if err != nil {
		return err
	}
	return respond(c, authResponse{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		Email:     user.Email,
		TokenPair: *pair,
	}, "Successfully logged in")
}

// Refresh mints a new access token against a valid refresh token
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims := middleware.Claims(c)
	if claims == nil || claims.Subject == "" {
		return apperrors.BadToken
	}

	token, err := h.tokens.IssueAccess(c.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return respond(c, map[string]string{"access_token": token}, "Token refreshed.")
}

// Logout revokes the presented access token
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := middleware.Claims(c)
	if err := h.ledger.Revoke(c.Request().Context(), claims.ID, claims.Subject); err != nil {
		return err
	}
	return respond(c, nil, "Access token has been revoked")
}

// RevokeRefresh revokes the presented refresh token
func (h *AuthHandler) RevokeRefresh(c echo.Context) error {
	claims := middleware.Claims(c)
	if err := h.ledger.Revoke(c.Request().Context(), claims.ID, claims.Subject); err != nil {
		return err
	}
	return respond(c, nil, "Refresh token has been revoked")
}
