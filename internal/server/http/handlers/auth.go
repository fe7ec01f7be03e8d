// Package handlers implements the HTTP endpoints of the Credential Store.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/lifemgmt/internal/common"
	"github.com/dmitrijs2005/lifemgmt/internal/logging"
	"github.com/dmitrijs2005/lifemgmt/internal/server/http/middleware"
	"github.com/dmitrijs2005/lifemgmt/internal/server/http/presenter"
	"github.com/dmitrijs2005/lifemgmt/internal/server/models"
	"github.com/dmitrijs2005/lifemgmt/internal/server/services"
	"github.com/dmitrijs2005/lifemgmt/internal/validate"
	"github.com/gofiber/fiber/v2"
)

// Messages returned by the auth endpoints.
const (
	MsgInvalidPayload     = "Invalid JSON payload"
	MsgEmailTaken         = "Email already registered"
	MsgInvalidCredentials = "Invalid email or password"
	MsgLoggedOut          = "Logged out successfully"
	MsgResetSent          = "If an account with that email exists, a password reset link has been sent"
	MsgPasswordReset      = "Password has been reset successfully"
	MsgInvalidResetToken  = "Invalid or expired reset token"
	MsgInternal           = "Internal server error"
)

// UserService is the account logic behind the auth endpoints.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) error
}

type AuthHandler struct {
	users  UserService
	logger logging.Logger
}

func NewAuthHandler(users UserService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger.With("handler", "auth")}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, MsgInvalidPayload)
	}
	if errs := validate.Registration(req.FirstName, req.LastName, req.Email, req.Password); !errs.Empty() {
		return presenter.Error(c, http.StatusBadRequest, errs.Error())
	}

	res, err := h.users.Register(c.UserContext(), services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return presenter.Error(c, http.StatusConflict, MsgEmailTaken)
		}
		return h.internal(c, "register", err)
	}

	h.logger.Info(c.UserContext(), "user registered", "user_id", res.User.ID)
	return presenter.JSON(c, http.StatusCreated, presenter.AuthResponse{User: presenter.NewUser(res.User), Token: res.Token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, MsgInvalidPayload)
	}
	if errs := validate.Login(req.Email, req.Password); !errs.Empty() {
		return presenter.Error(c, http.StatusBadRequest, errs.Error())
	}

	res, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return presenter.Error(c, http.StatusUnauthorized, MsgInvalidCredentials)
		}
		return h.internal(c, "login", err)
	}

	return presenter.JSON(c, http.StatusOK, presenter.AuthResponse{User: presenter.NewUser(res.User), Token: res.Token})
}

// Logout handles POST /auth/logout. Requires the auth middleware.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.users.Logout(c.UserContext(), middleware.CurrentSessionID(c)); err != nil {
		return h.internal(c, "logout", err)
	}
	return presenter.Message(c, http.StatusOK, MsgLoggedOut)
}

// Me handles GET /auth/me. Requires the auth middleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, presenter.NewUser(currentUser(c)))
}

// Verify handles GET /auth/verify. Reaching it means the token is valid.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"valid": true,
		"user":  presenter.NewUser(currentUser(c)),
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /auth/forgot-password. The answer does not
// reveal whether the e-mail is registered. Mail delivery is out of scope,
// so the token is logged.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, MsgInvalidPayload)
	}
	if !validate.Email(req.Email) {
		return presenter.Error(c, http.StatusBadRequest, "Please enter a valid email")
	}

	token, err := h.users.ForgotPassword(c.UserContext(), req.Email)
	if err != nil {
		return h.internal(c, "forgot password", err)
	}
	if token != "" {
		h.logger.Info(c.UserContext(), "password reset requested", "email", services.NormalizeEmail(req.Email), "reset_token", token)
	}

	return presenter.Message(c, http.StatusOK, MsgResetSent)
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, MsgInvalidPayload)
	}
	var errs validate.Errors
	errs.Check(validate.Required(req.Token), "Reset token is required")
	errs.Check(validate.Password(req.Password), "Password must be at least 8 characters and contain a letter and a number")
	if !errs.Empty() {
		return presenter.Error(c, http.StatusBadRequest, errs.Error())
	}

	err := h.users.ResetPassword(c.UserContext(), req.Token, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrResetTokenExpired) {
			return presenter.Error(c, http.StatusBadRequest, MsgInvalidResetToken)
		}
		return h.internal(c, "reset password", err)
	}

	return presenter.Message(c, http.StatusOK, MsgPasswordReset)
}

func (h *AuthHandler) internal(c *fiber.Ctx, op string, err error) error {
	h.logger.Error(c.UserContext(), op+" failed", "error", err)
	return presenter.Error(c, http.StatusInternalServerError, MsgInternal)
}

func currentUser(c *fiber.Ctx) *models.User {
	if u := middleware.CurrentUser(c); u != nil {
		return u
	}
	return &models.User{}
}
