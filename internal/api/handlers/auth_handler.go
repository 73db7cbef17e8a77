package handlers

import (
	identityapp "devcollab/internal/identity/app"
	socialapp "devcollab/internal/social/app"
	"devcollab/pkg/logger"
	"devcollab/pkg/middlewares"
	"devcollab/pkg/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler HTTP surface of accounts and sessions
type AuthHandler struct {
	Identity identityapp.IdentityUseCase
	Profiles socialapp.ProfileUseCase
}

// NewAuthHandler create a new AuthHandler
func NewAuthHandler(identity identityapp.IdentityUseCase, profiles socialapp.ProfileUseCase) *AuthHandler {
	return &AuthHandler{Identity: identity, Profiles: profiles}
}

// Register create a new account
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object true "name, email, password"
// @Success 200 {object} map[string]string "register success"
// @Failure 400 {object} map[string]string "request error"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.Identity.Register(c.Context(), req.Name, req.Email, req.Password); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "register success"})
}

// Login exchange credentials for a bearer token
// @Summary User login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object true "email, password"
// @Success 200 {object} map[string]string "token"
// @Failure 401 {object} map[string]string "login failed"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	t, err := h.Identity.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	if info, perr := token.ParseJWT(t); perr == nil {
		if perr := h.Profiles.EnsureProfile(c.Context(), info.UserID, info.Name); perr != nil {
			logger.Log.Warn("ensure profile failed", zap.String("user_id", info.UserID), zap.String("err", perr.Error()))
		}
	}

	return c.JSON(fiber.Map{"token": t})
}

// Logout invalidate the current session
// @Summary User logout
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "logout success"
// @Failure 401 {object} map[string]string "unauthorized"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	bearer, err := token.StripBearer(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Identity.Logout(c.Context(), bearer); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "logout success"})
}

// RequireLiveSession rejects requests whose redis session has expired or was
// deleted by logout, even when the JWT itself is still valid.
func (h *AuthHandler) RequireLiveSession(c *fiber.Ctx) error {
	bearer := c.Query(middlewares.QueryToken)
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if b, err := token.StripBearer(header); err == nil {
			bearer = b
		}
	}

	expired, err := h.Identity.CheckSessionTimeout(c.Context(), bearer)
	if err != nil || expired {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "session expired"})
	}
	return c.Next()
}

// SearchUsers find users to start a chat with
// @Summary Search users by name or email
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Param search query string true "substring of name or email"
// @Success 200 {array} object "user summaries"
// @Router /api/v1/users [get]
func (h *AuthHandler) SearchUsers(c *fiber.Ctx) error {
	users, err := h.Identity.SearchUsers(c.Context(), c.Query("search"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}
