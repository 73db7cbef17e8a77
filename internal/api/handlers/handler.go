package handlers

import (
	"errors"
	"fmt"
	"strconv"

	errprocess "devcollab/pkg/err"
	"devcollab/pkg/logger"
	"devcollab/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
// @Summary Check service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "devcollab up!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("devcollab up!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging
// @Tags Shared
// @Param status query bool true "Debug status"
// @Success 200 {string} string "debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	status, err := strconv.ParseBool(c.Query("status"))
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	logger.Log.SetDebugMode(status)
	logger.Log.Info("debug mode updated", zap.Bool("status", status))
	return c.SendString(fmt.Sprintf("debug mode is : %t", status))
}

// respondError map a use-case error onto the HTTP taxonomy. Anything not
// wrapped in a sentinel is an internal error.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, errprocess.ErrBadRequest):
		status = fiber.StatusBadRequest
	case errors.Is(err, errprocess.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, errprocess.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, errprocess.ErrNotFound):
		status = fiber.StatusNotFound
	}
	if status == fiber.StatusInternalServerError {
		logger.Log.Error("internal error", zap.String("path", c.Path()), zap.String("err", err.Error()))
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// currentUser the authenticated user id set by the JWT middleware
func currentUser(c *fiber.Ctx) string {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)
	return userID
}
