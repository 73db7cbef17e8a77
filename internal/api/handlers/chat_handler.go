package handlers

import (
	chatapp "devcollab/internal/chat/app"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler HTTP surface of the chat directory
type ChatHandler struct {
	Chats chatapp.ChatUseCase
}

// NewChatHandler create a new ChatHandler
func NewChatHandler(chats chatapp.ChatUseCase) *ChatHandler {
	return &ChatHandler{Chats: chats}
}

// AccessChat open or create the 1:1 chat with another user
// @Summary Open a direct chat
// @Tags Chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "userId of the other participant"
// @Success 200 {object} object "chat view"
// @Failure 400 {object} map[string]string "request error"
// @Router /api/v1/chats [post]
func (h *ChatHandler) AccessChat(c *fiber.Ctx) error {
	type request struct {
		UserID string `json:"userId"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	chat, err := h.Chats.AccessChat(c.Context(), currentUser(c), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(chat)
}

// ListChats list the requester's chats, most recently active first
// @Summary List my chats
// @Tags Chats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} object "chat views"
// @Router /api/v1/chats [get]
func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	chats, err := h.Chats.ListChats(c.Context(), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(chats)
}

// CreateGroup create a named group chat
// @Summary Create a group chat
// @Tags Chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "chatName and member user ids"
// @Success 200 {object} object "chat view"
// @Failure 400 {object} map[string]string "request error"
// @Router /api/v1/chats/group [post]
func (h *ChatHandler) CreateGroup(c *fiber.Ctx) error {
	type request struct {
		ChatName string   `json:"chatName"`
		Users    []string `json:"users"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	chat, err := h.Chats.CreateGroupChat(c.Context(), currentUser(c), req.ChatName, req.Users)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(chat)
}

// RenameGroup rename a group chat
// @Summary Rename a group chat
// @Tags Chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "chatId and chatName"
// @Success 200 {object} object "chat view"
// @Router /api/v1/chats/rename [patch]
func (h *ChatHandler) RenameGroup(c *fiber.Ctx) error {
	type request struct {
		ChatID   string `json:"chatId"`
		ChatName string `json:"chatName"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	chat, err := h.Chats.RenameGroup(c.Context(), req.ChatID, currentUser(c), req.ChatName)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(chat)
}

// AddToGroup add a user to a group chat
// @Summary Add a group member
// @Tags Chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "chatId and userId"
// @Success 200 {object} object "chat view"
// @Router /api/v1/chats/groupadd [patch]
func (h *ChatHandler) AddToGroup(c *fiber.Ctx) error {
	type request struct {
		ChatID string `json:"chatId"`
		UserID string `json:"userId"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	chat, err := h.Chats.AddMember(c.Context(), req.ChatID, currentUser(c), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(chat)
}

// RemoveFromGroup remove a user from a group chat
// @Summary Remove a group member
// @Tags Chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "chatId and userId"
// @Success 200 {object} object "chat view"
// @Router /api/v1/chats/groupremove [patch]
func (h *ChatHandler) RemoveFromGroup(c *fiber.Ctx) error {
	type request struct {
		ChatID string `json:"chatId"`
		UserID string `json:"userId"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	chat, err := h.Chats.RemoveMember(c.Context(), req.ChatID, currentUser(c), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(chat)
}

// DeleteChat delete a chat and all its messages
// @Summary Delete a chat
// @Tags Chats
// @Produce json
// @Security BearerAuth
// @Param chatId path string true "chat id"
// @Success 200 {object} map[string]string "delete success"
// @Router /api/v1/chats/{chatId} [delete]
func (h *ChatHandler) DeleteChat(c *fiber.Ctx) error {
	if err := h.Chats.DeleteChat(c.Context(), c.Params("chatId"), currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "chat deleted"})
}
