package handlers

import (
	chatapp "devcollab/internal/chat/app"

	"github.com/gofiber/fiber/v2"
)

// MessageHandler HTTP surface of the message store
type MessageHandler struct {
	Messages chatapp.MessageUseCase
}

// NewMessageHandler create a new MessageHandler
func NewMessageHandler(messages chatapp.MessageUseCase) *MessageHandler {
	return &MessageHandler{Messages: messages}
}

// Send persist a message and fan it out to the chat room
// @Summary Send a message
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "chatId and content"
// @Success 200 {object} object "message view"
// @Failure 400 {object} map[string]string "request error"
// @Router /api/v1/messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	type request struct {
		ChatID  string `json:"chatId"`
		Content string `json:"content"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	msg, err := h.Messages.Send(c.Context(), req.ChatID, currentUser(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msg)
}

// ListForChat full message history of a chat, oldest first
// @Summary List chat messages
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param chatId path string true "chat id"
// @Success 200 {array} object "message views"
// @Router /api/v1/messages/{chatId} [get]
func (h *MessageHandler) ListForChat(c *fiber.Ctx) error {
	msgs, err := h.Messages.ListForChat(c.Context(), c.Params("chatId"), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msgs)
}

// MarkRead record a read receipt on one message
// @Summary Mark a message read
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param messageId path string true "message id"
// @Success 200 {object} map[string]string "read recorded"
// @Router /api/v1/messages/{messageId}/read [patch]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.Messages.MarkRead(c.Context(), c.Params("messageId"), currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "read recorded"})
}

// MarkAllRead record read receipts on every message of a chat
// @Summary Mark a whole chat read
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param chatId path string true "chat id"
// @Success 200 {object} map[string]int64 "number of updated messages"
// @Router /api/v1/messages/chat/{chatId}/read [patch]
func (h *MessageHandler) MarkAllRead(c *fiber.Ctx) error {
	updated, err := h.Messages.MarkAllRead(c.Context(), c.Params("chatId"), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}

// Delete remove a message the requester sent
// @Summary Delete a message
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param messageId path string true "message id"
// @Success 200 {object} map[string]string "delete success"
// @Router /api/v1/messages/{messageId} [delete]
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	if err := h.Messages.DeleteMessage(c.Context(), c.Params("messageId"), currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "message deleted"})
}
