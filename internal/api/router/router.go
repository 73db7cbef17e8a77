package router

import (
	"devcollab/internal/api/handlers"
	chatapp "devcollab/internal/chat/app"
	"devcollab/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes wire the REST surface and the websocket endpoint
// @title DevCollab API
// @version 1.0
// @description Developer collaboration backend: chats, messages, profiles, posts
// @host localhost:8080
// @BasePath /api/v1
func RegisterRoutes(app *fiber.App,
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	messageHandler *handlers.MessageHandler,
	socialHandler *handlers.SocialHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *chatapp.WSHandler,
) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// everything below requires a valid bearer token backed by a live session
	api.Use(middlewares.JWTMiddleware())
	api.Use(authHandler.RequireLiveSession)
	auth.Post("/logout", authHandler.Logout)
	api.Get("/users", authHandler.SearchUsers)

	chats := api.Group("/chats")
	chats.Post("/", chatHandler.AccessChat)
	chats.Get("/", chatHandler.ListChats)
	chats.Post("/group", chatHandler.CreateGroup)
	chats.Patch("/rename", chatHandler.RenameGroup)
	chats.Patch("/groupadd", chatHandler.AddToGroup)
	chats.Patch("/groupremove", chatHandler.RemoveFromGroup)
	chats.Delete("/:chatId", chatHandler.DeleteChat)

	messages := api.Group("/messages")
	messages.Post("/", messageHandler.Send)
	messages.Patch("/chat/:chatId/read", messageHandler.MarkAllRead)
	messages.Get("/:chatId", messageHandler.ListForChat)
	messages.Patch("/:messageId/read", messageHandler.MarkRead)
	messages.Delete("/:messageId", messageHandler.Delete)

	profiles := api.Group("/profiles")
	profiles.Get("/me", socialHandler.GetOwnProfile)
	profiles.Patch("/me", socialHandler.UpdateOwnProfile)
	profiles.Get("/:username", socialHandler.GetProfile)
	profiles.Post("/:username/follow", socialHandler.Follow)
	profiles.Delete("/:username/follow", socialHandler.Unfollow)
	profiles.Get("/:username/followers", socialHandler.Followers)
	profiles.Get("/:username/following", socialHandler.Following)

	posts := api.Group("/posts")
	posts.Post("/", socialHandler.CreatePost)
	posts.Get("/", socialHandler.Feed)
	// fixed segments register before the :postId wildcard
	posts.Get("/me", socialHandler.MyPosts)
	posts.Get("/user/:userId", socialHandler.PostsByUser)
	posts.Get("/:postId", socialHandler.GetPost)
	posts.Delete("/:postId", socialHandler.DeletePost)
	posts.Post("/:postId/like", socialHandler.TogglePostLike)
	posts.Post("/:postId/comments", socialHandler.AddComment)
	posts.Get("/:postId/comments", socialHandler.ListComments)

	comments := api.Group("/comments")
	comments.Patch("/:commentId", socialHandler.UpdateComment)
	comments.Delete("/:commentId", socialHandler.DeleteComment)
	comments.Post("/:commentId/like", socialHandler.ToggleCommentLike)

	api.Post("/media", mediaHandler.Upload)
	api.Get("/media/url", mediaHandler.ResolveURL)

	// websocket upgrade carries the JWT in the auth query parameter
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", middlewares.JWTMiddleware(), authHandler.RequireLiveSession, websocket.New(wsHandler.Serve))
}
