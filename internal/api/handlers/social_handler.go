package handlers

import (
	socialapp "devcollab/internal/social/app"
	"devcollab/internal/social/domain"

	"github.com/gofiber/fiber/v2"
)

// SocialHandler HTTP surface of profiles, posts and comments
type SocialHandler struct {
	Profiles socialapp.ProfileUseCase
	Posts    socialapp.PostUseCase
}

// NewSocialHandler create a new SocialHandler
func NewSocialHandler(profiles socialapp.ProfileUseCase, posts socialapp.PostUseCase) *SocialHandler {
	return &SocialHandler{Profiles: profiles, Posts: posts}
}

// GetOwnProfile the requester's profile
// @Summary Get my profile
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object "profile view"
// @Router /api/v1/profiles/me [get]
func (h *SocialHandler) GetOwnProfile(c *fiber.Ctx) error {
	profile, err := h.Profiles.GetOwnProfile(c.Context(), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateOwnProfile change fields on the requester's profile
// @Summary Update my profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "profile fields to change"
// @Success 200 {object} object "profile view"
// @Router /api/v1/profiles/me [patch]
func (h *SocialHandler) UpdateOwnProfile(c *fiber.Ctx) error {
	var update domain.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	profile, err := h.Profiles.UpdateProfile(c.Context(), currentUser(c), &update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetProfile a profile by username
// @Summary Get a profile
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param username path string true "username"
// @Success 200 {object} object "profile view"
// @Router /api/v1/profiles/{username} [get]
func (h *SocialHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.Profiles.GetProfile(c.Context(), c.Params("username"), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// Follow follow a user
// @Summary Follow a user
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param username path string true "username"
// @Success 200 {object} map[string]string "follow recorded"
// @Router /api/v1/profiles/{username}/follow [post]
func (h *SocialHandler) Follow(c *fiber.Ctx) error {
	if err := h.Profiles.Follow(c.Context(), c.Params("username"), currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "follow recorded"})
}

// Unfollow stop following a user
// @Summary Unfollow a user
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param username path string true "username"
// @Success 200 {object} map[string]string "unfollow recorded"
// @Router /api/v1/profiles/{username}/follow [delete]
func (h *SocialHandler) Unfollow(c *fiber.Ctx) error {
	if err := h.Profiles.Unfollow(c.Context(), c.Params("username"), currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "unfollow recorded"})
}

// Followers list a user's followers
// @Summary List followers
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param username path string true "username"
// @Success 200 {object} object "follow listing"
// @Router /api/v1/profiles/{username}/followers [get]
func (h *SocialHandler) Followers(c *fiber.Ctx) error {
	listing, err := h.Profiles.Followers(c.Context(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// Following list who a user follows
// @Summary List following
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Param username path string true "username"
// @Success 200 {object} object "follow listing"
// @Router /api/v1/profiles/{username}/following [get]
func (h *SocialHandler) Following(c *fiber.Ctx) error {
	listing, err := h.Profiles.Following(c.Context(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// CreatePost publish a post
// @Summary Create a post
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "content, visibility, media refs"
// @Success 200 {object} object "post view"
// @Failure 400 {object} map[string]string "request error"
// @Router /api/v1/posts [post]
func (h *SocialHandler) CreatePost(c *fiber.Ctx) error {
	type request struct {
		Content    string            `json:"content"`
		Visibility string            `json:"visibility"`
		Media      []domain.MediaRef `json:"media"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	post, err := h.Posts.CreatePost(c.Context(), currentUser(c), req.Content, req.Visibility, req.Media)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// Feed the public feed, newest first
// @Summary Public feed
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "page, starting at 1"
// @Param limit query int false "page size"
// @Success 200 {array} object "post views"
// @Router /api/v1/posts [get]
func (h *SocialHandler) Feed(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 0))

	posts, err := h.Posts.Feed(c.Context(), currentUser(c), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// MyPosts the requester's own posts, private ones included
// @Summary List my posts
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} object "post views"
// @Router /api/v1/posts/me [get]
func (h *SocialHandler) MyPosts(c *fiber.Ctx) error {
	userID := currentUser(c)
	posts, err := h.Posts.PostsByAuthor(c.Context(), userID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// PostsByUser a user's posts, private ones filtered for other viewers
// @Summary List a user's posts
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param userId path string true "author user id"
// @Success 200 {array} object "post views"
// @Router /api/v1/posts/user/{userId} [get]
func (h *SocialHandler) PostsByUser(c *fiber.Ctx) error {
	posts, err := h.Posts.PostsByAuthor(c.Context(), c.Params("userId"), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost one post
// @Summary Get a post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param postId path string true "post id"
// @Success 200 {object} object "post view"
// @Router /api/v1/posts/{postId} [get]
func (h *SocialHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.Posts.GetPost(c.Context(), c.Params("postId"), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost delete a post the requester authored
// @Summary Delete a post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param postId path string true "post id"
// @Success 200 {object} map[string]string "delete success"
// @Router /api/v1/posts/{postId} [delete]
func (h *SocialHandler) DeletePost(c *fiber.Ctx) error {
	if err := h.Posts.DeletePost(c.Context(), c.Params("postId"), currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "post deleted"})
}

// TogglePostLike flip the requester's like on a post
// @Summary Like or unlike a post
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param postId path string true "post id"
// @Success 200 {object} map[string]bool "resulting liked state"
// @Router /api/v1/posts/{postId}/like [post]
func (h *SocialHandler) TogglePostLike(c *fiber.Ctx) error {
	liked, err := h.Posts.ToggleLike(c.Context(), c.Params("postId"), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// AddComment comment on a post
// @Summary Comment on a post
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path string true "post id"
// @Param request body object true "content"
// @Success 200 {object} object "comment view"
// @Router /api/v1/posts/{postId}/comments [post]
func (h *SocialHandler) AddComment(c *fiber.Ctx) error {
	type request struct {
		Content string `json:"content"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	comment, err := h.Posts.AddComment(c.Context(), c.Params("postId"), currentUser(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// ListComments comments on a post, oldest first
// @Summary List post comments
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param postId path string true "post id"
// @Success 200 {array} object "comment views"
// @Router /api/v1/posts/{postId}/comments [get]
func (h *SocialHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.Posts.ListComments(c.Context(), c.Params("postId"), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// UpdateComment edit a comment the requester authored
// @Summary Edit a comment
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "comment id"
// @Param request body object true "content"
// @Success 200 {object} object "comment view"
// @Router /api/v1/comments/{commentId} [patch]
func (h *SocialHandler) UpdateComment(c *fiber.Ctx) error {
	type request struct {
		Content string `json:"content"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	comment, err := h.Posts.UpdateComment(c.Context(), c.Params("commentId"), currentUser(c), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment delete a comment the requester authored
// @Summary Delete a comment
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "comment id"
// @Success 200 {object} map[string]string "delete success"
// @Router /api/v1/comments/{commentId} [delete]
func (h *SocialHandler) DeleteComment(c *fiber.Ctx) error {
	if err := h.Posts.DeleteComment(c.Context(), c.Params("commentId"), currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "comment deleted"})
}

// ToggleCommentLike flip the requester's like on a comment
// @Summary Like or unlike a comment
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "comment id"
// @Success 200 {object} map[string]bool "resulting liked state"
// @Router /api/v1/comments/{commentId}/like [post]
func (h *SocialHandler) ToggleCommentLike(c *fiber.Ctx) error {
	liked, err := h.Posts.ToggleCommentLike(c.Context(), c.Params("commentId"), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}
