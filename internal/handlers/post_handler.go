package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect-app/server/internal/middleware"
	"github.com/devconnect-app/server/internal/models"
	"github.com/devconnect-app/server/internal/services"
)

func CreatePost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		var input services.PostInput
		if !bindJSON(c, &input) {
			return
		}

		post, err := ps.Create(c.Request.Context(), userID, input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

func ListPosts(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := ps.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

func GetPost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := ps.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// DeletePost removes a post for its author only.
func DeletePost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		if err := ps.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.Msg("Post is deleted"))
	}
}

func LikePost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		likes, err := ps.Like(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, likes)
	}
}

func UnlikePost(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		likes, err := ps.Unlike(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, likes)
	}
}

func AddComment(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		var input services.CommentInput
		if !bindJSON(c, &input) {
			return
		}

		comments, err := ps.AddComment(c.Request.Context(), c.Param("id"), userID, input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, comments)
	}
}

// DeleteComment removes a comment for the comment's author only.
func DeleteComment(ps *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.Msg("Unauthorized"))
			return
		}

		comments, err := ps.DeleteComment(c.Request.Context(), c.Param("postId"), c.Param("commentId"), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, comments)
	}
}
