package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect-app/server/internal/apperr"
	"github.com/devconnect-app/server/internal/helpers"
	"github.com/devconnect-app/server/internal/models"
)

type PostInput struct {
	Text string `json:"text" validate:"required"`
}

type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

// PostService owns post creation and the like/comment sub-resource
// mutations, enforcing the ownership rules: posts are deletable by their
// author, comments by their author, likes by any authenticated user once.
type PostService struct {
	postRepo models.PostRepo
	userRepo models.UserRepo
}

func NewPostService(postRepo models.PostRepo, userRepo models.UserRepo) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func parsePostID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(helpers.StringTrim(id))
	if err != nil {
		return primitive.NilObjectID, apperr.ErrPostNotFound
	}
	return oid, nil
}

// Create validates the text and snapshots the author's current name and
// avatar onto the post.
func (ps *PostService) Create(ctx context.Context, userID primitive.ObjectID, input PostInput) (*models.Post, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, helpers.ValidationError(err)
	}

	user, err := ps.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: userID,
		Name:   user.Name,
		Avatar: user.Avatar,
		Text:   input.Text,
	}
	return ps.postRepo.CreatePost(ctx, post)
}

func (ps *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return ps.postRepo.ListPosts(ctx)
}

func (ps *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	oid, err := parsePostID(id)
	if err != nil {
		return nil, err
	}
	return ps.postRepo.GetPostByID(ctx, oid)
}

// Delete removes a post, but only for its author.
func (ps *PostService) Delete(ctx context.Context, id string, actor primitive.ObjectID) error {
	oid, err := parsePostID(id)
	if err != nil {
		return err
	}

	post, err := ps.postRepo.GetPostByID(ctx, oid)
	if err != nil {
		return err
	}
	if post.UserID != actor {
		return apperr.ErrNotOwner
	}

	return ps.postRepo.DeletePost(ctx, oid)
}

func (ps *PostService) Like(ctx context.Context, id string, actor primitive.ObjectID) ([]models.Like, error) {
	oid, err := parsePostID(id)
	if err != nil {
		return nil, err
	}
	return ps.postRepo.AddLike(ctx, oid, actor)
}

func (ps *PostService) Unlike(ctx context.Context, id string, actor primitive.ObjectID) ([]models.Like, error) {
	oid, err := parsePostID(id)
	if err != nil {
		return nil, err
	}
	return ps.postRepo.RemoveLike(ctx, oid, actor)
}

// AddComment prepends a comment carrying the commenter's name/avatar
// snapshot.
func (ps *PostService) AddComment(ctx context.Context, id string, actor primitive.ObjectID, input CommentInput) ([]models.Comment, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, helpers.ValidationError(err)
	}

	oid, err := parsePostID(id)
	if err != nil {
		return nil, err
	}

	user, err := ps.userRepo.GetUserByID(ctx, actor)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    actor,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Text:      input.Text,
		CreatedAt: time.Now(),
	}
	return ps.postRepo.AddComment(ctx, oid, comment)
}

// DeleteComment removes a comment, but only for the comment's author; the
// post owner has no say over other users' comments.
func (ps *PostService) DeleteComment(ctx context.Context, postID, commentID string, actor primitive.ObjectID) ([]models.Comment, error) {
	pid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	post, err := ps.postRepo.GetPostByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	cid, err := primitive.ObjectIDFromHex(helpers.StringTrim(commentID))
	if err != nil {
		return nil, apperr.ErrCommentNotFound
	}

	var comment *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == cid {
			comment = &post.Comments[i]
			break
		}
	}
	if comment == nil {
		return nil, apperr.ErrCommentNotFound
	}
	if comment.UserID != actor {
		return nil, apperr.ErrNotOwner
	}

	return ps.postRepo.RemoveComment(ctx, pid, cid)
}
