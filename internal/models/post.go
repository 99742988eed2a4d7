package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect-app/server/internal/apperr"
)

const PostsColName = "posts"

type Like struct {
	UserID primitive.ObjectID `bson:"user" json:"user"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Avatar    string             `bson:"avatar" json:"avatar"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Post carries the author's name and avatar as snapshots taken at creation
// time; later changes to the user do not propagate back.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Avatar    string             `bson:"avatar" json:"avatar"`
	Text      string             `bson:"text" json:"text"`
	Likes     []Like             `bson:"likes" json:"likes"`
	Comments  []Comment          `bson:"comments" json:"comments"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *Post) (*Post, error)
	ListPosts(ctx context.Context) ([]*Post, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*Post, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	DeletePostsByUser(ctx context.Context, userID primitive.ObjectID) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) ([]Like, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]Like, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment Comment) ([]Comment, error)
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]Comment, error)
}

func (p *Post) BeforeCreate() {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

func (mdb *MongodbRepo) CreatePost(ctx context.Context, post *Post) (*Post, error) {
	post.BeforeCreate()

	_, err := mdb.GetCollection(PostsColName).InsertOne(ctx, post)
	if err != nil {
		return nil, apperr.Store("insert post", err)
	}
	return post, nil
}

func (mdb *MongodbRepo) ListPosts(ctx context.Context) ([]*Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := mdb.GetCollection(PostsColName).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Store("list posts", err)
	}
	defer cursor.Close(ctx)

	posts := []*Post{}
	for cursor.Next(ctx) {
		var post Post
		if err := cursor.Decode(&post); err != nil {
			return nil, apperr.Store("decode post", err)
		}
		posts = append(posts, &post)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperr.Store("list posts", err)
	}
	return posts, nil
}

func (mdb *MongodbRepo) GetPostByID(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	var post Post
	err := mdb.GetCollection(PostsColName).FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrPostNotFound
		}
		return nil, apperr.Store("find post", err)
	}
	return &post, nil
}

func (mdb *MongodbRepo) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	_, err := mdb.GetCollection(PostsColName).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Store("delete post", err)
	}
	return nil
}

func (mdb *MongodbRepo) DeletePostsByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := mdb.GetCollection(PostsColName).DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return apperr.Store("delete posts by user", err)
	}
	return nil
}

// AddLike prepends a like for userID. The not-yet-liked predicate is part of
// the update filter, so the check and the write are one atomic document
// operation and two concurrent likes cannot both succeed.
func (mdb *MongodbRepo) AddLike(ctx context.Context, postID, userID primitive.ObjectID) ([]Like, error) {
	filter := bson.M{
		"_id":        postID,
		"likes.user": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$push": bson.M{
			"likes": bson.M{
				"$each":     []Like{{UserID: userID}},
				"$position": 0,
			},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post Post
	err := mdb.GetCollection(PostsColName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == nil {
		return post.Likes, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Store("add like", err)
	}

	// Unmatched filter: either the post is gone or the like already exists.
	if _, err := mdb.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return nil, apperr.ErrAlreadyLiked
}

// RemoveLike pulls the user's like; like AddLike, the liked predicate lives
// in the filter so the removal is atomic.
func (mdb *MongodbRepo) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]Like, error) {
	filter := bson.M{
		"_id":        postID,
		"likes.user": userID,
	}
	update := bson.M{
		"$pull": bson.M{"likes": bson.M{"user": userID}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post Post
	err := mdb.GetCollection(PostsColName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == nil {
		return post.Likes, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.Store("remove like", err)
	}

	if _, err := mdb.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return nil, apperr.ErrNotLiked
}

func (mdb *MongodbRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment Comment) ([]Comment, error) {
	update := bson.M{
		"$push": bson.M{
			"comments": bson.M{
				"$each":     []Comment{comment},
				"$position": 0,
			},
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post Post
	err := mdb.GetCollection(PostsColName).FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrPostNotFound
		}
		return nil, apperr.Store("add comment", err)
	}
	return post.Comments, nil
}

func (mdb *MongodbRepo) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]Comment, error) {
	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post Post
	err := mdb.GetCollection(PostsColName).FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrPostNotFound
		}
		return nil, apperr.Store("remove comment", err)
	}
	return post.Comments, nil
}
