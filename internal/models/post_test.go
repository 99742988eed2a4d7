package models

import (
	"testing"
)

func TestPostBeforeCreateDefaults(t *testing.T) {
	post := &Post{Text: "Hello world"}
	post.BeforeCreate()

	if post.ID.IsZero() {
		t.Error("ID was not assigned")
	}
	if post.CreatedAt.IsZero() {
		t.Error("CreatedAt was not assigned")
	}
	if post.Likes == nil || len(post.Likes) != 0 {
		t.Errorf("Likes should initialize empty, got %v", post.Likes)
	}
	if post.Comments == nil || len(post.Comments) != 0 {
		t.Errorf("Comments should initialize empty, got %v", post.Comments)
	}
}

func TestPostBeforeCreateKeepsExisting(t *testing.T) {
	post := &Post{Text: "Hello world"}
	post.BeforeCreate()

	id := post.ID
	created := post.CreatedAt

	post.BeforeCreate()

	if post.ID != id {
		t.Error("ID was regenerated")
	}
	if !post.CreatedAt.Equal(created) {
		t.Error("CreatedAt was regenerated")
	}
}
