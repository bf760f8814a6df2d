// Package domain holds post types and the contracts around them
package domain

import (
	"time"

	"chirp/internal/core/author"
)

// Post is one stored micro post
type Post struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
}

// AuthorView is the public author shape attached to a post
type AuthorView = author.View

// EnrichedPost pairs a post with its author
type EnrichedPost struct {
	Post   Post       `json:"post"`
	Author AuthorView `json:"author"`
}
