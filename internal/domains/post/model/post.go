package model

import (
	"time"

	"github.com/google/uuid"

	usermodel "tsismis-backend/internal/domains/user/model"
)

// Post is a short message with tags. AuthorID is a weak reference to a
// user; Author is populated by read-side joins, never embedded at write
// time.
type Post struct {
	ID       uuid.UUID `json:"id"`
	Message  string    `json:"message"`
	Tags     []string  `json:"tags"`
	AuthorID uuid.UUID `json:"author_id"`

	// Resolved on feed reads only.
	Author *usermodel.User `json:"-"`

	// CreatedAt is immutable after creation; UpdatedAt >= CreatedAt.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedFilter is the base filter a feed operation builds before
// pagination narrows it by cursor. Zero value means the global feed.
type FeedFilter struct {
	// AuthorID restricts to a single author when set.
	AuthorID *uuid.UUID

	// IDs restricts to an explicit post id set (favorited feed).
	IDs []uuid.UUID

	// MessageContains matches the message case-insensitively.
	MessageContains string

	// Before keeps only posts created strictly before this instant.
	// Set from the page cursor, not by callers.
	Before *time.Time
}
