package model

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes the two structurally identical relation kinds.
// Like and favorite semantics stay separate end to end; nothing ever
// aggregates them together.
type Kind string

const (
	KindLike     Kind = "like"
	KindFavorite Kind = "favorite"
)

// Edge is a (post, user, kind) relationship record. At most one edge
// exists per (post, user, kind); the database enforces this with a
// unique index.
type Edge struct {
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
