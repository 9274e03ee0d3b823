package model

import (
	"time"

	"github.com/google/uuid"
)

// Author is the resolved post author inside a feed item.
type Author struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Username    string    `json:"username"`
	Avatar      string    `json:"avatar"`
}

// FeedItem is the denormalized, externally visible feed shape: one post
// merged with its author and the batch-aggregated like/favorite values.
type FeedItem struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	Author    Author    `json:"author"`

	Likes        int  `json:"likes"`
	HasLiked     bool `json:"has_liked"`
	Favorites    int  `json:"favorites"`
	HasFavorited bool `json:"has_favorited"`
}

// Page is one cursor-bounded slice of a feed.
// EndCursor is nil when the page is empty.
type Page struct {
	Items       []FeedItem `json:"items"`
	EndCursor   *string    `json:"end_cursor"`
	HasNextPage bool       `json:"has_next_page"`
}
