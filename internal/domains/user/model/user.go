package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	Description  *string   `json:"description,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Stats are derived on read, never stored.
type Stats struct {
	Posts             int `json:"posts"`
	LikesReceived     int `json:"likes_received"`
	FavoritesReceived int `json:"favorites_received"`
}

// Profile is the externally visible user shape.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Description *string   `json:"description,omitempty"`
	Avatar      string    `json:"avatar"`
	CreatedAt   time.Time `json:"created_at"`

	Posts             int `json:"posts"`
	LikesReceived     int `json:"likes_received"`
	FavoritesReceived int `json:"favorites_received"`
}

// Summary is the lightweight shape used in listings (no counters).
type Summary struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Avatar      string    `json:"avatar"`
	CreatedAt   time.Time `json:"created_at"`
}

// SummaryPage is a cursor-paginated page of user summaries.
type SummaryPage struct {
	Users       []Summary `json:"users"`
	EndCursor   *string   `json:"end_cursor"`
	HasNextPage bool      `json:"has_next_page"`
}
