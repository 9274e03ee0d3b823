package repository

import (
	"context"

	"github.com/google/uuid"

	"tsismis-backend/internal/domains/edge/model"
)

// EdgeRepository is the data access contract for like/favorite edges.
//
// CountByPostIDs and FlaggedByUser are each a single grouped/filtered
// query no matter how many post ids are passed; the feed aggregation
// stage depends on that to stay at two queries per kind per page.
type EdgeRepository interface {
	// Create inserts an edge. Returns model.ErrAlreadyExists when the
	// (post, user, kind) edge is already present.
	Create(ctx context.Context, edge *model.Edge) error

	// Delete removes an edge. Returns model.ErrEdgeNotFound when no
	// such edge exists.
	Delete(ctx context.Context, postID, userID uuid.UUID, kind model.Kind) error

	// CountByPostIDs returns edge counts per post id for one kind.
	// Ids with no edges are simply absent from the map.
	CountByPostIDs(ctx context.Context, kind model.Kind, postIDs []uuid.UUID) (map[uuid.UUID]int, error)

	// FlaggedByUser returns which of the given posts carry an edge of
	// the given kind from userID. Absent ids mean false.
	FlaggedByUser(ctx context.Context, kind model.Kind, postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]bool, error)

	// ListPostIDsByUser returns every post id the user has edged with
	// the given kind (first phase of the favorited feed).
	ListPostIDsByUser(ctx context.Context, kind model.Kind, userID uuid.UUID) ([]uuid.UUID, error)
}
