package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	edgemodel "tsismis-backend/internal/domains/edge/model"
)

// aggregates holds the batch-computed maps for one edge kind.
// Missing post ids default to 0 / false at read time.
type aggregates struct {
	counts map[uuid.UUID]int
	flags  map[uuid.UUID]bool
}

// buildMaps computes per-post counts and per-post requester flags for
// one kind in exactly two store queries, however many ids are passed.
func (s *feedService) buildMaps(ctx context.Context, kind edgemodel.Kind, postIDs []uuid.UUID, requesterID uuid.UUID) (aggregates, error) {
	counts, err := s.edges.CountByPostIDs(ctx, kind, postIDs)
	if err != nil {
		return aggregates{}, fmt.Errorf("failed to count %s edges: %w", kind, err)
	}

	flags, err := s.edges.FlaggedByUser(ctx, kind, postIDs, requesterID)
	if err != nil {
		return aggregates{}, fmt.Errorf("failed to fetch requester %s edges: %w", kind, err)
	}

	return aggregates{counts: counts, flags: flags}, nil
}
