package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tsismis-backend/internal/domains/edge/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresEdgeRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresEdgeRepository(pool *pgxpool.Pool) EdgeRepository {
	return &postgresEdgeRepository{pool: pool}
}

// =====================================================
// CREATE / DELETE
// =====================================================

func (r *postgresEdgeRepository) Create(ctx context.Context, edge *model.Edge) error {
	query := `
		INSERT INTO edges (post_id, user_id, kind, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		edge.PostID,
		edge.UserID,
		edge.Kind,
		edge.CreatedAt,
	)
	if err != nil {
		// Unique violation on (post_id, user_id, kind)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create edge: %w", err)
	}

	return nil
}

func (r *postgresEdgeRepository) Delete(ctx context.Context, postID, userID uuid.UUID, kind model.Kind) error {
	query := `DELETE FROM edges WHERE post_id = $1 AND user_id = $2 AND kind = $3`

	result, err := r.pool.Exec(ctx, query, postID, userID, kind)
	if err != nil {
		return fmt.Errorf("failed to delete edge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrEdgeNotFound
	}

	return nil
}

// =====================================================
// AGGREGATION QUERIES
// =====================================================

// CountByPostIDs is one grouped count for the whole id set.
func (r *postgresEdgeRepository) CountByPostIDs(ctx context.Context, kind model.Kind, postIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT post_id, COUNT(*)
		FROM edges
		WHERE kind = $1 AND post_id = ANY($2)
		GROUP BY post_id
	`

	rows, err := r.pool.Query(ctx, query, kind, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID uuid.UUID
		var count int
		if err := rows.Scan(&postID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan edge count: %w", err)
		}
		counts[postID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate edge counts: %w", err)
	}

	return counts, nil
}

// FlaggedByUser is one filtered fetch for the whole id set.
func (r *postgresEdgeRepository) FlaggedByUser(ctx context.Context, kind model.Kind, postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	flags := make(map[uuid.UUID]bool, len(postIDs))
	if len(postIDs) == 0 {
		return flags, nil
	}

	query := `
		SELECT post_id
		FROM edges
		WHERE kind = $1 AND post_id = ANY($2) AND user_id = $3
	`

	rows, err := r.pool.Query(ctx, query, kind, postIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID uuid.UUID
		if err := rows.Scan(&postID); err != nil {
			return nil, fmt.Errorf("failed to scan user edge: %w", err)
		}
		flags[postID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user edges: %w", err)
	}

	return flags, nil
}

func (r *postgresEdgeRepository) ListPostIDsByUser(ctx context.Context, kind model.Kind, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT post_id FROM edges WHERE kind = $1 AND user_id = $2`

	rows, err := r.pool.Query(ctx, query, kind, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user edges: %w", err)
	}
	defer rows.Close()

	var postIDs []uuid.UUID
	for rows.Next() {
		var postID uuid.UUID
		if err := rows.Scan(&postID); err != nil {
			return nil, fmt.Errorf("failed to scan post id: %w", err)
		}
		postIDs = append(postIDs, postID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate post ids: %w", err)
	}

	return postIDs, nil
}
