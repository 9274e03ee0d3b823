package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	usermodel "tsismis-backend/internal/domains/user/model"
	"tsismis-backend/internal/domains/post/model"
	"tsismis-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresPostRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postgresPostRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (id, message, tags, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Message,
		pq.Array(post.Tags),
		post.AuthorID,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `
		SELECT id, message, tags, author_id, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	post := &model.Post{}
	var tags []string

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Message,
		pq.Array(&tags),
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.Tags = tags
	return post, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresPostRepository) Update(ctx context.Context, post *model.Post) error {
	// created_at is never touched after insert.
	query := `
		UPDATE posts
		SET message = $2, tags = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Message,
		pq.Array(post.Tags),
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

// =====================================================
// DELETE (CASCADES EDGES)
// =====================================================

func (r *postgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM edges WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete post edges: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrPostNotFound
		}
		return nil
	})
}

// =====================================================
// FEED PAGE FETCH
// =====================================================

func (r *postgresPostRepository) ListFeed(ctx context.Context, filter model.FeedFilter, limit int) ([]*model.Post, error) {
	sql := `
		SELECT
			p.id, p.message, p.tags, p.author_id, p.created_at, p.updated_at,
			u.id, u.username, u.display_name, u.description, u.created_at, u.updated_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
	`

	var clauses []string
	var args []any

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		clauses = append(clauses, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if filter.IDs != nil {
		args = append(args, filter.IDs)
		clauses = append(clauses, fmt.Sprintf("p.id = ANY($%d)", len(args)))
	}
	if filter.MessageContains != "" {
		args = append(args, filter.MessageContains)
		clauses = append(clauses, fmt.Sprintf("p.message ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Before != nil {
		args = append(args, *filter.Before)
		clauses = append(clauses, fmt.Sprintf("p.created_at < $%d", len(args)))
	}

	for i, clause := range clauses {
		if i == 0 {
			sql += " WHERE " + clause
		} else {
			sql += " AND " + clause
		}
	}

	args = append(args, limit)
	sql += fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post := &model.Post{Author: &usermodel.User{}}
		var tags []string

		err := rows.Scan(
			&post.ID,
			&post.Message,
			pq.Array(&tags),
			&post.AuthorID,
			&post.CreatedAt,
			&post.UpdatedAt,
			&post.Author.ID,
			&post.Author.Username,
			&post.Author.DisplayName,
			&post.Author.Description,
			&post.Author.CreatedAt,
			&post.Author.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}

		post.Tags = tags
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}
