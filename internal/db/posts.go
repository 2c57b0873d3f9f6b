package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreatePost appends a post to the feed. Posts are never edited or deleted.
func (db *DB) CreatePost(ctx context.Context, p *Post) (*Post, error) {
	var out Post
	err := db.pool.QueryRow(ctx,
		`INSERT INTO posts (user_id, post_content, tags, funding_stage, location)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, post_content, tags, funding_stage, location, created_at`,
		p.UserID, p.PostContent, p.Tags, p.FundingStage, p.Location,
	).Scan(&out.ID, &out.UserID, &out.PostContent, &out.Tags, &out.FundingStage, &out.Location, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &out, nil
}

// listPostsQuery builds the feed query. The limit is always the last bind
// parameter, never interpolated into the SQL text.
func listPostsQuery(filterByUser bool) string {
	query := `SELECT id, user_id, post_content, tags, funding_stage, location, created_at
	          FROM posts`
	if filterByUser {
		return query + ` WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	}
	return query + ` ORDER BY created_at DESC LIMIT $1`
}

// ListPosts returns the feed, newest first. A non-nil userID filters to one
// author's posts.
func (db *DB) ListPosts(ctx context.Context, userID *uuid.UUID, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 50
	}

	args := []any{}
	if userID != nil {
		args = append(args, *userID)
	}
	args = append(args, limit)

	rows, err := db.pool.Query(ctx, listPostsQuery(userID != nil), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.PostContent, &p.Tags, &p.FundingStage, &p.Location, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read post rows: %w", err)
	}
	return posts, nil
}
