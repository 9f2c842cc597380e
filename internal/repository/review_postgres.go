package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/demyanov-realty/review-bot/internal/entity"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewRepository defines the persistence surface for completed reviews.
// Append-only: there is no update or delete path.
type ReviewRepository interface {
	Append(ctx context.Context, review *entity.Review) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Review, error)
}

var _ ReviewRepository = &ReviewPostgres{}

// ReviewPostgres implements ReviewRepository using PostgreSQL
type ReviewPostgres struct {
	db *pgxpool.Pool
}

func NewReviewPostgres(db *pgxpool.Pool) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

// Append inserts one review row. The write is attempted exactly once;
// retrying on failure is the caller's decision.
func (r *ReviewPostgres) Append(ctx context.Context, review *entity.Review) error {
	likesJSON, err := json.Marshal(review.Likes)
	if err != nil {
		return fmt.Errorf("marshal likes: %w", err)
	}

	comment := pgtype.Text{String: review.Comment, Valid: review.Comment != ""}

	row := r.db.QueryRow(ctx, `
		INSERT INTO reviews (user_id, user_name, gender, service, likes, recommendation, comment, generated_review, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		review.UserID,
		review.UserName,
		string(review.Gender),
		review.Service,
		likesJSON,
		review.Recommends,
		comment,
		review.Text,
		string(review.Status),
	)

	if err := row.Scan(&review.ID, &review.CreatedAt); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ListRecent returns the latest reviews, newest first.
func (r *ReviewPostgres) ListRecent(ctx context.Context, limit int) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, user_name, gender, service, likes, recommendation, comment, generated_review, status, created_at
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var (
			review    entity.Review
			likesJSON []byte
			gender    string
			status    string
			comment   pgtype.Text
		)

		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.UserName,
			&gender,
			&review.Service,
			&likesJSON,
			&review.Recommends,
			&comment,
			&review.Text,
			&status,
			&review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}

		if err := json.Unmarshal(likesJSON, &review.Likes); err != nil {
			return nil, fmt.Errorf("unmarshal likes: %w", err)
		}

		review.Gender = entity.Gender(gender)
		review.Status = entity.ReviewStatus(status)
		review.Comment = comment.String

		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}
