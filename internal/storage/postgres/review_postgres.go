package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
)

type ReviewPostgres struct {
	db *pgxpool.Pool
}

func NewReviewPostgres(db *pgxpool.Pool) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

const reviewColumns = `id, user_id, course_id, rating, comment, created_at`

func scanReview(row pgx.Row) (*models.Review, error) {
	var review models.Review
	var comment *string

	err := row.Scan(&review.ID, &review.UserID, &review.CourseID, &review.Rating, &comment, &review.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrReviewNotFound
		}
		return nil, err
	}
	if comment != nil {
		review.Comment = *comment
	}
	return &review, nil
}

func (r *ReviewPostgres) CreateReview(ctx context.Context, review models.Review) (*models.Review, error) {
	query := `
		INSERT INTO reviews (user_id, course_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	now := time.Now().UTC()
	err := r.db.QueryRow(ctx, query, review.UserID, review.CourseID, review.Rating,
		review.Comment, now).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}
	return &review, nil
}

func (r *ReviewPostgres) ReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return scanReview(r.db.QueryRow(ctx, query, id))
}

func (r *ReviewPostgres) ListReviewsByCourse(ctx context.Context, courseID int64) ([]models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE course_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	return reviews, rows.Err()
}
