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

type MaterialPostgres struct {
	db *pgxpool.Pool
}

func NewMaterialPostgres(db *pgxpool.Pool) *MaterialPostgres {
	return &MaterialPostgres{db: db}
}

const materialColumns = `id, course_id, title, type, content, order_index, created_at`

func scanMaterial(row pgx.Row) (*models.Material, error) {
	var material models.Material
	err := row.Scan(&material.ID, &material.CourseID, &material.Title, &material.Type,
		&material.Content, &material.OrderIndex, &material.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrMaterialNotFound
		}
		return nil, err
	}
	return &material, nil
}

func (r *MaterialPostgres) CreateMaterial(ctx context.Context, material models.Material) (*models.Material, error) {
	query := `
		INSERT INTO materials (course_id, title, type, content, order_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	now := time.Now().UTC()
	err := r.db.QueryRow(ctx, query, material.CourseID, material.Title, material.Type,
		material.Content, material.OrderIndex, now).Scan(&material.ID, &material.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert material: %w", err)
	}
	return &material, nil
}

func (r *MaterialPostgres) MaterialByID(ctx context.Context, id int64) (*models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	return scanMaterial(r.db.QueryRow(ctx, query, id))
}

func (r *MaterialPostgres) ListMaterialsByCourse(ctx context.Context, courseID int64) ([]models.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE course_id = $1 ORDER BY order_index, id`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	var materials []models.Material
	for rows.Next() {
		material, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, *material)
	}
	return materials, rows.Err()
}
