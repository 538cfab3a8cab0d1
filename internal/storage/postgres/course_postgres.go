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

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

const courseColumns = `id, title, description, thumbnail, category, difficulty, price, teacher_id, created_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(&course.ID, &course.Title, &course.Description, &course.Thumbnail,
		&course.Category, &course.Difficulty, &course.Price, &course.TeacherID, &course.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CoursePostgres) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	query := `
		INSERT INTO courses (title, description, thumbnail, category, difficulty, price, teacher_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	now := time.Now().UTC()
	err := r.db.QueryRow(ctx, query, course.Title, course.Description, course.Thumbnail,
		course.Category, course.Difficulty, course.Price, course.TeacherID, now).
		Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert course: %w", err)
	}
	return &course, nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CoursePostgres) ListCourses(ctx context.Context, category, difficulty string) ([]models.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR difficulty = $2)
		ORDER BY id
	`
	return r.queryCourses(ctx, query, category, difficulty)
}

func (r *CoursePostgres) ListCoursesByTeacher(ctx context.Context, teacherID int64) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE teacher_id = $1 ORDER BY id`
	return r.queryCourses(ctx, query, teacherID)
}

func (r *CoursePostgres) queryCourses(ctx context.Context, query string, args ...any) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, rows.Err()
}

func (r *CoursePostgres) UpdateCourse(ctx context.Context, id int64, upd models.CourseUpdate) (*models.Course, error) {
	query := `
		UPDATE courses SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			thumbnail   = COALESCE($4, thumbnail),
			category    = COALESCE($5, category),
			difficulty  = COALESCE($6, difficulty),
			price       = COALESCE($7, price)
		WHERE id = $1
		RETURNING ` + courseColumns
	return scanCourse(r.db.QueryRow(ctx, query, id,
		upd.Title, upd.Description, upd.Thumbnail, upd.Category, upd.Difficulty, upd.Price))
}

func (r *CoursePostgres) DeleteCourse(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = app_errors.ErrCourseNotFound
		return err
	}

	for _, q := range []string{
		`DELETE FROM enrollments WHERE course_id = $1`,
		`DELETE FROM materials WHERE course_id = $1`,
		`DELETE FROM reviews WHERE course_id = $1`,
	} {
		if _, err = tx.Exec(ctx, q, id); err != nil {
			return fmt.Errorf("failed to cascade course delete: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *CoursePostgres) CountCourses(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return count, nil
}
