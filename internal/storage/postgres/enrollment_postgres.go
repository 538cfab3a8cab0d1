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

type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

const enrollmentColumns = `id, user_id, course_id, enrollment_date, progress, completed, certificate_id`

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	var certificateID *string

	err := row.Scan(&enrollment.ID, &enrollment.UserID, &enrollment.CourseID,
		&enrollment.EnrollmentDate, &enrollment.Progress, &enrollment.Completed, &certificateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrEnrollmentNotFound
		}
		return nil, err
	}
	if certificateID != nil {
		enrollment.CertificateID = *certificateID
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgres) CreateEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	query := `
		INSERT INTO enrollments (user_id, course_id, enrollment_date, progress, completed)
		VALUES ($1, $2, $3, 0, false)
		RETURNING ` + enrollmentColumns
	now := time.Now().UTC()
	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, query, userID, courseID, now))
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == uniqueViolationCode {
			return nil, app_errors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to insert enrollment: %w", err)
	}
	return enrollment, nil
}

func (r *EnrollmentPostgres) Enrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE user_id = $1 AND course_id = $2`
	return scanEnrollment(r.db.QueryRow(ctx, query, userID, courseID))
}

func (r *EnrollmentPostgres) ListEnrollmentsByUser(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE user_id = $1 ORDER BY id`
	return r.queryEnrollments(ctx, query, userID)
}

func (r *EnrollmentPostgres) ListEnrollmentsByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE course_id = $1 ORDER BY id`
	return r.queryEnrollments(ctx, query, courseID)
}

func (r *EnrollmentPostgres) queryEnrollments(ctx context.Context, query string, args ...any) ([]models.Enrollment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, *enrollment)
	}
	return enrollments, rows.Err()
}

func (r *EnrollmentPostgres) UpdateEnrollmentProgress(ctx context.Context, userID, courseID int64, progress int, completed bool) (*models.Enrollment, error) {
	query := `
		UPDATE enrollments SET progress = $3, completed = $4
		WHERE user_id = $1 AND course_id = $2
		RETURNING ` + enrollmentColumns
	return scanEnrollment(r.db.QueryRow(ctx, query, userID, courseID, progress, completed))
}

func (r *EnrollmentPostgres) AssignCertificate(ctx context.Context, userID, courseID int64, certificateID string) (*models.Enrollment, error) {
	query := `
		UPDATE enrollments SET certificate_id = $3
		WHERE user_id = $1 AND course_id = $2
		RETURNING ` + enrollmentColumns
	return scanEnrollment(r.db.QueryRow(ctx, query, userID, courseID, certificateID))
}

func (r *EnrollmentPostgres) CountEnrollments(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM enrollments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}
