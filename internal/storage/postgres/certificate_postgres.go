package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
)

type CertificatePostgres struct {
	db *pgxpool.Pool
}

func NewCertificatePostgres(db *pgxpool.Pool) *CertificatePostgres {
	return &CertificatePostgres{db: db}
}

const certificateColumns = `id, user_id, course_id, issue_date, template_data`

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	var certificate models.Certificate
	var templateData []byte

	err := row.Scan(&certificate.ID, &certificate.UserID, &certificate.CourseID,
		&certificate.IssueDate, &templateData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCertificateNotFound
		}
		return nil, err
	}
	if len(templateData) > 0 {
		if err := json.Unmarshal(templateData, &certificate.TemplateData); err != nil {
			return nil, fmt.Errorf("failed to decode template data: %w", err)
		}
	}
	return &certificate, nil
}

func (r *CertificatePostgres) CreateCertificate(ctx context.Context, certificate models.Certificate) (*models.Certificate, error) {
	templateData, err := json.Marshal(certificate.TemplateData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template data: %w", err)
	}

	query := `
		INSERT INTO certificates (id, user_id, course_id, issue_date, template_data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING issue_date
	`
	now := time.Now().UTC()
	err = r.db.QueryRow(ctx, query, certificate.ID, certificate.UserID, certificate.CourseID,
		now, templateData).Scan(&certificate.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("failed to insert certificate: %w", err)
	}
	return &certificate, nil
}

func (r *CertificatePostgres) CertificateByID(ctx context.Context, id string) (*models.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1`
	return scanCertificate(r.db.QueryRow(ctx, query, id))
}

func (r *CertificatePostgres) ListCertificatesByUser(ctx context.Context, userID int64) ([]models.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE user_id = $1 ORDER BY issue_date, id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificates: %w", err)
	}
	defer rows.Close()

	var certificates []models.Certificate
	for rows.Next() {
		certificate, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certificates = append(certificates, *certificate)
	}
	return certificates, rows.Err()
}
