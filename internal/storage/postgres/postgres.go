package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"EduAble/migrations"
)

const uniqueViolationCode = "23505"

type Storage struct {
	Pool *pgxpool.Pool

	*UserPostgres
	*CoursePostgres
	*EnrollmentPostgres
	*MaterialPostgres
	*ReviewPostgres
	*CertificatePostgres
}

func NewPostgresStorage(username, password, host, port, dbName string) (*Storage, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", username, password, host, port, dbName)
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := migrate(connStr); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{
		Pool:                pool,
		UserPostgres:        NewUserPostgres(pool),
		CoursePostgres:      NewCoursePostgres(pool),
		EnrollmentPostgres:  NewEnrollmentPostgres(pool),
		MaterialPostgres:    NewMaterialPostgres(pool),
		ReviewPostgres:      NewReviewPostgres(pool),
		CertificatePostgres: NewCertificatePostgres(pool),
	}, nil
}

func (p *Storage) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

func migrate(connStr string) error {
	database, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer database.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.Up(database, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// UnwrapPgError returns the *pgconn.PgError inside err, or nil.
func UnwrapPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}
