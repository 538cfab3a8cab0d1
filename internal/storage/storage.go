package storage

import (
	"context"

	"EduAble/internal/models"
)

// Storage is the sole data-access boundary of the backend. Create calls
// assign a monotonically increasing integer id (certificates use a
// caller-supplied string id) and a creation timestamp and return the
// persisted record. Lookups report absence with the app_errors sentinels
// instead of a nil-and-ok convention. Collection reads come back in
// insertion order unless documented otherwise.
type Storage interface {
	UserStore
	CourseStore
	EnrollmentStore
	MaterialStore
	ReviewStore
	CertificateStore
}

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
	// UserByUsername and UserByEmail match case-insensitively.
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) (*models.User, error)
	UpdateUserAccessibilitySettings(ctx context.Context, id int64, settings models.AccessibilitySettings) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type CourseStore interface {
	CreateCourse(ctx context.Context, course models.Course) (*models.Course, error)
	CourseByID(ctx context.Context, id int64) (*models.Course, error)
	// ListCourses filters by category and difficulty; empty strings match all.
	ListCourses(ctx context.Context, category, difficulty string) ([]models.Course, error)
	ListCoursesByTeacher(ctx context.Context, teacherID int64) ([]models.Course, error)
	UpdateCourse(ctx context.Context, id int64, upd models.CourseUpdate) (*models.Course, error)
	// DeleteCourse removes the course and cascades to its enrollments,
	// materials and reviews.
	DeleteCourse(ctx context.Context, id int64) error
	CountCourses(ctx context.Context) (int, error)
}

type EnrollmentStore interface {
	CreateEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	Enrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	ListEnrollmentsByUser(ctx context.Context, userID int64) ([]models.Enrollment, error)
	ListEnrollmentsByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error)
	UpdateEnrollmentProgress(ctx context.Context, userID, courseID int64, progress int, completed bool) (*models.Enrollment, error)
	AssignCertificate(ctx context.Context, userID, courseID int64, certificateID string) (*models.Enrollment, error)
	CountEnrollments(ctx context.Context) (int, error)
}

type MaterialStore interface {
	CreateMaterial(ctx context.Context, material models.Material) (*models.Material, error)
	MaterialByID(ctx context.Context, id int64) (*models.Material, error)
	// ListMaterialsByCourse returns materials ordered ascending by order index.
	ListMaterialsByCourse(ctx context.Context, courseID int64) ([]models.Material, error)
}

type ReviewStore interface {
	CreateReview(ctx context.Context, review models.Review) (*models.Review, error)
	ReviewByID(ctx context.Context, id int64) (*models.Review, error)
	ListReviewsByCourse(ctx context.Context, courseID int64) ([]models.Review, error)
}

type CertificateStore interface {
	CreateCertificate(ctx context.Context, certificate models.Certificate) (*models.Certificate, error)
	CertificateByID(ctx context.Context, id string) (*models.Certificate, error)
	ListCertificatesByUser(ctx context.Context, userID int64) ([]models.Certificate, error)
}
