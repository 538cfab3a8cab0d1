package enrollment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
	"EduAble/pkg/logger"
)

type userRepo interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

type courseRepo interface {
	CourseByID(ctx context.Context, id int64) (*models.Course, error)
}

type enrollmentRepo interface {
	CreateEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	Enrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	ListEnrollmentsByUser(ctx context.Context, userID int64) ([]models.Enrollment, error)
	ListEnrollmentsByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error)
	UpdateEnrollmentProgress(ctx context.Context, userID, courseID int64, progress int, completed bool) (*models.Enrollment, error)
	AssignCertificate(ctx context.Context, userID, courseID int64, certificateID string) (*models.Enrollment, error)
}

type certificateRepo interface {
	CreateCertificate(ctx context.Context, certificate models.Certificate) (*models.Certificate, error)
	CertificateByID(ctx context.Context, id string) (*models.Certificate, error)
	ListCertificatesByUser(ctx context.Context, userID int64) ([]models.Certificate, error)
}

// EnrollmentService tracks course progress and issues completion
// certificates.
type EnrollmentService struct {
	log             logger.Log
	userRepo        userRepo
	courseRepo      courseRepo
	enrollmentRepo  enrollmentRepo
	certificateRepo certificateRepo
}

func NewEnrollmentService(l logger.Log, users userRepo, courses courseRepo,
	enrollments enrollmentRepo, certificates certificateRepo) *EnrollmentService {
	return &EnrollmentService{
		log:             l,
		userRepo:        users,
		courseRepo:      courses,
		enrollmentRepo:  enrollments,
		certificateRepo: certificates,
	}
}

// Enroll creates the (user, course) enrollment. A second enrollment in the
// same course is rejected with ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if _, err := s.enrollmentRepo.Enrollment(ctx, userID, courseID); err == nil {
		return nil, app_errors.ErrAlreadyEnrolled
	} else if !errors.Is(err, app_errors.ErrEnrollmentNotFound) {
		return nil, err
	}
	return s.enrollmentRepo.CreateEnrollment(ctx, userID, courseID)
}

func (s *EnrollmentService) UserEnrollments(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	return s.enrollmentRepo.ListEnrollmentsByUser(ctx, userID)
}

// CourseEnrollments lists enrollments for a course owned by the acting
// teacher.
func (s *EnrollmentService) CourseEnrollments(ctx context.Context, actor *models.User, courseID int64) ([]models.Enrollment, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != actor.ID {
		return nil, app_errors.ErrForbidden
	}
	return s.enrollmentRepo.ListEnrollmentsByCourse(ctx, courseID)
}

// UpdateProgress sets the user's progress in a course. Reaching 100 marks
// the enrollment completed and issues the certificate exactly once; repeat
// updates to 100 see the recorded certificate id and do nothing more.
func (s *EnrollmentService) UpdateProgress(ctx context.Context, user *models.User, courseID int64, progress int) (*models.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, app_errors.ErrValidation
	}

	enrollment, err := s.enrollmentRepo.Enrollment(ctx, user.ID, courseID)
	if err != nil {
		return nil, err
	}

	completed := progress == 100
	updated, err := s.enrollmentRepo.UpdateEnrollmentProgress(ctx, user.ID, courseID, progress, completed)
	if err != nil {
		return nil, err
	}

	if completed && enrollment.CertificateID == "" {
		updated, err = s.issueCertificate(ctx, user, courseID)
		if err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (s *EnrollmentService) issueCertificate(ctx context.Context, user *models.User, courseID int64) (*models.Enrollment, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	teacherName := "Course Instructor"
	if teacher, err := s.userRepo.UserByID(ctx, course.TeacherID); err == nil {
		teacherName = teacher.FullName
	} else {
		s.log.ErrorErr("failed to resolve course teacher for certificate", err, "course_id", courseID)
	}

	certificate := models.Certificate{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		CourseID: courseID,
		TemplateData: models.CertificateTemplateData{
			StudentName:    user.FullName,
			CourseName:     course.Title,
			CompletionDate: time.Now().UTC().Format(time.RFC3339),
			TeacherName:    teacherName,
		},
	}
	if _, err := s.certificateRepo.CreateCertificate(ctx, certificate); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.AssignCertificate(ctx, user.ID, courseID, certificate.ID)
}

func (s *EnrollmentService) UserCertificates(ctx context.Context, userID int64) ([]models.Certificate, error) {
	return s.certificateRepo.ListCertificatesByUser(ctx, userID)
}

// Certificate returns a certificate by id. Students may only view their
// own; the certificate:view-any capability lifts that restriction.
func (s *EnrollmentService) Certificate(ctx context.Context, actor *models.User, id string) (*models.Certificate, error) {
	certificate, err := s.certificateRepo.CertificateByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Can(models.PermCertificateAny) && certificate.UserID != actor.ID {
		return nil, app_errors.ErrForbidden
	}
	return certificate, nil
}
