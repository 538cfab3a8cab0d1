package enrollment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
	"EduAble/internal/storage/memory"
	"EduAble/pkg/logger"
)

type fixture struct {
	svc     *EnrollmentService
	store   *memory.Store
	student *models.User
	teacher *models.User
	course  *models.Course
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	teacher, err := store.CreateUser(ctx, models.User{
		Username: "teacher", Email: "teacher@example.com",
		FullName: "Tina Teacher", Role: models.TeacherRole,
	})
	require.NoError(t, err)
	student, err := store.CreateUser(ctx, models.User{
		Username: "alice", Email: "alice@example.com",
		FullName: "Alice Example", Role: models.StudentRole,
	})
	require.NoError(t, err)
	course, err := store.CreateCourse(ctx, models.Course{
		Title: "Accessible Web Design", Category: "design",
		Difficulty: models.DifficultyBeginner, TeacherID: teacher.ID,
	})
	require.NoError(t, err)

	return &fixture{
		svc:     NewEnrollmentService(logger.New("local"), store, store, store, store),
		store:   store,
		student: student,
		teacher: teacher,
		course:  course,
	}
}

func TestEnrollOncePerCourse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	enrollment, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.Progress)
	assert.False(t, enrollment.Completed)

	_, err = f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	assert.ErrorIs(t, err, app_errors.ErrAlreadyEnrolled)

	_, err = f.svc.Enroll(ctx, f.student.ID, 999)
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestUpdateProgressValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateProgress(ctx, f.student, f.course.ID, -1)
	assert.ErrorIs(t, err, app_errors.ErrValidation)
	_, err = f.svc.UpdateProgress(ctx, f.student, f.course.ID, 101)
	assert.ErrorIs(t, err, app_errors.ErrValidation)

	enrollment, err := f.svc.UpdateProgress(ctx, f.student, f.course.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, enrollment.Progress)
	assert.False(t, enrollment.Completed)
	assert.Empty(t, enrollment.CertificateID)
}

func TestCertificateIssuedOnceAtCompletion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)

	completed, err := f.svc.UpdateProgress(ctx, f.student, f.course.ID, 100)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	require.NotEmpty(t, completed.CertificateID)

	certificate, err := f.store.CertificateByID(ctx, completed.CertificateID)
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, certificate.UserID)
	assert.Equal(t, f.course.ID, certificate.CourseID)
	assert.Equal(t, "Alice Example", certificate.TemplateData.StudentName)
	assert.Equal(t, "Accessible Web Design", certificate.TemplateData.CourseName)
	assert.Equal(t, "Tina Teacher", certificate.TemplateData.TeacherName)

	// Hitting 100 again keeps the original certificate.
	repeat, err := f.svc.UpdateProgress(ctx, f.student, f.course.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, completed.CertificateID, repeat.CertificateID)

	certificates, err := f.svc.UserCertificates(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Len(t, certificates, 1)
}

func TestCertificateVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)
	completed, err := f.svc.UpdateProgress(ctx, f.student, f.course.ID, 100)
	require.NoError(t, err)

	other, err := f.store.CreateUser(ctx, models.User{
		Username: "bob", Email: "bob@example.com", Role: models.StudentRole,
	})
	require.NoError(t, err)

	_, err = f.svc.Certificate(ctx, other, completed.CertificateID)
	assert.ErrorIs(t, err, app_errors.ErrForbidden, "another student may not view it")

	got, err := f.svc.Certificate(ctx, f.student, completed.CertificateID)
	require.NoError(t, err)
	assert.Equal(t, completed.CertificateID, got.ID)

	gotAsTeacher, err := f.svc.Certificate(ctx, f.teacher, completed.CertificateID)
	require.NoError(t, err)
	assert.Equal(t, completed.CertificateID, gotAsTeacher.ID)
}

func TestCourseEnrollmentsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)

	enrollments, err := f.svc.CourseEnrollments(ctx, f.teacher, f.course.ID)
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)

	intruder, err := f.store.CreateUser(ctx, models.User{
		Username: "other", Email: "other@example.com", Role: models.TeacherRole,
	})
	require.NoError(t, err)

	_, err = f.svc.CourseEnrollments(ctx, intruder, f.course.ID)
	assert.ErrorIs(t, err, app_errors.ErrForbidden)
}
