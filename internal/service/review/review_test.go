package review

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

func TestCreateReviewRequiresCompletion(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewReviewService(logger.New("local"), store, store)

	teacher, err := store.CreateUser(ctx, models.User{Username: "teacher", Email: "t@example.com", Role: models.TeacherRole})
	require.NoError(t, err)
	student, err := store.CreateUser(ctx, models.User{Username: "alice", Email: "a@example.com", Role: models.StudentRole})
	require.NoError(t, err)
	course, err := store.CreateCourse(ctx, models.Course{
		Title: "Course", Category: "a11y", Difficulty: models.DifficultyBeginner, TeacherID: teacher.ID,
	})
	require.NoError(t, err)

	// Not enrolled at all.
	_, err = svc.CreateReview(ctx, student.ID, course.ID, 5, "great")
	assert.ErrorIs(t, err, app_errors.ErrCourseNotCompleted)

	_, err = store.CreateEnrollment(ctx, student.ID, course.ID)
	require.NoError(t, err)

	// Enrolled but not finished.
	_, err = svc.CreateReview(ctx, student.ID, course.ID, 5, "great")
	assert.ErrorIs(t, err, app_errors.ErrCourseNotCompleted)

	_, err = store.UpdateEnrollmentProgress(ctx, student.ID, course.ID, 100, true)
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, student.ID, course.ID, 0, "great")
	assert.ErrorIs(t, err, app_errors.ErrValidation)
	_, err = svc.CreateReview(ctx, student.ID, course.ID, 6, "great")
	assert.ErrorIs(t, err, app_errors.ErrValidation)

	review, err := svc.CreateReview(ctx, student.ID, course.ID, 5, "great")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	reviews, err := svc.CourseReviews(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
