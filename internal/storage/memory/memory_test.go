package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
)

func seedUser(t *testing.T, s *Store, username, role string) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash.salt",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func seedCourse(t *testing.T, s *Store, title string, teacherID int64) *models.Course {
	t.Helper()
	course, err := s.CreateCourse(context.Background(), models.Course{
		Title:      title,
		Category:   "accessibility",
		Difficulty: models.DifficultyBeginner,
		TeacherID:  teacherID,
	})
	require.NoError(t, err)
	return course
}

func TestMonotonicIDsAndInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	teacher := seedUser(t, s, "teacher", models.TeacherRole)
	first := seedCourse(t, s, "First", teacher.ID)
	second := seedCourse(t, s, "Second", teacher.ID)
	third := seedCourse(t, s, "Third", teacher.ID)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, int64(3), third.ID)

	courses, err := s.ListCourses(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, []string{"First", "Second", "Third"},
		[]string{courses[0].Title, courses[1].Title, courses[2].Title})
}

func TestUpdateCourseKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	s := New()

	teacher := seedUser(t, s, "teacher", models.TeacherRole)
	course := seedCourse(t, s, "Original", teacher.ID)

	title := "Renamed"
	updated, err := s.UpdateCourse(ctx, course.ID, models.CourseUpdate{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, course.ID, updated.ID)
	assert.Equal(t, teacher.ID, updated.TeacherID)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, course.Category, updated.Category, "unpatched field untouched")
}

func TestEnrollmentUniquePerUserCourse(t *testing.T) {
	ctx := context.Background()
	s := New()

	student := seedUser(t, s, "student", models.StudentRole)
	teacher := seedUser(t, s, "teacher", models.TeacherRole)
	course := seedCourse(t, s, "Course", teacher.ID)

	_, err := s.CreateEnrollment(ctx, student.ID, course.ID)
	require.NoError(t, err)

	_, err = s.CreateEnrollment(ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, app_errors.ErrAlreadyEnrolled)
}

func TestMaterialsSortedByOrderIndex(t *testing.T) {
	ctx := context.Background()
	s := New()

	teacher := seedUser(t, s, "teacher", models.TeacherRole)
	course := seedCourse(t, s, "Course", teacher.ID)

	for _, m := range []models.Material{
		{CourseID: course.ID, Title: "Outro", Type: models.MaterialTypeVideo, OrderIndex: 2},
		{CourseID: course.ID, Title: "Intro", Type: models.MaterialTypeVideo, OrderIndex: 0},
		{CourseID: course.ID, Title: "Middle", Type: models.MaterialTypePDF, OrderIndex: 1},
	} {
		_, err := s.CreateMaterial(ctx, m)
		require.NoError(t, err)
	}

	materials, err := s.ListMaterialsByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, materials, 3)
	assert.Equal(t, []string{"Intro", "Middle", "Outro"},
		[]string{materials[0].Title, materials[1].Title, materials[2].Title})
}

func TestDeleteCourseCascades(t *testing.T) {
	ctx := context.Background()
	s := New()

	student := seedUser(t, s, "student", models.StudentRole)
	teacher := seedUser(t, s, "teacher", models.TeacherRole)
	course := seedCourse(t, s, "Doomed", teacher.ID)
	other := seedCourse(t, s, "Survivor", teacher.ID)

	_, err := s.CreateEnrollment(ctx, student.ID, course.ID)
	require.NoError(t, err)
	_, err = s.CreateEnrollment(ctx, student.ID, other.ID)
	require.NoError(t, err)
	_, err = s.CreateMaterial(ctx, models.Material{CourseID: course.ID, Title: "Lesson", Type: models.MaterialTypeVideo})
	require.NoError(t, err)
	_, err = s.CreateReview(ctx, models.Review{UserID: student.ID, CourseID: course.ID, Rating: 5})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCourse(ctx, course.ID))

	_, err = s.CourseByID(ctx, course.ID)
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
	_, err = s.Enrollment(ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, app_errors.ErrEnrollmentNotFound)

	materials, err := s.ListMaterialsByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, materials)
	reviews, err := s.ListReviewsByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	// Unrelated rows survive the cascade.
	_, err = s.Enrollment(ctx, student.ID, other.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.DeleteCourse(ctx, course.ID), app_errors.ErrCourseNotFound)
}

func TestCaseInsensitiveUserLookups(t *testing.T) {
	ctx := context.Background()
	s := New()

	seedUser(t, s, "Alice", models.StudentRole)

	byName, err := s.UserByUsername(ctx, "aLiCe")
	require.NoError(t, err)
	assert.Equal(t, "Alice", byName.Username)

	byEmail, err := s.UserByEmail(ctx, "ALICE@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, byName.ID, byEmail.ID)
}
