package course

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
	"EduAble/internal/storage/memory"
	"EduAble/pkg/logger"
)

func newTestService(t *testing.T) (*CourseService, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewCourseService(logger.New("local"), store, store, store, nil, nil), store
}

func createUser(t *testing.T, store *memory.Store, username, role string) *models.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestCreateCourseOwnership(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	teacher := createUser(t, store, "teacher", models.TeacherRole)
	student := createUser(t, store, "student", models.StudentRole)

	input := CreateCourseInput{
		Title:      "Braille Basics",
		Category:   "accessibility",
		Difficulty: models.DifficultyBeginner,
		Price:      1999,
	}

	created, err := svc.CreateCourse(ctx, teacher, input)
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, created.TeacherID, "course is owned by its creator")

	_, err = svc.CreateCourse(ctx, student, input)
	assert.ErrorIs(t, err, app_errors.ErrForbidden)

	_, err = svc.CreateCourse(ctx, teacher, CreateCourseInput{Title: "", Category: "x", Difficulty: models.DifficultyBeginner})
	assert.ErrorIs(t, err, app_errors.ErrValidation)

	_, err = svc.CreateCourse(ctx, teacher, CreateCourseInput{Title: "x", Category: "x", Difficulty: "impossible"})
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestUpdateCourseOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	owner := createUser(t, store, "owner", models.TeacherRole)
	other := createUser(t, store, "other", models.TeacherRole)

	created, err := svc.CreateCourse(ctx, owner, CreateCourseInput{
		Title: "Original", Category: "a11y", Difficulty: models.DifficultyBeginner,
	})
	require.NoError(t, err)

	title := "Renamed"
	_, err = svc.UpdateCourse(ctx, other, created.ID, models.CourseUpdate{Title: &title})
	assert.ErrorIs(t, err, app_errors.ErrForbidden)

	updated, err := svc.UpdateCourse(ctx, owner, created.ID, models.CourseUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, owner.ID, updated.TeacherID)
}

func TestDeleteCourseCapabilities(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	owner := createUser(t, store, "owner", models.TeacherRole)
	rival := createUser(t, store, "rival", models.TeacherRole)
	admin := createUser(t, store, "admin", models.AdminRole)

	first, err := svc.CreateCourse(ctx, owner, CreateCourseInput{
		Title: "First", Category: "a11y", Difficulty: models.DifficultyBeginner,
	})
	require.NoError(t, err)
	second, err := svc.CreateCourse(ctx, owner, CreateCourseInput{
		Title: "Second", Category: "a11y", Difficulty: models.DifficultyBeginner,
	})
	require.NoError(t, err)

	// Another teacher cannot delete someone else's course.
	assert.ErrorIs(t, svc.DeleteCourse(ctx, rival, first.ID), app_errors.ErrForbidden)

	// The owner can.
	require.NoError(t, svc.DeleteCourse(ctx, owner, first.ID))

	// An admin can delete any course through the delete-any capability.
	require.NoError(t, svc.DeleteCourse(ctx, admin, second.ID))
}

func TestSearchUnavailableWithoutIndex(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SearchCourses(context.Background(), "braille", 10)
	assert.ErrorIs(t, err, app_errors.ErrSearchUnavailable)
}

func TestThumbnailsUnavailableWithoutStorage(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	owner := createUser(t, store, "owner", models.TeacherRole)
	created, err := svc.CreateCourse(ctx, owner, CreateCourseInput{
		Title: "Course", Category: "a11y", Difficulty: models.DifficultyBeginner,
	})
	require.NoError(t, err)

	_, err = svc.UploadThumbnail(ctx, owner, created.ID, "cover.png",
		bytes.NewReader([]byte("png")), 3, "image/png")
	assert.ErrorIs(t, err, app_errors.ErrThumbnailsUnavailable)
}

func TestCreateMaterialOwnerAndValidation(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	owner := createUser(t, store, "owner", models.TeacherRole)
	other := createUser(t, store, "other", models.TeacherRole)

	created, err := svc.CreateCourse(ctx, owner, CreateCourseInput{
		Title: "Course", Category: "a11y", Difficulty: models.DifficultyBeginner,
	})
	require.NoError(t, err)

	input := CreateMaterialInput{Title: "Intro", Type: models.MaterialTypeVideo, Content: "https://cdn/intro"}

	_, err = svc.CreateMaterial(ctx, other, created.ID, input)
	assert.ErrorIs(t, err, app_errors.ErrForbidden)

	material, err := svc.CreateMaterial(ctx, owner, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, created.ID, material.CourseID)

	_, err = svc.CreateMaterial(ctx, owner, created.ID, CreateMaterialInput{Title: "Bad", Type: "hologram"})
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}
