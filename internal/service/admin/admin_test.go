package admin

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
	"EduAble/internal/storage/memory"
	"EduAble/pkg/logger"
)

func seed(t *testing.T) (*AdminService, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	teacher, err := store.CreateUser(ctx, models.User{Username: "teacher", Email: "t@example.com", Role: models.TeacherRole})
	require.NoError(t, err)
	student, err := store.CreateUser(ctx, models.User{Username: "alice", Email: "a@example.com", Role: models.StudentRole})
	require.NoError(t, err)
	course, err := store.CreateCourse(ctx, models.Course{
		Title: "Course", Category: "a11y", Difficulty: models.DifficultyBeginner, TeacherID: teacher.ID,
	})
	require.NoError(t, err)
	_, err = store.CreateEnrollment(ctx, student.ID, course.ID)
	require.NoError(t, err)

	return NewAdminService(logger.New("local"), store, store, store), store
}

func TestAnalyticsCounts(t *testing.T) {
	svc, _ := seed(t)

	analytics, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, analytics.UserCount)
	assert.Equal(t, 1, analytics.CourseCount)
	assert.Equal(t, 1, analytics.EnrollmentCount)
}

func TestUpdateUserRole(t *testing.T) {
	ctx := context.Background()
	svc, store := seed(t)

	alice, err := store.UserByUsername(ctx, "alice")
	require.NoError(t, err)

	updated, err := svc.UpdateUserRole(ctx, alice.ID, models.TeacherRole)
	require.NoError(t, err)
	assert.Equal(t, models.TeacherRole, updated.Role)

	_, err = svc.UpdateUserRole(ctx, alice.ID, "superuser")
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestExportAnalyticsWorkbook(t *testing.T) {
	svc, _ := seed(t)

	data, err := svc.ExportAnalytics(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	metric, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	value, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Users", metric)
	assert.Equal(t, "2", value)
}
