package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, HasPermission(TeacherRole, PermCourseCreate))
	assert.False(t, HasPermission(StudentRole, PermCourseCreate))

	// Admins do not inherit teacher capabilities; they hold their own set.
	assert.False(t, HasPermission(AdminRole, PermCourseCreate))
	assert.True(t, HasPermission(AdminRole, PermCourseDeleteAny))
	assert.False(t, HasPermission(TeacherRole, PermCourseDeleteAny))

	assert.True(t, HasPermission(AdminRole, PermUserManage))
	assert.False(t, HasPermission(TeacherRole, PermUserManage))

	assert.False(t, HasPermission("superuser", PermUserManage), "unknown roles have no permissions")
}

func TestUserCan(t *testing.T) {
	teacher := &User{Role: TeacherRole}
	assert.True(t, teacher.Can(PermCertificateAny))
	assert.False(t, teacher.Can(PermAnalyticsView))
}
