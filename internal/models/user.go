package models

import "time"

const (
	StudentRole = "student"
	TeacherRole = "teacher"
	AdminRole   = "admin"
)

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case StudentRole, TeacherRole, AdminRole:
		return true
	}
	return false
}

type User struct {
	ID                    int64                 `json:"id"`
	Username              string                `json:"username"`
	Password              string                `json:"password"`
	Email                 string                `json:"email"`
	FullName              string                `json:"fullName"`
	Role                  string                `json:"role"`
	CreatedAt             time.Time             `json:"createdAt"`
	AccessibilitySettings AccessibilitySettings `json:"accessibilitySettings"`
}

// CanTeach reports whether the user may own courses.
func (u *User) CanTeach() bool {
	return u.Role == TeacherRole || u.Role == AdminRole
}
