package models

// Permission names an action a role may perform. The table below is the
// single place where role capabilities are resolved; route guards and
// services consult it instead of re-checking `role == "admin"` ad hoc.
type Permission string

const (
	PermCourseCreate      Permission = "course:create"
	PermCourseUpdateOwn   Permission = "course:update-own"
	PermCourseDeleteOwn   Permission = "course:delete-own"
	PermCourseDeleteAny   Permission = "course:delete-any"
	PermMaterialManageOwn Permission = "material:manage-own"
	PermEnroll            Permission = "enrollment:create"
	PermReviewCreate      Permission = "review:create"
	PermCertificateAny    Permission = "certificate:view-any"
	PermUserManage        Permission = "user:manage"
	PermAnalyticsView     Permission = "analytics:view"
)

var rolePermissions = map[string]map[Permission]struct{}{
	StudentRole: permSet(
		PermEnroll,
		PermReviewCreate,
	),
	TeacherRole: permSet(
		PermCourseCreate,
		PermCourseUpdateOwn,
		PermCourseDeleteOwn,
		PermMaterialManageOwn,
		PermEnroll,
		PermReviewCreate,
		PermCertificateAny,
	),
	AdminRole: permSet(
		PermCourseDeleteOwn,
		PermCourseDeleteAny,
		PermEnroll,
		PermReviewCreate,
		PermCertificateAny,
		PermUserManage,
		PermAnalyticsView,
	),
}

func permSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission resolves role capabilities against the table. Unknown roles
// have no permissions.
func HasPermission(role string, p Permission) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = set[p]
	return ok
}

// Can is the method form used by services holding the acting user.
func (u *User) Can(p Permission) bool {
	return HasPermission(u.Role, p)
}
