package service

import (
	"EduAble/internal/service/admin"
	"EduAble/internal/service/auth"
	"EduAble/internal/service/course"
	"EduAble/internal/service/enrollment"
	"EduAble/internal/service/review"
)

type Collection struct {
	AuthService       *auth.AuthService
	CourseService     *course.CourseService
	EnrollmentService *enrollment.EnrollmentService
	ReviewService     *review.ReviewService
	AdminService      *admin.AdminService
}
