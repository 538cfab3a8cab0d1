package app_errors

import "errors"

var ErrDuplicateUsername = errors.New("username already exists")
var ErrDuplicateEmail = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("forbidden")
var ErrValidation = errors.New("validation failed")
var ErrUserNotFound = errors.New("user not found")
var ErrCourseNotFound = errors.New("course not found")
var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrMaterialNotFound = errors.New("material not found")
var ErrReviewNotFound = errors.New("review not found")
var ErrCertificateNotFound = errors.New("certificate not found")
var ErrAlreadyEnrolled = errors.New("already enrolled in this course")
var ErrCourseNotCompleted = errors.New("course must be completed before leaving a review")
var ErrSessionNotFound = errors.New("session not found")
var ErrSearchUnavailable = errors.New("course search is not configured")
var ErrThumbnailsUnavailable = errors.New("thumbnail storage is not configured")
var ErrNotImage = errors.New("not image")
var ErrFileSize = errors.New("file size error")
