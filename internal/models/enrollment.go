package models

import "time"

type Enrollment struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	CourseID       int64     `json:"courseId"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	Progress       int       `json:"progress"`
	Completed      bool      `json:"completed"`
	CertificateID  string    `json:"certificateId,omitempty"`
}
