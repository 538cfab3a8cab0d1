package models

import "time"

type CertificateTemplateData struct {
	StudentName    string `json:"studentName"`
	CourseName     string `json:"courseName"`
	CompletionDate string `json:"completionDate"`
	TeacherName    string `json:"teacherName"`
}

type Certificate struct {
	ID           string                  `json:"id"`
	UserID       int64                   `json:"userId"`
	CourseID     int64                   `json:"courseId"`
	IssueDate    time.Time               `json:"issueDate"`
	TemplateData CertificateTemplateData `json:"templateData"`
}
