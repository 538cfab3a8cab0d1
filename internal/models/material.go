package models

import "time"

const (
	MaterialTypeVideo      = "video"
	MaterialTypePDF        = "pdf"
	MaterialTypeAssignment = "assignment"
	MaterialTypeQuiz       = "quiz"
)

func ValidMaterialType(t string) bool {
	switch t {
	case MaterialTypeVideo, MaterialTypePDF, MaterialTypeAssignment, MaterialTypeQuiz:
		return true
	}
	return false
}

type Material struct {
	ID         int64     `json:"id"`
	CourseID   int64     `json:"courseId"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Content    string    `json:"content"` // URL for videos, inline text or JSON otherwise
	OrderIndex int       `json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
}
