package models

import "time"

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	Price       int       `json:"price"` // minor currency units
	TeacherID   int64     `json:"teacherId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CourseUpdate carries the mutable course fields. ID and TeacherID are
// identity-bearing and cannot be changed through an update.
type CourseUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
	Category    *string `json:"category"`
	Difficulty  *string `json:"difficulty"`
	Price       *int    `json:"price"`
}
