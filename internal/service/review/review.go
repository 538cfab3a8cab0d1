package review

import (
	"context"
	"errors"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
	"EduAble/pkg/logger"
)

type enrollmentRepo interface {
	Enrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
}

type reviewRepo interface {
	CreateReview(ctx context.Context, review models.Review) (*models.Review, error)
	ListReviewsByCourse(ctx context.Context, courseID int64) ([]models.Review, error)
}

type ReviewService struct {
	log            logger.Log
	enrollmentRepo enrollmentRepo
	reviewRepo     reviewRepo
}

func NewReviewService(l logger.Log, enrollments enrollmentRepo, reviews reviewRepo) *ReviewService {
	return &ReviewService{
		log:            l,
		enrollmentRepo: enrollments,
		reviewRepo:     reviews,
	}
}

// CreateReview records a rating. Only a user whose enrollment in the course
// is completed may review it.
func (s *ReviewService) CreateReview(ctx context.Context, userID, courseID int64, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, app_errors.ErrValidation
	}

	enrollment, err := s.enrollmentRepo.Enrollment(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, app_errors.ErrEnrollmentNotFound) {
			return nil, app_errors.ErrCourseNotCompleted
		}
		return nil, err
	}
	if !enrollment.Completed {
		return nil, app_errors.ErrCourseNotCompleted
	}

	return s.reviewRepo.CreateReview(ctx, models.Review{
		UserID:   userID,
		CourseID: courseID,
		Rating:   rating,
		Comment:  comment,
	})
}

func (s *ReviewService) CourseReviews(ctx context.Context, courseID int64) ([]models.Review, error) {
	return s.reviewRepo.ListReviewsByCourse(ctx, courseID)
}
