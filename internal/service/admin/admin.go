package admin

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
	"EduAble/pkg/logger"
)

type userRepo interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) (*models.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type courseRepo interface {
	CountCourses(ctx context.Context) (int, error)
}

type enrollmentRepo interface {
	CountEnrollments(ctx context.Context) (int, error)
}

type AdminService struct {
	log            logger.Log
	userRepo       userRepo
	courseRepo     courseRepo
	enrollmentRepo enrollmentRepo
}

func NewAdminService(l logger.Log, users userRepo, courses courseRepo, enrollments enrollmentRepo) *AdminService {
	return &AdminService{
		log:            l,
		userRepo:       users,
		courseRepo:     courses,
		enrollmentRepo: enrollments,
	}
}

func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListUsers(ctx)
}

func (s *AdminService) UpdateUserRole(ctx context.Context, userID int64, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, app_errors.ErrValidation
	}
	return s.userRepo.UpdateUserRole(ctx, userID, role)
}

type Analytics struct {
	UserCount       int `json:"userCount"`
	CourseCount     int `json:"courseCount"`
	EnrollmentCount int `json:"enrollmentCount"`
}

func (s *AdminService) Analytics(ctx context.Context) (*Analytics, error) {
	userCount, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	courseCount, err := s.courseRepo.CountCourses(ctx)
	if err != nil {
		return nil, err
	}
	enrollmentCount, err := s.enrollmentRepo.CountEnrollments(ctx)
	if err != nil {
		return nil, err
	}
	return &Analytics{
		UserCount:       userCount,
		CourseCount:     courseCount,
		EnrollmentCount: enrollmentCount,
	}, nil
}

// ExportAnalytics renders the analytics summary as an xlsx workbook.
func (s *AdminService) ExportAnalytics(ctx context.Context) ([]byte, error) {
	analytics, err := s.Analytics(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.ErrorErr("failed to close analytics workbook", err)
		}
	}()

	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Metric", "Value"},
		{"Users", analytics.UserCount},
		{"Courses", analytics.CourseCount},
		{"Enrollments", analytics.EnrollmentCount},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write analytics row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize analytics workbook: %w", err)
	}
	return buf.Bytes(), nil
}
