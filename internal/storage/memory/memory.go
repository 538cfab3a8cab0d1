package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
)

type enrollKey struct {
	userID   int64
	courseID int64
}

// Store is the in-memory reference implementation of storage.Storage. It
// stands in for a relational database: no persistence across restarts, a
// single RWMutex instead of transactional isolation. Tests and the default
// run mode use it.
type Store struct {
	mu sync.RWMutex

	users        map[int64]models.User
	courses      map[int64]models.Course
	enrollments  map[enrollKey]models.Enrollment
	materials    map[int64]models.Material
	reviews      map[int64]models.Review
	certificates map[string]models.Certificate
	certOrder    []string

	userID       int64
	courseID     int64
	enrollmentID int64
	materialID   int64
	reviewID     int64
}

func New() *Store {
	return &Store{
		users:        make(map[int64]models.User),
		courses:      make(map[int64]models.Course),
		enrollments:  make(map[enrollKey]models.Enrollment),
		materials:    make(map[int64]models.Material),
		reviews:      make(map[int64]models.Review),
		certificates: make(map[string]models.Certificate),
	}
}

// Ids are handed out monotonically, so ascending-id iteration is
// insertion-order iteration.
func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// User operations

func (s *Store) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID++
	user.ID = s.userID
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = user
	return &user, nil
}

func (s *Store) UserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return &user, nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.users) {
		user := s.users[id]
		if strings.EqualFold(user.Username, username) {
			return &user, nil
		}
	}
	return nil, app_errors.ErrUserNotFound
}

func (s *Store) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.users) {
		user := s.users[id]
		if strings.EqualFold(user.Email, email) {
			return &user, nil
		}
	}
	return nil, app_errors.ErrUserNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, id := range sortedIDs(s.users) {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *Store) UpdateUserRole(_ context.Context, id int64, role string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	user.Role = role
	s.users[id] = user
	return &user, nil
}

func (s *Store) UpdateUserAccessibilitySettings(_ context.Context, id int64, settings models.AccessibilitySettings) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	user.AccessibilitySettings = settings
	s.users[id] = user
	return &user, nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// Course operations

func (s *Store) CreateCourse(_ context.Context, course models.Course) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courseID++
	course.ID = s.courseID
	course.CreatedAt = time.Now().UTC()
	s.courses[course.ID] = course
	return &course, nil
}

func (s *Store) CourseByID(_ context.Context, id int64) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return &course, nil
}

func (s *Store) ListCourses(_ context.Context, category, difficulty string) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var courses []models.Course
	for _, id := range sortedIDs(s.courses) {
		course := s.courses[id]
		if category != "" && course.Category != category {
			continue
		}
		if difficulty != "" && course.Difficulty != difficulty {
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (s *Store) ListCoursesByTeacher(_ context.Context, teacherID int64) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var courses []models.Course
	for _, id := range sortedIDs(s.courses) {
		if s.courses[id].TeacherID == teacherID {
			courses = append(courses, s.courses[id])
		}
	}
	return courses, nil
}

func (s *Store) UpdateCourse(_ context.Context, id int64, upd models.CourseUpdate) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	if upd.Title != nil {
		course.Title = *upd.Title
	}
	if upd.Description != nil {
		course.Description = *upd.Description
	}
	if upd.Thumbnail != nil {
		course.Thumbnail = *upd.Thumbnail
	}
	if upd.Category != nil {
		course.Category = *upd.Category
	}
	if upd.Difficulty != nil {
		course.Difficulty = *upd.Difficulty
	}
	if upd.Price != nil {
		course.Price = *upd.Price
	}
	s.courses[id] = course
	return &course, nil
}

func (s *Store) DeleteCourse(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return app_errors.ErrCourseNotFound
	}
	delete(s.courses, id)

	// Application-level cascade, there is no referential integrity here.
	for key, enrollment := range s.enrollments {
		if enrollment.CourseID == id {
			delete(s.enrollments, key)
		}
	}
	for mid, material := range s.materials {
		if material.CourseID == id {
			delete(s.materials, mid)
		}
	}
	for rid, review := range s.reviews {
		if review.CourseID == id {
			delete(s.reviews, rid)
		}
	}
	return nil
}

func (s *Store) CountCourses(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.courses), nil
}

// Enrollment operations

func (s *Store) CreateEnrollment(_ context.Context, userID, courseID int64) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := enrollKey{userID: userID, courseID: courseID}
	if _, ok := s.enrollments[key]; ok {
		return nil, app_errors.ErrAlreadyEnrolled
	}

	s.enrollmentID++
	enrollment := models.Enrollment{
		ID:             s.enrollmentID,
		UserID:         userID,
		CourseID:       courseID,
		EnrollmentDate: time.Now().UTC(),
	}
	s.enrollments[key] = enrollment
	return &enrollment, nil
}

func (s *Store) Enrollment(_ context.Context, userID, courseID int64) (*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enrollment, ok := s.enrollments[enrollKey{userID: userID, courseID: courseID}]
	if !ok {
		return nil, app_errors.ErrEnrollmentNotFound
	}
	return &enrollment, nil
}

func (s *Store) sortedEnrollments() []models.Enrollment {
	enrollments := make([]models.Enrollment, 0, len(s.enrollments))
	for _, e := range s.enrollments {
		enrollments = append(enrollments, e)
	}
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].ID < enrollments[j].ID })
	return enrollments
}

func (s *Store) ListEnrollmentsByUser(_ context.Context, userID int64) ([]models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Enrollment
	for _, e := range s.sortedEnrollments() {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *Store) ListEnrollmentsByCourse(_ context.Context, courseID int64) ([]models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Enrollment
	for _, e := range s.sortedEnrollments() {
		if e.CourseID == courseID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *Store) UpdateEnrollmentProgress(_ context.Context, userID, courseID int64, progress int, completed bool) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := enrollKey{userID: userID, courseID: courseID}
	enrollment, ok := s.enrollments[key]
	if !ok {
		return nil, app_errors.ErrEnrollmentNotFound
	}
	enrollment.Progress = progress
	enrollment.Completed = completed
	s.enrollments[key] = enrollment
	return &enrollment, nil
}

func (s *Store) AssignCertificate(_ context.Context, userID, courseID int64, certificateID string) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := enrollKey{userID: userID, courseID: courseID}
	enrollment, ok := s.enrollments[key]
	if !ok {
		return nil, app_errors.ErrEnrollmentNotFound
	}
	enrollment.CertificateID = certificateID
	s.enrollments[key] = enrollment
	return &enrollment, nil
}

func (s *Store) CountEnrollments(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.enrollments), nil
}

// Material operations

func (s *Store) CreateMaterial(_ context.Context, material models.Material) (*models.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.materialID++
	material.ID = s.materialID
	material.CreatedAt = time.Now().UTC()
	s.materials[material.ID] = material
	return &material, nil
}

func (s *Store) MaterialByID(_ context.Context, id int64) (*models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	material, ok := s.materials[id]
	if !ok {
		return nil, app_errors.ErrMaterialNotFound
	}
	return &material, nil
}

func (s *Store) ListMaterialsByCourse(_ context.Context, courseID int64) ([]models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var materials []models.Material
	for _, id := range sortedIDs(s.materials) {
		if s.materials[id].CourseID == courseID {
			materials = append(materials, s.materials[id])
		}
	}
	sort.SliceStable(materials, func(i, j int) bool { return materials[i].OrderIndex < materials[j].OrderIndex })
	return materials, nil
}

// Review operations

func (s *Store) CreateReview(_ context.Context, review models.Review) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reviewID++
	review.ID = s.reviewID
	review.CreatedAt = time.Now().UTC()
	s.reviews[review.ID] = review
	return &review, nil
}

func (s *Store) ReviewByID(_ context.Context, id int64) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, app_errors.ErrReviewNotFound
	}
	return &review, nil
}

func (s *Store) ListReviewsByCourse(_ context.Context, courseID int64) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []models.Review
	for _, id := range sortedIDs(s.reviews) {
		if s.reviews[id].CourseID == courseID {
			reviews = append(reviews, s.reviews[id])
		}
	}
	return reviews, nil
}

// Certificate operations

func (s *Store) CreateCertificate(_ context.Context, certificate models.Certificate) (*models.Certificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	certificate.IssueDate = time.Now().UTC()
	s.certificates[certificate.ID] = certificate
	s.certOrder = append(s.certOrder, certificate.ID)
	return &certificate, nil
}

func (s *Store) CertificateByID(_ context.Context, id string) (*models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	certificate, ok := s.certificates[id]
	if !ok {
		return nil, app_errors.ErrCertificateNotFound
	}
	return &certificate, nil
}

func (s *Store) ListCertificatesByUser(_ context.Context, userID int64) ([]models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var certificates []models.Certificate
	for _, id := range s.certOrder {
		certificate, ok := s.certificates[id]
		if ok && certificate.UserID == userID {
			certificates = append(certificates, certificate)
		}
	}
	return certificates, nil
}
