package course

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"EduAble/internal/app_errors"
	"EduAble/internal/models"
	"EduAble/pkg/logger"
)

const maxThumbnailSizeBytes = 5 << 20

type userRepo interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

type courseRepo interface {
	CreateCourse(ctx context.Context, course models.Course) (*models.Course, error)
	CourseByID(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, category, difficulty string) ([]models.Course, error)
	ListCoursesByTeacher(ctx context.Context, teacherID int64) ([]models.Course, error)
	UpdateCourse(ctx context.Context, id int64, upd models.CourseUpdate) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

type materialRepo interface {
	CreateMaterial(ctx context.Context, material models.Material) (*models.Material, error)
	ListMaterialsByCourse(ctx context.Context, courseID int64) ([]models.Material, error)
}

// SearchRepo and ThumbnailRepo are optional capabilities; the app wires
// them only when the backing service is configured.
type SearchRepo interface {
	Index(ctx context.Context, course models.Course) error
	Search(ctx context.Context, query string, size int) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}

type ThumbnailRepo interface {
	UploadThumbnail(ctx context.Context, courseID int64, filename string, reader io.Reader, size int64, contentType string) (string, error)
	GetThumbnailURL(ctx context.Context, objectKey string) (string, error)
	DeleteThumbnail(ctx context.Context, objectKey string) error
}

// CourseService owns the catalog: course CRUD, materials, search and
// thumbnails. SearchRepo and ThumbnailRepo may be nil; the corresponding
// operations then report themselves unavailable.
type CourseService struct {
	log           logger.Log
	courseRepo    courseRepo
	materialRepo  materialRepo
	userRepo      userRepo
	searchRepo    SearchRepo
	thumbnailRepo ThumbnailRepo
}

func NewCourseService(log logger.Log, courses courseRepo, materials materialRepo,
	users userRepo, search SearchRepo, thumbnails ThumbnailRepo) *CourseService {
	return &CourseService{
		log:           log,
		courseRepo:    courses,
		materialRepo:  materials,
		userRepo:      users,
		searchRepo:    search,
		thumbnailRepo: thumbnails,
	}
}

type CreateCourseInput struct {
	Title       string
	Description string
	Thumbnail   string
	Category    string
	Difficulty  string
	Price       int
}

// CreateCourse persists a course owned by the acting user. The owner must
// hold a teaching role, so a course can never reference a plain student.
func (s *CourseService) CreateCourse(ctx context.Context, actor *models.User, input CreateCourseInput) (*models.Course, error) {
	if input.Title == "" || input.Category == "" || input.Price < 0 {
		return nil, app_errors.ErrValidation
	}
	if !models.ValidDifficulty(input.Difficulty) {
		return nil, app_errors.ErrValidation
	}
	if !actor.CanTeach() {
		return nil, app_errors.ErrForbidden
	}

	course, err := s.courseRepo.CreateCourse(ctx, models.Course{
		Title:       input.Title,
		Description: input.Description,
		Thumbnail:   input.Thumbnail,
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		Price:       input.Price,
		TeacherID:   actor.ID,
	})
	if err != nil {
		return nil, err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, *course); err != nil {
			s.log.ErrorErr("failed to index course", err, "course_id", course.ID)
		}
	}
	return course, nil
}

func (s *CourseService) Course(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.CourseByID(ctx, id)
}

func (s *CourseService) Courses(ctx context.Context, category, difficulty string) ([]models.Course, error) {
	if difficulty != "" && !models.ValidDifficulty(difficulty) {
		return nil, app_errors.ErrValidation
	}
	return s.courseRepo.ListCourses(ctx, category, difficulty)
}

// SearchCourses resolves a full-text query against the search index and
// loads the matching courses in relevance order.
func (s *CourseService) SearchCourses(ctx context.Context, query string, size int) ([]models.Course, error) {
	if s.searchRepo == nil {
		return nil, app_errors.ErrSearchUnavailable
	}
	ids, err := s.searchRepo.Search(ctx, query, size)
	if err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		course, err := s.courseRepo.CourseByID(ctx, id)
		if err != nil {
			s.log.ErrorErr("search: failed to load indexed course", err, "course_id", id)
			continue
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

func (s *CourseService) TeacherCourses(ctx context.Context, teacherID int64) ([]models.Course, error) {
	return s.courseRepo.ListCoursesByTeacher(ctx, teacherID)
}

// UpdateCourse applies a partial update. Only the owning teacher may update;
// the id and owner are never touched.
func (s *CourseService) UpdateCourse(ctx context.Context, actor *models.User, id int64, upd models.CourseUpdate) (*models.Course, error) {
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != actor.ID {
		return nil, app_errors.ErrForbidden
	}
	if upd.Difficulty != nil && !models.ValidDifficulty(*upd.Difficulty) {
		return nil, app_errors.ErrValidation
	}
	if upd.Price != nil && *upd.Price < 0 {
		return nil, app_errors.ErrValidation
	}

	updated, err := s.courseRepo.UpdateCourse(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, *updated); err != nil {
			s.log.ErrorErr("failed to re-index course", err, "course_id", id)
		}
	}
	return updated, nil
}

// DeleteCourse removes a course and everything hanging off it. The owner may
// delete their own course; the capability table grants admins delete-any.
func (s *CourseService) DeleteCourse(ctx context.Context, actor *models.User, id int64) error {
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return err
	}

	ownDelete := actor.Can(models.PermCourseDeleteOwn) && course.TeacherID == actor.ID
	if !ownDelete && !actor.Can(models.PermCourseDeleteAny) {
		return app_errors.ErrForbidden
	}

	if err := s.courseRepo.DeleteCourse(ctx, id); err != nil {
		return err
	}
	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			s.log.ErrorErr("failed to remove course from index", err, "course_id", id)
		}
	}
	return nil
}

func (s *CourseService) Materials(ctx context.Context, courseID int64) ([]models.Material, error) {
	return s.materialRepo.ListMaterialsByCourse(ctx, courseID)
}

type CreateMaterialInput struct {
	Title      string
	Type       string
	Content    string
	OrderIndex int
}

func (s *CourseService) CreateMaterial(ctx context.Context, actor *models.User, courseID int64, input CreateMaterialInput) (*models.Material, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != actor.ID {
		return nil, app_errors.ErrForbidden
	}
	if input.Title == "" || !models.ValidMaterialType(input.Type) || input.OrderIndex < 0 {
		return nil, app_errors.ErrValidation
	}

	return s.materialRepo.CreateMaterial(ctx, models.Material{
		CourseID:   courseID,
		Title:      input.Title,
		Type:       input.Type,
		Content:    input.Content,
		OrderIndex: input.OrderIndex,
	})
}

// UploadThumbnail stores a thumbnail image, records the object key on the
// course and returns a presigned URL for it.
func (s *CourseService) UploadThumbnail(
	ctx context.Context,
	actor *models.User,
	courseID int64,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	if s.thumbnailRepo == nil {
		return "", app_errors.ErrThumbnailsUnavailable
	}
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	if course.TeacherID != actor.ID {
		return "", app_errors.ErrForbidden
	}
	if size > maxThumbnailSizeBytes {
		return "", app_errors.ErrFileSize
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", app_errors.ErrNotImage
	}

	objectKey, err := s.thumbnailRepo.UploadThumbnail(ctx, courseID, filename, reader, size, contentType)
	if err != nil {
		s.log.ErrorErr("failed to upload thumbnail", err, "course_id", courseID)
		return "", err
	}

	if _, err := s.courseRepo.UpdateCourse(ctx, courseID, models.CourseUpdate{Thumbnail: &objectKey}); err != nil {
		s.log.ErrorErr("failed to save thumbnail key", err, "course_id", courseID)
		return "", err
	}

	url, err := s.thumbnailRepo.GetThumbnailURL(ctx, objectKey)
	if err != nil {
		s.log.ErrorErr("failed to presign thumbnail URL", err, "course_id", courseID)
		return "", err
	}
	return url, nil
}
