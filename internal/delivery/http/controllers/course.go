package controllers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"EduAble/internal/models"
	"EduAble/internal/service/course"
	"EduAble/pkg/logger"
)

type CourseService interface {
	CreateCourse(ctx context.Context, actor *models.User, input course.CreateCourseInput) (*models.Course, error)
	Course(ctx context.Context, id int64) (*models.Course, error)
	Courses(ctx context.Context, category, difficulty string) ([]models.Course, error)
	SearchCourses(ctx context.Context, query string, size int) ([]models.Course, error)
	TeacherCourses(ctx context.Context, teacherID int64) ([]models.Course, error)
	UpdateCourse(ctx context.Context, actor *models.User, id int64, upd models.CourseUpdate) (*models.Course, error)
	DeleteCourse(ctx context.Context, actor *models.User, id int64) error
	Materials(ctx context.Context, courseID int64) ([]models.Material, error)
	CreateMaterial(ctx context.Context, actor *models.User, courseID int64, input course.CreateMaterialInput) (*models.Material, error)
	UploadThumbnail(ctx context.Context, actor *models.User, courseID int64, filename string,
		reader io.Reader, size int64, contentType string) (string, error)
}

type CourseHandler struct {
	CourseService CourseService
	log           logger.Log
}

func NewCourseHandler(l logger.Log, courseService CourseService) *CourseHandler {
	return &CourseHandler{
		CourseService: courseService,
		log:           l,
	}
}

const defaultSearchSize = 20

func courseIDParam(c *gin.Context) (int64, bool) {
	raw, ok := c.Params.Get("course_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id is required"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id must be an integer"})
		return 0, false
	}
	return id, true
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.CourseService.Courses(c.Request.Context(), c.Query("category"), c.Query("difficulty"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) SearchCourses(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	courses, err := h.CourseService.SearchCourses(c.Request.Context(), query, defaultSearchSize)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) CourseByID(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	found, err := h.CourseService.Course(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

type newCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Category    string `json:"category" binding:"required"`
	Difficulty  string `json:"difficulty" binding:"required"`
	Price       int    `json:"price"`
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var input newCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.CourseService.CreateCourse(c.Request.Context(), CurrentUser(c), course.CreateCourseInput{
		Title:       input.Title,
		Description: input.Description,
		Thumbnail:   input.Thumbnail,
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		Price:       input.Price,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type updateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
	Category    *string `json:"category"`
	Difficulty  *string `json:"difficulty"`
	Price       *int    `json:"price"`
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	var input updateCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.CourseService.UpdateCourse(c.Request.Context(), CurrentUser(c), id, models.CourseUpdate{
		Title:       input.Title,
		Description: input.Description,
		Thumbnail:   input.Thumbnail,
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		Price:       input.Price,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	if err := h.CourseService.DeleteCourse(c.Request.Context(), CurrentUser(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

func (h *CourseHandler) MyCourses(c *gin.Context) {
	courses, err := h.CourseService.TeacherCourses(c.Request.Context(), CurrentUser(c).ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) ListMaterials(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	materials, err := h.CourseService.Materials(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

type newMaterialRequest struct {
	Title      string `json:"title" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Content    string `json:"content"`
	OrderIndex int    `json:"orderIndex"`
}

func (h *CourseHandler) CreateMaterial(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	var input newMaterialRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.CourseService.CreateMaterial(c.Request.Context(), CurrentUser(c), id, course.CreateMaterialInput{
		Title:      input.Title,
		Type:       input.Type,
		Content:    input.Content,
		OrderIndex: input.OrderIndex,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CourseHandler) UploadThumbnail(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thumbnail file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer file.Close()

	url, err := h.CourseService.UploadThumbnail(
		c.Request.Context(),
		CurrentUser(c),
		id,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
