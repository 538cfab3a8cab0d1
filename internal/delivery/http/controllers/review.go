package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"EduAble/internal/models"
	"EduAble/pkg/logger"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID, courseID int64, rating int, comment string) (*models.Review, error)
	CourseReviews(ctx context.Context, courseID int64) ([]models.Review, error)
}

type ReviewHandler struct {
	ReviewService ReviewService
	log           logger.Log
}

func NewReviewHandler(l logger.Log, reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		ReviewService: reviewService,
		log:           l,
	}
}

type newReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	var input newReviewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.ReviewService.CreateReview(c.Request.Context(), CurrentUser(c).ID, id, input.Rating, input.Comment)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) CourseReviews(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	reviews, err := h.ReviewService.CourseReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
