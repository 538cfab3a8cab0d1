package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"EduAble/internal/delivery/http/controllers"
	"EduAble/internal/metrics"
	"EduAble/internal/models"
	"EduAble/internal/service"
	"EduAble/pkg/logger"
)

func InitRoutes(l logger.Log, u service.Collection, corsOrigin, sessionCookie string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))
	r.Use(metrics.Middleware())

	statusController := controllers.NewStatusHandler()
	authController := controllers.NewAuthHandler(l, u.AuthService, sessionCookie)
	courseController := controllers.NewCourseHandler(l, u.CourseService)
	enrollmentController := controllers.NewEnrollmentHandler(l, u.EnrollmentService)
	reviewController := controllers.NewReviewHandler(l, u.ReviewService)
	adminController := controllers.NewAdminHandler(l, u.AdminService)

	r.GET("/status", statusController.Status)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api", controllers.LoggingMiddleware(l), authController.SessionMiddleware)
	{
		api.POST("/register", authController.Register)
		api.POST("/login", authController.Login)
		api.POST("/logout", authController.Logout)
		api.GET("/user", authController.Me)
		api.PATCH("/user/accessibility", controllers.RequireAuth, authController.UpdateAccessibilitySettings)

		courses := api.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/search", courseController.SearchCourses)
			courses.GET("/:course_id", courseController.CourseByID)
			courses.GET("/:course_id/materials", courseController.ListMaterials)
			courses.GET("/:course_id/reviews", reviewController.CourseReviews)

			courses.POST("/:course_id/reviews", controllers.RequireAuth, reviewController.CreateReview)

			teacherOnly := courses.Group("", controllers.RequireRoles(models.TeacherRole))
			{
				teacherOnly.POST("", courseController.CreateCourse)
				teacherOnly.PUT("/:course_id", courseController.UpdateCourse)
				teacherOnly.PUT("/:course_id/thumbnail", courseController.UploadThumbnail)
				teacherOnly.POST("/:course_id/materials", courseController.CreateMaterial)
			}

			// Ownership and the admin delete-any override are decided in the
			// service through the capability table, not by a role gate.
			courses.DELETE("/:course_id", controllers.RequireAuth, courseController.DeleteCourse)
		}

		api.POST("/enroll", controllers.RequireAuth, enrollmentController.Enroll)
		api.GET("/enrollments", controllers.RequireAuth, enrollmentController.MyEnrollments)
		api.PATCH("/enrollments/:course_id/progress", controllers.RequireAuth, enrollmentController.UpdateProgress)

		api.GET("/certificates", controllers.RequireAuth, enrollmentController.MyCertificates)
		api.GET("/certificates/:certificate_id", controllers.RequireAuth, enrollmentController.CertificateByID)

		teacher := api.Group("/teacher", controllers.RequireRoles(models.TeacherRole))
		{
			teacher.GET("/courses", courseController.MyCourses)
			teacher.GET("/courses/:course_id/enrollments", enrollmentController.CourseEnrollments)
		}

		adminGroup := api.Group("/admin", controllers.RequireRoles(models.AdminRole))
		{
			adminGroup.GET("/users", adminController.Users)
			adminGroup.PATCH("/users/:user_id/role", adminController.UpdateUserRole)
			adminGroup.GET("/analytics", adminController.Analytics)
			adminGroup.GET("/analytics/export", adminController.ExportAnalytics)
		}
	}
	return r
}
