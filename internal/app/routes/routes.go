package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/controllers"
	"github.com/nonso/acadport/internal/middleware"
	"github.com/nonso/acadport/internal/pkg/auth"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Student    *controllers.StudentController
	Course     *controllers.CourseController
	Pin        *controllers.PinController
	Enrollment *controllers.EnrollmentController
	Payment    *controllers.PaymentController
	Result     *controllers.ResultController
	Export     *controllers.ExportController
}

// SetupRouter configures all application routes.
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	metrics *middleware.Metrics,
) {
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.Student.Register)
		authGroup.POST("/login", c.Auth.Login)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", c.Course.List)
		courses.GET("/:code", c.Course.Get)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students")
		{
			students.GET("", c.Student.List)
			students.GET("/:email", c.Student.Get)
			students.PUT("/:email/profile", c.Student.UpsertProfile)
			students.PUT("/:email/documents", c.Student.UpsertDocuments)
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.POST("", c.Enrollment.Register)
			enrollments.GET("/:matric", c.Enrollment.ListByMatric)
		}

		authenticated.GET("/payments/:email", c.Payment.ListByEmail)
		authenticated.GET("/results/:matric", c.Result.ListByMatric)

		exports := authenticated.Group("/exports")
		{
			exports.GET("/students.pdf", c.Export.StudentListing)
			exports.GET("/students/:email", c.Export.StudentSheet)
		}

		// --- Admin-only routes ---
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RequireRole(auth.RoleAdmin))
		{
			admin.POST("/courses", c.Course.Create)
			admin.DELETE("/courses/:id", c.Course.Delete)

			pins := admin.Group("/pins")
			{
				pins.POST("", c.Pin.Generate)
				pins.GET("", c.Pin.List)
				pins.DELETE("/:id", c.Pin.Delete)
				pins.DELETE("", c.Pin.DeleteAll)
			}

			admin.POST("/payments", c.Payment.Record)
			admin.POST("/results", c.Result.Record)
			admin.POST("/results/import", c.Result.Import)
		}
	}
}
