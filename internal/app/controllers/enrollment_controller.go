package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/app/services"
	"github.com/nonso/acadport/internal/middleware"
)

// EnrollmentController handles pin-gated course registration.
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	metrics           *middleware.Metrics
}

// NewEnrollmentController creates an EnrollmentController.
func NewEnrollmentController(enrollmentService *services.EnrollmentService, metrics *middleware.Metrics) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService, metrics: metrics}
}

// Register enrolls a student in a course
// @Summary Register for a course
// @Description Registers a student for a course, consuming a single-use pin
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Registration details"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Registration created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course or pin not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered or pin already used"
// @Failure 422 {object} dto.ErrorResponse "Pin not valid for this course"
// @Router /enrollments [post]
func (c *EnrollmentController) Register(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	enrollment, err := c.enrollmentService.Register(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.metrics.EnrollmentsTotal.Inc()
	c.metrics.PinsRedeemedTotal.Inc()
	ctx.JSON(http.StatusCreated, dto.NewResponse(enrollment))
}

// ListByMatric returns one student's registrations
// @Summary List a student's registrations
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param matric path string true "Matriculation number"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Registrations retrieved"
// @Router /enrollments/{matric} [get]
func (c *EnrollmentController) ListByMatric(ctx *gin.Context) {
	enrollments, err := c.enrollmentService.ListByMatric(ctx, ctx.Param("matric"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(enrollments))
}
