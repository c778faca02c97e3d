package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/app/services"
	"github.com/nonso/acadport/internal/middleware"
)

// CourseController handles the course catalog.
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a CourseController.
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// Create adds a course to the catalog
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	if err := middleware.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewResponse(course))
}

// List returns the whole catalog
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved"
// @Router /courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(courses))
}

// Get resolves one course by code
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{code} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.courseService.Get(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(course))
}

// Delete removes one catalog entry
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Course ID must be a number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	if err := c.courseService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("course deleted"))
}
