package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/app/services"
	"github.com/nonso/acadport/internal/middleware"
)

// ExportController serves PDF exports.
type ExportController struct {
	exportService *services.ExportService
}

// NewExportController creates an ExportController.
func NewExportController(exportService *services.ExportService) *ExportController {
	return &ExportController{exportService: exportService}
}

// StudentSheet renders one student's info sheet
// @Summary Export a student sheet
// @Description Renders a single student's information sheet as PDF
// @Tags exports
// @Produce application/pdf
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {file} file "PDF document"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /exports/students/{email} [get]
func (c *ExportController) StudentSheet(ctx *gin.Context) {
	email := ctx.Param("email")
	out, err := c.exportService.StudentSheet(ctx, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", email+".pdf"))
	ctx.Data(http.StatusOK, "application/pdf", out)
}

// StudentListing renders the filtered student listing
// @Summary Export the student listing
// @Description Renders the filtered student set as a PDF table
// @Tags exports
// @Produce application/pdf
// @Security BearerAuth
// @Param q query string false "Free-text match on name, matric number, email, or phone"
// @Param department query string false "Exact department filter"
// @Param level query string false "Exact level filter"
// @Success 200 {file} file "PDF document"
// @Router /exports/students.pdf [get]
func (c *ExportController) StudentListing(ctx *gin.Context) {
	var q dto.StudentListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	out, err := c.exportService.StudentListing(ctx, q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="students.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", out)
}
