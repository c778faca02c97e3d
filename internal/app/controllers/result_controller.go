package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/app/services"
	"github.com/nonso/acadport/internal/middleware"
	"github.com/nonso/acadport/internal/pkg/apperrors"
)

// ResultController handles result ingestion.
type ResultController struct {
	resultService *services.ResultService
	metrics       *middleware.Metrics
}

// NewResultController creates a ResultController.
func NewResultController(resultService *services.ResultService, metrics *middleware.Metrics) *ResultController {
	return &ResultController{resultService: resultService, metrics: metrics}
}

// Record persists one result
// @Summary Record a result
// @Description Validates and persists a single result; the grade is derived from the score when absent
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResultRequest true "Result details"
// @Success 201 {object} dto.APIResponse{data=models.Result} "Result recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown course"
// @Failure 409 {object} dto.ErrorResponse "Result already recorded for this course"
// @Router /results [post]
func (c *ResultController) Record(ctx *gin.Context) {
	var req dto.ResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid result data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	if err := middleware.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.resultService.Record(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.metrics.ResultsImported.Inc()
	ctx.JSON(http.StatusCreated, dto.NewResponse(result))
}

// Import ingests a spreadsheet of results
// @Summary Import results
// @Description Ingests a whole spreadsheet atomically; any invalid row aborts the import
// @Tags results
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Results spreadsheet (xlsx)"
// @Success 201 {object} dto.APIResponse "Results imported"
// @Failure 400 {object} dto.ErrorResponse "Invalid row in spreadsheet"
// @Failure 409 {object} dto.ErrorResponse "Duplicate result in batch"
// @Failure 422 {object} dto.ErrorResponse "File is not a readable spreadsheet"
// @Router /results/import [post]
func (c *ResultController) Import(ctx *gin.Context) {
	content, _, err := readFormFile(ctx, "file")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if len(content) == 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidation("file", "a results spreadsheet is required"))
		return
	}

	n, err := c.resultService.Import(ctx, content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.metrics.ResultsImported.Add(float64(n))
	ctx.JSON(http.StatusCreated, dto.NewResponse(gin.H{"imported": n}))
}

// ListByMatric returns one student's results
// @Summary List a student's results
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param matric path string true "Matriculation number"
// @Success 200 {object} dto.APIResponse{data=[]models.Result} "Results retrieved"
// @Router /results/{matric} [get]
func (c *ResultController) ListByMatric(ctx *gin.Context) {
	results, err := c.resultService.ListByMatric(ctx, ctx.Param("matric"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(results))
}
