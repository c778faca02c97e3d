package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/app/services"
	"github.com/nonso/acadport/internal/middleware"
)

// PinController handles the registration pin ledger.
type PinController struct {
	pinService *services.PinService
}

// NewPinController creates a PinController.
func NewPinController(pinService *services.PinService) *PinController {
	return &PinController{pinService: pinService}
}

// Generate creates a batch of pins for a course
// @Summary Generate pins
// @Description Creates a batch of single-use registration pins bound to one course
// @Tags pins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GeneratePinsRequest true "Course and batch size"
// @Success 201 {object} dto.APIResponse{data=[]models.CoursePin} "Pins generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /pins [post]
func (c *PinController) Generate(ctx *gin.Context) {
	var req dto.GeneratePinsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid pin request").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	if err := middleware.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pins, err := c.pinService.Generate(ctx, req.CourseCode, req.Count)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewResponse(pins))
}

// List returns pins, optionally scoped to a course
// @Summary List pins
// @Tags pins
// @Produce json
// @Security BearerAuth
// @Param courseCode query string false "Filter by course code"
// @Success 200 {object} dto.APIResponse{data=[]models.CoursePin} "Pins retrieved"
// @Router /pins [get]
func (c *PinController) List(ctx *gin.Context) {
	pins, err := c.pinService.List(ctx, ctx.Query("courseCode"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(pins))
}

// Delete removes one pin
// @Summary Delete a pin
// @Tags pins
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pin ID"
// @Success 200 {object} dto.APIResponse "Pin deleted"
// @Failure 404 {object} dto.ErrorResponse "Pin not found"
// @Router /pins/{id} [delete]
func (c *PinController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Pin ID must be a number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	if err := c.pinService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("pin deleted"))
}

// DeleteAll clears the pin ledger
// @Summary Delete all pins
// @Description Clears the pin ledger; completed registrations are unaffected
// @Tags pins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Ledger cleared"
// @Router /pins [delete]
func (c *PinController) DeleteAll(ctx *gin.Context) {
	n, err := c.pinService.DeleteAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(gin.H{"deleted": n}))
}
