package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/app/services"
	"github.com/nonso/acadport/internal/middleware"
)

// PaymentController handles the payment ledger.
type PaymentController struct {
	paymentService *services.PaymentService
}

// NewPaymentController creates a PaymentController.
func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// Record appends one payment entry
// @Summary Record a payment
// @Description Appends one ledger entry; resubmitting a reference is a conflict
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PaymentRequest true "Payment details"
// @Success 201 {object} dto.APIResponse{data=models.Payment} "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Payment reference already recorded"
// @Router /payments [post]
func (c *PaymentController) Record(ctx *gin.Context) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid payment data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	if err := middleware.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	payment, err := c.paymentService.Record(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewResponse(payment))
}

// ListByEmail returns one student's payments
// @Summary List a student's payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {object} dto.APIResponse{data=[]models.Payment} "Payments retrieved"
// @Router /payments/{email} [get]
func (c *PaymentController) ListByEmail(ctx *gin.Context) {
	payments, err := c.paymentService.ListByEmail(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(payments))
}
