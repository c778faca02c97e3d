package services

import (
	"context"
	"strings"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/normalize"
)

// PaymentService records and lists append-only payment ledger entries.
type PaymentService struct {
	payments PaymentStore
}

// NewPaymentService wires the payment ledger.
func NewPaymentService(payments PaymentStore) *PaymentService {
	return &PaymentService{payments: payments}
}

// Record appends one entry. The reference is the caller-supplied unique
// payment id; resubmitting it is a conflict, never a second row.
func (s *PaymentService) Record(ctx context.Context, req dto.PaymentRequest) (*models.Payment, error) {
	if strings.TrimSpace(req.Reference) == "" {
		return nil, apperrors.NewValidation("reference", "payment reference is required")
	}
	if !normalize.ValidEmail(req.Email) {
		return nil, apperrors.NewValidation("email", "a valid email address is required")
	}
	if req.AmountNGN <= 0 {
		return nil, apperrors.NewValidation("amount", "amount must be positive")
	}

	payment := &models.Payment{
		Reference: strings.TrimSpace(req.Reference),
		Email:     normalize.Email(req.Email),
		Purpose:   strings.TrimSpace(req.Purpose),
		AmountNGN: req.AmountNGN,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListByEmail returns all payments for one student email.
func (s *PaymentService) ListByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	if !normalize.ValidEmail(email) {
		return nil, apperrors.NewValidation("email", "a valid email address is required")
	}
	return s.payments.ListByEmail(ctx, normalize.Email(email))
}
