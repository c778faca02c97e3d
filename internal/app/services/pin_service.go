package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/app/repositories"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/logger"
	"github.com/nonso/acadport/internal/pkg/normalize"
)

const (
	// pinSuffixLen keeps codes short enough to type from a printed card.
	pinSuffixLen = 8
	// pinAlphabet omits 0/O and 1/I/L.
	pinAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	// maxPinBatchRetries bounds the collision-retry loop. Collisions are
	// vanishingly rare at this suffix length; exhausting the retries means
	// something else is wrong.
	maxPinBatchRetries = 5
)

// PinService is the pin ledger: it issues, lists, and redeems single-use
// course registration pins.
type PinService struct {
	pins    PinStore
	courses CourseStore
}

// NewPinService wires the pin ledger.
func NewPinService(pins PinStore, courses CourseStore) *PinService {
	return &PinService{pins: pins, courses: courses}
}

// Generate creates count pins bound to a catalog course. Each code is the
// course prefix plus a random suffix; if the batch hits the code unique
// index the whole batch is regenerated with fresh randomness.
func (s *PinService) Generate(ctx context.Context, courseCode string, count int) ([]*models.CoursePin, error) {
	if count < 1 {
		return nil, apperrors.NewValidation("count", "count must be at least 1")
	}
	if strings.TrimSpace(courseCode) == "" {
		return nil, apperrors.NewValidation("courseCode", "course code is required")
	}

	course, err := s.courses.GetByCode(ctx, courseCode)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxPinBatchRetries; attempt++ {
		pins := make([]*models.CoursePin, count)
		for i := range pins {
			suffix, err := randomPinSuffix()
			if err != nil {
				return nil, fmt.Errorf("failed to generate pin suffix: %w", err)
			}
			pins[i] = &models.CoursePin{
				Code:        course.Code + "-" + suffix,
				CourseCode:  course.Code,
				CourseTitle: course.Title,
			}
		}

		err = s.pins.CreateBatch(ctx, pins)
		if err == nil {
			return pins, nil
		}
		if err != repositories.ErrPinCodeCollision {
			return nil, err
		}
		logger.Warn().Int("attempt", attempt).Str("courseCode", course.Code).Msg("Pin batch collision, regenerating")
	}

	return nil, fmt.Errorf("pin generation exhausted %d retries for course %s", maxPinBatchRetries, course.Code)
}

// Redeem flips a pin to used if it matches the expected course and is
// still unused. Mismatches come back as their not-applicable sentinels.
func (s *PinService) Redeem(ctx context.Context, pinCode, expectedCourseCode string) error {
	pinCode = normalize.RegNumber(pinCode)
	if pinCode == "" {
		return apperrors.NewValidation("pinCode", "pin code is required")
	}
	return s.pins.Redeem(ctx, pinCode, expectedCourseCode)
}

// List returns pins, optionally scoped to a course code.
func (s *PinService) List(ctx context.Context, courseCode string) ([]*models.CoursePin, error) {
	return s.pins.List(ctx, strings.TrimSpace(courseCode))
}

// Delete removes one pin from the ledger.
func (s *PinService) Delete(ctx context.Context, id int64) error {
	return s.pins.Delete(ctx, id)
}

// DeleteAll clears the ledger, returning how many pins were removed.
// Completed registrations are unaffected.
func (s *PinService) DeleteAll(ctx context.Context) (int64, error) {
	return s.pins.DeleteAll(ctx)
}

func randomPinSuffix() (string, error) {
	buf := make([]byte, pinSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = pinAlphabet[int(b)%len(pinAlphabet)]
	}
	return string(buf), nil
}
