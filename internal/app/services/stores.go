package services

import (
	"context"

	"github.com/nonso/acadport/internal/app/models"
)

// Store interfaces narrow the persistence layer to what each workflow
// needs. The pgx repositories satisfy them in production; tests substitute
// in-memory fakes.

// IdentityStore persists student identities.
type IdentityStore interface {
	Create(ctx context.Context, ident *models.StudentIdentity) error
	GetByEmail(ctx context.Context, email string) (*models.StudentIdentity, error)
	EmailOrPhoneExists(ctx context.Context, email, phone string) (bool, error)
	List(ctx context.Context) ([]*models.StudentIdentity, error)
	UpdatePassport(ctx context.Context, email, passportURL string) error
}

// ProfileStore persists extended student profiles.
type ProfileStore interface {
	Upsert(ctx context.Context, p *models.StudentProfile) error
	GetByEmail(ctx context.Context, email string) (*models.StudentProfile, error)
	GetByMatric(ctx context.Context, matric string) (*models.StudentProfile, error)
	List(ctx context.Context) ([]*models.StudentProfile, error)
}

// DocumentStore persists per-student document bundles.
type DocumentStore interface {
	Upsert(ctx context.Context, d *models.DocumentBundle) error
	GetByIdentityID(ctx context.Context, identityID int64) (*models.DocumentBundle, error)
	MapByIdentityIDs(ctx context.Context, identityIDs []int64) (map[int64]*models.DocumentBundle, error)
}

// CourseStore persists the course catalog.
type CourseStore interface {
	Create(ctx context.Context, c *models.Course) error
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

// PinStore persists single-use registration pins.
type PinStore interface {
	CreateBatch(ctx context.Context, pins []*models.CoursePin) error
	Redeem(ctx context.Context, pinCode, expectedCourseCode string) error
	List(ctx context.Context, courseCode string) ([]*models.CoursePin, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// EnrollmentStore persists course registrations. CreateWithPin must redeem
// the pin and insert the registration atomically.
type EnrollmentStore interface {
	CreateWithPin(ctx context.Context, e *models.Enrollment) error
	Exists(ctx context.Context, matric, courseCode string) (bool, error)
	ListByMatric(ctx context.Context, matric string) ([]*models.Enrollment, error)
}

// PaymentStore persists the append-only payment ledger.
type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	ListByEmail(ctx context.Context, email string) ([]*models.Payment, error)
}

// ResultStore persists graded results.
type ResultStore interface {
	Create(ctx context.Context, res *models.Result) error
	CreateBatch(ctx context.Context, results []*models.Result) error
	ListByMatric(ctx context.Context, matric string) ([]*models.Result, error)
}
