package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances.
type Repositories struct {
	Identities  *IdentityRepository
	Profiles    *ProfileRepository
	Documents   *DocumentRepository
	Courses     *CourseRepository
	Pins        *PinRepository
	Enrollments *EnrollmentRepository
	Payments    *PaymentRepository
	Results     *ResultRepository
}

// NewRepositories initializes all repositories over one pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Identities:  NewIdentityRepository(db),
		Profiles:    NewProfileRepository(db),
		Documents:   NewDocumentRepository(db),
		Courses:     NewCourseRepository(db),
		Pins:        NewPinRepository(db),
		Enrollments: NewEnrollmentRepository(db),
		Payments:    NewPaymentRepository(db),
		Results:     NewResultRepository(db),
	}
}

// pgsb is the shared statement builder with $n placeholders.
var pgsb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
