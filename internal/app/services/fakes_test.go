package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nonso/acadport/internal/app/models"
	"github.com/nonso/acadport/internal/app/repositories"
	"github.com/nonso/acadport/internal/pkg/apperrors"
	"github.com/nonso/acadport/internal/pkg/normalize"
)

// In-memory store fakes. They enforce the same uniqueness and atomicity
// rules the SQL schema does, so workflow tests exercise real semantics.

type fakeIdentityStore struct {
	nextID    int64
	byEmail   map[string]*models.StudentIdentity
	phoneUsed map[string]bool

	// createErr makes the next Create fail, standing in for a unique
	// index rejecting an insert that the pre-check let through.
	createErr error
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{
		byEmail:   make(map[string]*models.StudentIdentity),
		phoneUsed: make(map[string]bool),
	}
}

func (f *fakeIdentityStore) Create(_ context.Context, ident *models.StudentIdentity) error {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	if _, ok := f.byEmail[ident.Email]; ok {
		return apperrors.ErrEmailExists
	}
	if f.phoneUsed[ident.Phone] {
		return apperrors.ErrPhoneExists
	}
	f.nextID++
	ident.ID = f.nextID
	ident.CreatedAt = time.Now()
	f.byEmail[ident.Email] = ident
	f.phoneUsed[ident.Phone] = true
	return nil
}

func (f *fakeIdentityStore) GetByEmail(_ context.Context, email string) (*models.StudentIdentity, error) {
	if ident, ok := f.byEmail[email]; ok {
		return ident, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeIdentityStore) EmailOrPhoneExists(_ context.Context, email, phone string) (bool, error) {
	_, emailTaken := f.byEmail[email]
	return emailTaken || f.phoneUsed[phone], nil
}

func (f *fakeIdentityStore) List(_ context.Context) ([]*models.StudentIdentity, error) {
	out := make([]*models.StudentIdentity, 0, len(f.byEmail))
	for _, ident := range f.byEmail {
		out = append(out, ident)
	}
	return out, nil
}

func (f *fakeIdentityStore) UpdatePassport(_ context.Context, email, passportURL string) error {
	ident, ok := f.byEmail[email]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	ident.PassportURL = passportURL
	return nil
}

type fakeProfileStore struct {
	nextID  int64
	byEmail map[string]*models.StudentProfile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{byEmail: make(map[string]*models.StudentProfile)}
}

func keepExisting(incoming, existing string) string {
	if incoming == "" {
		return existing
	}
	return incoming
}

func (f *fakeProfileStore) Upsert(_ context.Context, p *models.StudentProfile) error {
	existing, ok := f.byEmail[p.Email]
	if !ok {
		f.nextID++
		p.ID = f.nextID
		p.UpdatedAt = time.Now()
		cp := *p
		f.byEmail[p.Email] = &cp
		return nil
	}

	existing.Surname = keepExisting(p.Surname, existing.Surname)
	existing.FirstName = keepExisting(p.FirstName, existing.FirstName)
	existing.MiddleName = keepExisting(p.MiddleName, existing.MiddleName)
	existing.Phone = keepExisting(p.Phone, existing.Phone)
	existing.Department = keepExisting(p.Department, existing.Department)
	existing.Level = keepExisting(p.Level, existing.Level)
	existing.RegNumber = keepExisting(p.RegNumber, existing.RegNumber)
	existing.MatricNumber = keepExisting(p.MatricNumber, existing.MatricNumber)
	existing.NextOfKin = keepExisting(p.NextOfKin, existing.NextOfKin)
	existing.NextOfKinPhone = keepExisting(p.NextOfKinPhone, existing.NextOfKinPhone)
	existing.Address = keepExisting(p.Address, existing.Address)
	existing.UpdatedAt = time.Now()
	*p = *existing
	return nil
}

func (f *fakeProfileStore) GetByEmail(_ context.Context, email string) (*models.StudentProfile, error) {
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func (f *fakeProfileStore) GetByMatric(_ context.Context, matric string) (*models.StudentProfile, error) {
	for _, p := range f.byEmail {
		if p.MatricNumber == matric {
			return p, nil
		}
	}
	return nil, apperrors.ErrProfileNotFound
}

func (f *fakeProfileStore) List(_ context.Context) ([]*models.StudentProfile, error) {
	out := make([]*models.StudentProfile, 0, len(f.byEmail))
	for _, p := range f.byEmail {
		out = append(out, p)
	}
	return out, nil
}

type fakeDocumentStore struct {
	nextID     int64
	byIdentity map[int64]*models.DocumentBundle
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{byIdentity: make(map[int64]*models.DocumentBundle)}
}

func (f *fakeDocumentStore) Upsert(_ context.Context, d *models.DocumentBundle) error {
	existing, ok := f.byIdentity[d.IdentityID]
	if !ok {
		f.nextID++
		d.ID = f.nextID
		d.UpdatedAt = time.Now()
		cp := *d
		f.byIdentity[d.IdentityID] = &cp
		return nil
	}

	existing.BirthCertificateURL = keepExisting(d.BirthCertificateURL, existing.BirthCertificateURL)
	existing.OLevelResultURL = keepExisting(d.OLevelResultURL, existing.OLevelResultURL)
	existing.JAMBResultURL = keepExisting(d.JAMBResultURL, existing.JAMBResultURL)
	existing.OLevelExamType = keepExisting(d.OLevelExamType, existing.OLevelExamType)
	existing.OLevelExamNumber = keepExisting(d.OLevelExamNumber, existing.OLevelExamNumber)
	existing.OLevelExamYear = keepExisting(d.OLevelExamYear, existing.OLevelExamYear)
	existing.JAMBRegNumber = keepExisting(d.JAMBRegNumber, existing.JAMBRegNumber)
	if d.JAMBScore > 0 {
		existing.JAMBScore = d.JAMBScore
	}
	existing.UpdatedAt = time.Now()
	*d = *existing
	return nil
}

func (f *fakeDocumentStore) GetByIdentityID(_ context.Context, identityID int64) (*models.DocumentBundle, error) {
	return f.byIdentity[identityID], nil
}

func (f *fakeDocumentStore) MapByIdentityIDs(_ context.Context, ids []int64) (map[int64]*models.DocumentBundle, error) {
	out := make(map[int64]*models.DocumentBundle)
	for _, id := range ids {
		if d, ok := f.byIdentity[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

type fakeCourseStore struct {
	nextID int64
	byCode map[string]*models.Course
}

func newFakeCourseStore(courses ...*models.Course) *fakeCourseStore {
	f := &fakeCourseStore{byCode: make(map[string]*models.Course)}
	for _, c := range courses {
		_ = f.Create(context.Background(), c)
	}
	return f
}

func (f *fakeCourseStore) Create(_ context.Context, c *models.Course) error {
	key := normalize.Fold(c.Code)
	if _, ok := f.byCode[key]; ok {
		return apperrors.ErrCourseCodeExists
	}
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	f.byCode[key] = c
	return nil
}

func (f *fakeCourseStore) GetByCode(_ context.Context, code string) (*models.Course, error) {
	if c, ok := f.byCode[normalize.Fold(code)]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) List(_ context.Context) ([]*models.Course, error) {
	out := make([]*models.Course, 0, len(f.byCode))
	for _, c := range f.byCode {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int64) error {
	for key, c := range f.byCode {
		if c.ID == id {
			delete(f.byCode, key)
			return nil
		}
	}
	return apperrors.ErrCourseNotFound
}

type fakePinStore struct {
	nextID int64
	byCode map[string]*models.CoursePin
	// collideFirst makes the next CreateBatch report a code collision, to
	// exercise the regeneration loop.
	collideFirst int
}

func newFakePinStore() *fakePinStore {
	return &fakePinStore{byCode: make(map[string]*models.CoursePin)}
}

func (f *fakePinStore) CreateBatch(_ context.Context, pins []*models.CoursePin) error {
	if f.collideFirst > 0 {
		f.collideFirst--
		return repositories.ErrPinCodeCollision
	}
	for _, p := range pins {
		if _, ok := f.byCode[p.Code]; ok {
			return repositories.ErrPinCodeCollision
		}
	}
	for _, p := range pins {
		f.nextID++
		p.ID = f.nextID
		p.CreatedAt = time.Now()
		f.byCode[p.Code] = p
	}
	return nil
}

func (f *fakePinStore) Redeem(_ context.Context, pinCode, expectedCourseCode string) error {
	p, ok := f.byCode[pinCode]
	switch {
	case !ok:
		return apperrors.ErrPinNotFound
	case p.Used:
		return apperrors.ErrPinAlreadyUsed
	case !strings.EqualFold(p.CourseCode, expectedCourseCode):
		return apperrors.ErrPinCourseMismatch
	}
	now := time.Now()
	p.Used = true
	p.UsedAt = &now
	return nil
}

func (f *fakePinStore) List(_ context.Context, courseCode string) ([]*models.CoursePin, error) {
	var out []*models.CoursePin
	for _, p := range f.byCode {
		if courseCode == "" || strings.EqualFold(p.CourseCode, courseCode) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePinStore) Delete(_ context.Context, id int64) error {
	for code, p := range f.byCode {
		if p.ID == id {
			delete(f.byCode, code)
			return nil
		}
	}
	return apperrors.ErrPinNotFound
}

func (f *fakePinStore) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(f.byCode))
	f.byCode = make(map[string]*models.CoursePin)
	return n, nil
}

// fakeEnrollmentStore couples to a pin store so CreateWithPin keeps the
// same both-or-neither semantics as the SQL transaction.
type fakeEnrollmentStore struct {
	nextID int64
	byKey  map[string]*models.Enrollment
	pins   *fakePinStore
}

func newFakeEnrollmentStore(pins *fakePinStore) *fakeEnrollmentStore {
	return &fakeEnrollmentStore{byKey: make(map[string]*models.Enrollment), pins: pins}
}

func enrollKey(matric, courseCode string) string {
	return matric + "|" + strings.ToUpper(courseCode)
}

func (f *fakeEnrollmentStore) CreateWithPin(ctx context.Context, e *models.Enrollment) error {
	// Duplicate check first: a rolled-back transaction leaves the pin
	// untouched, so the fake must not consume it either.
	if _, ok := f.byKey[enrollKey(e.MatricNumber, e.CourseCode)]; ok {
		return apperrors.ErrAlreadyRegistered
	}
	if err := f.pins.Redeem(ctx, e.PinCode, e.CourseCode); err != nil {
		return err
	}
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	f.byKey[enrollKey(e.MatricNumber, e.CourseCode)] = e
	return nil
}

func (f *fakeEnrollmentStore) Exists(_ context.Context, matric, courseCode string) (bool, error) {
	_, ok := f.byKey[enrollKey(matric, courseCode)]
	return ok, nil
}

func (f *fakeEnrollmentStore) ListByMatric(_ context.Context, matric string) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.byKey {
		if e.MatricNumber == matric {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePaymentStore struct {
	nextID int64
	byRef  map[string]*models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{byRef: make(map[string]*models.Payment)}
}

func (f *fakePaymentStore) Create(_ context.Context, p *models.Payment) error {
	if _, ok := f.byRef[p.Reference]; ok {
		return apperrors.ErrPaymentRefExists
	}
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.byRef[p.Reference] = p
	return nil
}

func (f *fakePaymentStore) ListByEmail(_ context.Context, email string) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.byRef {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeResultStore struct {
	nextID int64
	byKey  map[string]*models.Result
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{byKey: make(map[string]*models.Result)}
}

func resultKey(matric, courseCode string) string {
	return matric + "|" + strings.ToUpper(courseCode)
}

func (f *fakeResultStore) Create(_ context.Context, res *models.Result) error {
	key := resultKey(res.MatricNumber, res.CourseCode)
	if _, ok := f.byKey[key]; ok {
		return apperrors.ErrDuplicateResultEntry
	}
	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = time.Now()
	f.byKey[key] = res
	return nil
}

func (f *fakeResultStore) CreateBatch(ctx context.Context, results []*models.Result) error {
	// All-or-nothing, mirroring the SQL transaction.
	seen := make(map[string]bool, len(results))
	for _, res := range results {
		key := resultKey(res.MatricNumber, res.CourseCode)
		if seen[key] {
			return fmt.Errorf("%w: %s/%s", apperrors.ErrDuplicateResultEntry, res.MatricNumber, res.CourseCode)
		}
		if _, ok := f.byKey[key]; ok {
			return fmt.Errorf("%w: %s/%s", apperrors.ErrDuplicateResultEntry, res.MatricNumber, res.CourseCode)
		}
		seen[key] = true
	}
	for _, res := range results {
		if err := f.Create(ctx, res); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeResultStore) ListByMatric(_ context.Context, matric string) ([]*models.Result, error) {
	var out []*models.Result
	for _, res := range f.byKey {
		if res.MatricNumber == matric {
			out = append(out, res)
		}
	}
	return out, nil
}

// fakeStorage satisfies filestorage.Storage. fail switches it into a
// collaborator that refuses every store call.
type fakeStorage struct {
	nextN  int
	fail   bool
	stored map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{stored: make(map[string][]byte)}
}

func (f *fakeStorage) Store(_ context.Context, content []byte, folder, filename string) (string, error) {
	if f.fail {
		return "", errors.New("storage unavailable")
	}
	f.nextN++
	url := fmt.Sprintf("http://cdn.test/%s/%d-%s", folder, f.nextN, filename)
	f.stored[url] = content
	return url, nil
}

func (f *fakeStorage) Remove(_ context.Context, url string) error {
	delete(f.stored, url)
	return nil
}
