package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/pkg/apperrors"
)

type StudentServiceSuite struct {
	suite.Suite
	ctx        context.Context
	identities *fakeIdentityStore
	profiles   *fakeProfileStore
	documents  *fakeDocumentStore
	storage    *fakeStorage
	svc        *StudentService
}

func (s *StudentServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.identities = newFakeIdentityStore()
	s.profiles = newFakeProfileStore()
	s.documents = newFakeDocumentStore()
	s.storage = newFakeStorage()
	s.svc = NewStudentService(s.identities, s.profiles, s.documents, s.storage)
}

func TestStudentServiceSuite(t *testing.T) {
	suite.Run(t, new(StudentServiceSuite))
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:            "Ada.Obi@Example.com",
		Phone:            "08031234567",
		Password:         "correct-horse",
		Surname:          "Obi",
		FirstName:        "Ada",
		Passport:         []byte("png-bytes"),
		PassportFilename: "passport.png",
	}
}

func (s *StudentServiceSuite) TestRegisterCreatesIdentity() {
	got, err := s.svc.Register(s.ctx, validRegistration())
	s.Require().NoError(err)

	s.Equal("ada.obi@example.com", got.Email)
	s.Equal("08031234567", got.Phone)
	s.Equal("Obi Ada", got.FullName)
	s.True(got.Registered)
	s.NotEmpty(got.PassportURL)

	ident, err := s.identities.GetByEmail(s.ctx, "ada.obi@example.com")
	s.Require().NoError(err)
	s.NotEqual("correct-horse", ident.PasswordHash)
}

func (s *StudentServiceSuite) TestRegisterRejectsDuplicateEmailCaseInsensitively() {
	_, err := s.svc.Register(s.ctx, validRegistration())
	s.Require().NoError(err)

	dup := validRegistration()
	dup.Email = "ADA.OBI@example.COM"
	dup.Phone = "08039999999"
	_, err = s.svc.Register(s.ctx, dup)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *StudentServiceSuite) TestRegisterRejectsDuplicatePhone() {
	_, err := s.svc.Register(s.ctx, validRegistration())
	s.Require().NoError(err)

	dup := validRegistration()
	dup.Email = "someone.else@example.com"
	_, err = s.svc.Register(s.ctx, dup)
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *StudentServiceSuite) TestRegisterRejectsBadPhone() {
	for _, phone := range []string{"0803123456", "080312345678", "0803123456a", ""} {
		in := validRegistration()
		in.Phone = phone
		_, err := s.svc.Register(s.ctx, in)
		s.Require().ErrorIs(err, apperrors.ErrValidationFailed, "phone %q", phone)
	}
}

func (s *StudentServiceSuite) TestRegisterRejectsMissingPassport() {
	in := validRegistration()
	in.Passport = nil
	_, err := s.svc.Register(s.ctx, in)
	s.Require().ErrorIs(err, apperrors.ErrValidationFailed)
}

func (s *StudentServiceSuite) TestRegisterFailsWhenStorageDown() {
	s.storage.fail = true
	_, err := s.svc.Register(s.ctx, validRegistration())
	s.Require().ErrorIs(err, apperrors.ErrFileNotAvailable)

	// No identity row may survive the failed upload.
	_, err = s.identities.GetByEmail(s.ctx, "ada.obi@example.com")
	s.Require().ErrorIs(err, apperrors.ErrStudentNotFound)
}

func (s *StudentServiceSuite) TestRegisterRemovesPassportWhenInsertLosesRace() {
	// A concurrent registration can slip between the duplicate pre-check
	// and the insert; the unique index then rejects the insert and the
	// already-stored passport must not be left behind.
	s.identities.createErr = apperrors.ErrEmailExists

	_, err := s.svc.Register(s.ctx, validRegistration())
	s.Require().ErrorIs(err, apperrors.ErrEmailExists)
	s.Empty(s.storage.stored)
}

func (s *StudentServiceSuite) TestProfileUpsertedBeforeRegistrationMergesIn() {
	_, err := s.svc.UpsertProfile(s.ctx, "ada.obi@example.com", dto.ProfileUpsertRequest{
		Department:   "Computer Science",
		Level:        "ND1",
		MatricNumber: "nd/cs/001",
	})
	s.Require().NoError(err)

	got, err := s.svc.Register(s.ctx, validRegistration())
	s.Require().NoError(err)
	s.Equal("Computer Science", got.Department)
	s.Equal("ND/CS/001", got.MatricNumber)
	s.True(got.Registered)
}

func (s *StudentServiceSuite) TestProfileUpsertKeepsStoredValuesForAbsentFields() {
	_, err := s.svc.UpsertProfile(s.ctx, "ada.obi@example.com", dto.ProfileUpsertRequest{
		Department: "Computer Science",
		Level:      "ND1",
	})
	s.Require().NoError(err)

	got, err := s.svc.UpsertProfile(s.ctx, "ada.obi@example.com", dto.ProfileUpsertRequest{
		Level: "ND2",
	})
	s.Require().NoError(err)
	s.Equal("Computer Science", got.Department)
	s.Equal("ND2", got.Level)
}

func (s *StudentServiceSuite) TestGetProfileOnlyStudent() {
	_, err := s.svc.UpsertProfile(s.ctx, "pre@example.com", dto.ProfileUpsertRequest{
		Surname:   "Bello",
		FirstName: "Musa",
	})
	s.Require().NoError(err)

	got, err := s.svc.Get(s.ctx, "pre@example.com")
	s.Require().NoError(err)
	s.False(got.Registered)
	s.Equal("Bello Musa", got.FullName)
}

func (s *StudentServiceSuite) TestGetUnknownStudent() {
	_, err := s.svc.Get(s.ctx, "nobody@example.com")
	s.Require().ErrorIs(err, apperrors.ErrStudentNotFound)
}

func (s *StudentServiceSuite) TestUpsertDocumentsRequiresIdentity() {
	_, err := s.svc.UpsertDocuments(s.ctx, "nobody@example.com", DocumentInput{
		OLevelExamType: "WAEC",
	})
	s.Require().ErrorIs(err, apperrors.ErrStudentNotFound)
}

func (s *StudentServiceSuite) TestUpsertDocumentsStoresFiles() {
	_, err := s.svc.Register(s.ctx, validRegistration())
	s.Require().NoError(err)

	bundle, err := s.svc.UpsertDocuments(s.ctx, "ada.obi@example.com", DocumentInput{
		OLevelExamType:   "WAEC",
		JAMBScore:        256,
		OLevelResult:     []byte("pdf-bytes"),
		OLevelResultName: "waec.pdf",
	})
	s.Require().NoError(err)
	s.NotEmpty(bundle.OLevelResultURL)
	s.Equal(256, bundle.JAMBScore)

	got, err := s.svc.Get(s.ctx, "ada.obi@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(got.Documents)
	s.Equal("WAEC", got.Documents.OLevelExamType)
}

func (s *StudentServiceSuite) seedCohort() {
	for i := 0; i < 5; i++ {
		in := validRegistration()
		in.Email = fmt.Sprintf("cs%d@example.com", i)
		in.Phone = fmt.Sprintf("0803000000%d", i)
		in.Surname = "Okoro"
		in.FirstName = fmt.Sprintf("Student%d", i)
		_, err := s.svc.Register(s.ctx, in)
		s.Require().NoError(err)
		_, err = s.svc.UpsertProfile(s.ctx, in.Email, dto.ProfileUpsertRequest{
			Department: "Computer Science",
			Level:      "ND1",
		})
		s.Require().NoError(err)
	}
	in := validRegistration()
	in.Email = "acct@example.com"
	in.Phone = "08031110000"
	in.Surname = "Eze"
	in.FirstName = "Ngozi"
	_, err := s.svc.Register(s.ctx, in)
	s.Require().NoError(err)
	_, err = s.svc.UpsertProfile(s.ctx, in.Email, dto.ProfileUpsertRequest{
		Department: "Accountancy",
		Level:      "ND1",
	})
	s.Require().NoError(err)
}

func (s *StudentServiceSuite) TestSearchFiltersDepartmentCaseInsensitively() {
	s.seedCohort()

	got, err := s.svc.Search(s.ctx, dto.StudentListQuery{Department: "computer science"})
	s.Require().NoError(err)
	s.Len(got, 5)
}

func (s *StudentServiceSuite) TestSearchMatchesDerivedFullName() {
	s.seedCohort()

	got, err := s.svc.Search(s.ctx, dto.StudentListQuery{Query: "eze ngozi"})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("acct@example.com", got[0].Email)
}

func (s *StudentServiceSuite) TestListPaginatesAfterFiltering() {
	s.seedCohort()

	got, page, err := s.svc.List(s.ctx, dto.StudentListQuery{Department: "Computer Science"}, 2, 2)
	s.Require().NoError(err)
	s.Len(got, 2)
	// The total reflects the filtered set, not the whole table.
	s.Equal(int64(5), page.TotalItems)
	s.Equal(3, page.TotalPages)

	last, page, err := s.svc.List(s.ctx, dto.StudentListQuery{Department: "Computer Science"}, 3, 2)
	s.Require().NoError(err)
	s.Len(last, 1)
	s.Equal(3, page.CurrentPage)
}

func (s *StudentServiceSuite) TestSearchIncludesProfileOnlyRows() {
	s.seedCohort()
	_, err := s.svc.UpsertProfile(s.ctx, "pending@example.com", dto.ProfileUpsertRequest{
		Department: "Computer Science",
	})
	s.Require().NoError(err)

	got, err := s.svc.Search(s.ctx, dto.StudentListQuery{Department: "Computer Science"})
	s.Require().NoError(err)
	s.Len(got, 6)

	var pending int
	for _, c := range got {
		if !c.Registered {
			pending++
		}
	}
	s.Equal(1, pending)
}
