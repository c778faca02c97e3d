package models

import (
	"time"

	"github.com/nonso/acadport/internal/pkg/normalize"
)

// Composite is the read-time union of identity, profile, and documents for
// one student. It is assembled per request and never persisted.
type Composite struct {
	Email          string          `json:"email"`
	Phone          string          `json:"phone,omitempty"`
	Surname        string          `json:"surname,omitempty"`
	FirstName      string          `json:"firstName,omitempty"`
	MiddleName     string          `json:"middleName,omitempty"`
	FullName       string          `json:"fullName,omitempty"`
	PassportURL    string          `json:"passportUrl,omitempty"`
	Department     string          `json:"department,omitempty"`
	Level          string          `json:"level,omitempty"`
	RegNumber      string          `json:"regNumber,omitempty"`
	MatricNumber   string          `json:"matricNumber,omitempty"`
	NextOfKin      string          `json:"nextOfKin,omitempty"`
	NextOfKinPhone string          `json:"nextOfKinPhone,omitempty"`
	Address        string          `json:"address,omitempty"`
	Documents      *DocumentBundle `json:"documents,omitempty"`
	Registered     bool            `json:"registered"`
	RegisteredAt   *time.Time      `json:"registeredAt,omitempty"`
}

// Merge combines an identity with an optional profile and document bundle
// sharing its normalized email. The identity wins for any field both carry;
// the profile supplies everything the identity does not. Either record may
// be absent; a profile-only composite is valid, not an error.
func Merge(identity *StudentIdentity, profile *StudentProfile, documents *DocumentBundle) Composite {
	var c Composite

	if profile != nil {
		c.Email = normalize.Email(profile.Email)
		c.Phone = profile.Phone
		c.Surname = profile.Surname
		c.FirstName = profile.FirstName
		c.MiddleName = profile.MiddleName
		c.Department = profile.Department
		c.Level = profile.Level
		c.RegNumber = profile.RegNumber
		c.MatricNumber = profile.MatricNumber
		c.NextOfKin = profile.NextOfKin
		c.NextOfKinPhone = profile.NextOfKinPhone
		c.Address = profile.Address
	}

	if identity != nil {
		c.Email = normalize.Email(identity.Email)
		if identity.Phone != "" {
			c.Phone = identity.Phone
		}
		if identity.Surname != "" {
			c.Surname = identity.Surname
		}
		if identity.FirstName != "" {
			c.FirstName = identity.FirstName
		}
		if identity.MiddleName != "" {
			c.MiddleName = identity.MiddleName
		}
		c.PassportURL = identity.PassportURL
		c.Registered = true
		registeredAt := identity.CreatedAt
		c.RegisteredAt = &registeredAt
	}

	c.FullName = normalize.FullName(c.Surname, c.FirstName, c.MiddleName)
	c.Documents = documents
	return c
}
