package models

import "time"

// StudentIdentity is the minimal account record created at registration,
// based on the 'student_identities' table. The normalized email is the
// immutable identity key; email and phone are unique at the storage layer.
type StudentIdentity struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Surname      string    `json:"surname" db:"surname"`
	FirstName    string    `json:"firstName" db:"first_name"`
	MiddleName   string    `json:"middleName,omitempty" db:"middle_name"`
	PassportURL  string    `json:"passportUrl,omitempty" db:"passport_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// StudentProfile holds extended attributes keyed by the same normalized
// email, based on the 'student_profiles' table. A profile may exist before
// or after its identity; neither side assumes the other is present.
type StudentProfile struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Surname        string    `json:"surname,omitempty" db:"surname"`
	FirstName      string    `json:"firstName,omitempty" db:"first_name"`
	MiddleName     string    `json:"middleName,omitempty" db:"middle_name"`
	Phone          string    `json:"phone,omitempty" db:"phone"`
	Department     string    `json:"department,omitempty" db:"department"`
	Level          string    `json:"level,omitempty" db:"level"`
	RegNumber      string    `json:"regNumber,omitempty" db:"reg_number"`
	MatricNumber   string    `json:"matricNumber,omitempty" db:"matric_number"`
	NextOfKin      string    `json:"nextOfKin,omitempty" db:"next_of_kin"`
	NextOfKinPhone string    `json:"nextOfKinPhone,omitempty" db:"next_of_kin_phone"`
	Address        string    `json:"address,omitempty" db:"address"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}
