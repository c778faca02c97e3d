package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeIdentityWins(t *testing.T) {
	identity := &StudentIdentity{
		Email:     "a@b.com",
		Phone:     "08011111111",
		Surname:   "Okafor",
		FirstName: "Ada",
		CreatedAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
	}
	profile := &StudentProfile{
		Email:      "A@B.com",
		Phone:      "08099999999", // loses to identity's phone
		Department: "CS",
		Level:      "ND1",
	}

	c := Merge(identity, profile, nil)

	assert.Equal(t, "a@b.com", c.Email)
	assert.Equal(t, "08011111111", c.Phone, "identity is authoritative for contact fields")
	assert.Equal(t, "CS", c.Department, "profile supplies what identity lacks")
	assert.Equal(t, "ND1", c.Level)
	assert.True(t, c.Registered)
	require.NotNil(t, c.RegisteredAt)
}

func TestMergeProfileOnly(t *testing.T) {
	profile := &StudentProfile{
		Email:        "early@b.com",
		Surname:      "Bello",
		FirstName:    "Musa",
		Department:   "EEE",
		MatricNumber: "ND/EE/014",
	}

	c := Merge(nil, profile, nil)

	assert.Equal(t, "early@b.com", c.Email)
	assert.Equal(t, "EEE", c.Department)
	assert.False(t, c.Registered, "profile upserted before registration is not an error")
	assert.Nil(t, c.RegisteredAt)
}

func TestMergeIdentityOnly(t *testing.T) {
	identity := &StudentIdentity{Email: "solo@b.com", Phone: "08012345678"}

	c := Merge(identity, nil, nil)

	assert.Equal(t, "solo@b.com", c.Email)
	assert.Empty(t, c.Department, "extension fields stay empty without a profile")
	assert.True(t, c.Registered)
}

func TestMergeFullNameCollapsesSpaces(t *testing.T) {
	identity := &StudentIdentity{Email: "n@b.com", Surname: " Okafor ", FirstName: "Ada"}
	c := Merge(identity, &StudentProfile{Email: "n@b.com", MiddleName: "Chinwe"}, nil)
	assert.Equal(t, "Okafor Ada Chinwe", c.FullName)
}

func TestMergeAttachesDocuments(t *testing.T) {
	identity := &StudentIdentity{ID: 7, Email: "d@b.com"}
	docs := &DocumentBundle{IdentityID: 7, JAMBRegNumber: "202512345", JAMBScore: 248}

	c := Merge(identity, nil, docs)

	require.NotNil(t, c.Documents)
	assert.Equal(t, 248, c.Documents.JAMBScore)
}

func TestDeriveGrade(t *testing.T) {
	tests := []struct {
		score float64
		grade string
	}{
		{85, "A"}, {70, "A"},
		{69, "B"}, {60, "B"},
		{59, "C"}, {50, "C"},
		{49, "D"}, {45, "D"},
		{44, "E"}, {40, "E"},
		{39, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.grade, DeriveGrade(tt.score), "score %.0f", tt.score)
	}
}
