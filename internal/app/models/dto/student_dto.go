package dto

// RegisterRequest is the multipart form for account registration. The
// passport file part is read separately by the controller.
type RegisterRequest struct {
	Email      string `form:"email" binding:"required"`
	Phone      string `form:"phone" binding:"required"`
	Password   string `form:"password" binding:"required" validate:"min=8"`
	Surname    string `form:"surname" binding:"required"`
	FirstName  string `form:"firstName" binding:"required"`
	MiddleName string `form:"middleName"`
}

// ProfileUpsertRequest creates or updates the extended profile for the
// email in the URL. Every field is optional; absent fields keep their
// stored value.
type ProfileUpsertRequest struct {
	Surname        string `json:"surname"`
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName"`
	Phone          string `json:"phone"`
	Department     string `json:"department"`
	Level          string `json:"level"`
	RegNumber      string `json:"regNumber"`
	MatricNumber   string `json:"matricNumber"`
	NextOfKin      string `json:"nextOfKin"`
	NextOfKinPhone string `json:"nextOfKinPhone"`
	Address        string `json:"address"`
}

// DocumentUpsertRequest is the multipart form for the document bundle.
// File parts (birthCertificate, oLevelResult, jambResult) are read
// separately by the controller.
type DocumentUpsertRequest struct {
	OLevelExamType   string `form:"oLevelExamType"`
	OLevelExamNumber string `form:"oLevelExamNumber"`
	OLevelExamYear   string `form:"oLevelExamYear"`
	JAMBRegNumber    string `form:"jambRegNumber"`
	JAMBScore        int    `form:"jambScore"`
}

// StudentListQuery are the listing filters. Free-text q matches full name,
// matric number, email, or phone; department and level are exact after
// trim+lowercase.
type StudentListQuery struct {
	Query      string `form:"q"`
	Department string `form:"department"`
	Level      string `form:"level"`
}
