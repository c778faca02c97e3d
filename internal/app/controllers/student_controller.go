package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/app/models/dto"
	"github.com/nonso/acadport/internal/app/services"
	"github.com/nonso/acadport/internal/middleware"
	"github.com/nonso/acadport/internal/pkg/helpers"
)

// StudentController handles registration, profiles, documents, and the
// student listing.
type StudentController struct {
	studentService *services.StudentService
	metrics        *middleware.Metrics
}

// NewStudentController creates a StudentController.
func NewStudentController(studentService *services.StudentService, metrics *middleware.Metrics) *StudentController {
	return &StudentController{studentService: studentService, metrics: metrics}
}

// Register creates a student account
// @Summary Register a student
// @Description Creates a new student identity from the multipart registration form
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Param email formData string true "Email address"
// @Param phone formData string true "Phone number (11 digits)"
// @Param password formData string true "Password (min 8 characters)"
// @Param surname formData string true "Surname"
// @Param firstName formData string true "First name"
// @Param middleName formData string false "Middle name"
// @Param passport formData file true "Passport photograph"
// @Success 201 {object} dto.APIResponse{data=models.Composite} "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email or phone already registered"
// @Failure 502 {object} dto.ErrorResponse "Passport image could not be stored"
// @Router /auth/register [post]
func (c *StudentController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	if err := middleware.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	passport, filename, err := readFormFile(ctx, "passport")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	composite, err := c.studentService.Register(ctx, services.RegisterInput{
		Email:            req.Email,
		Phone:            req.Phone,
		Password:         req.Password,
		Surname:          req.Surname,
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		Passport:         passport,
		PassportFilename: filename,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.metrics.RegistrationsTotal.Inc()
	ctx.JSON(http.StatusCreated, dto.NewResponse(composite))
}

// List pages through the merged student records
// @Summary List students
// @Description Lists merged student records with free-text and exact filters
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param q query string false "Free-text match on name, matric number, email, or phone"
// @Param department query string false "Exact department filter"
// @Param level query string false "Exact level filter"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Composite} "Students retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	var q dto.StudentListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	page, size := helpers.ParsePageParams(ctx)

	students, pageMeta, err := c.studentService.List(ctx, q, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPagedResponse(students, pageMeta))
}

// Get returns one merged student record
// @Summary Get a student
// @Description Returns the merged identity, profile, and documents for an email
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Success 200 {object} dto.APIResponse{data=models.Composite} "Student retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{email} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	composite, err := c.studentService.Get(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(composite))
}

// UpsertProfile creates or updates a student profile
// @Summary Upsert a student profile
// @Description Creates or updates the extended profile; absent fields keep their stored values
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Param request body dto.ProfileUpsertRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=models.Composite} "Profile saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Registration or matric number already in use"
// @Router /students/{email}/profile [put]
func (c *StudentController) UpsertProfile(ctx *gin.Context) {
	var req dto.ProfileUpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	composite, err := c.studentService.UpsertProfile(ctx, ctx.Param("email"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(composite))
}

// UpsertDocuments saves the student's document bundle
// @Summary Upsert student documents
// @Description Stores uploaded documents and exam metadata for a registered student
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param email path string true "Student email"
// @Param oLevelExamType formData string false "O-Level exam type"
// @Param oLevelExamNumber formData string false "O-Level exam number"
// @Param oLevelExamYear formData string false "O-Level exam year"
// @Param jambRegNumber formData string false "JAMB registration number"
// @Param jambScore formData int false "JAMB score"
// @Param birthCertificate formData file false "Birth certificate"
// @Param oLevelResult formData file false "O-Level result"
// @Param jambResult formData file false "JAMB result"
// @Success 200 {object} dto.APIResponse{data=models.DocumentBundle} "Documents saved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 502 {object} dto.ErrorResponse "Uploaded document could not be stored"
// @Router /students/{email}/documents [put]
func (c *StudentController) UpsertDocuments(ctx *gin.Context) {
	var req dto.DocumentUpsertRequest
	if err := ctx.ShouldBind(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid document data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	in := services.DocumentInput{
		OLevelExamType:   req.OLevelExamType,
		OLevelExamNumber: req.OLevelExamNumber,
		OLevelExamYear:   req.OLevelExamYear,
		JAMBRegNumber:    req.JAMBRegNumber,
		JAMBScore:        req.JAMBScore,
	}

	var err error
	if in.BirthCertificate, in.BirthCertName, err = readFormFile(ctx, "birthCertificate"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if in.OLevelResult, in.OLevelResultName, err = readFormFile(ctx, "oLevelResult"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if in.JAMBResult, in.JAMBResultName, err = readFormFile(ctx, "jambResult"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	bundle, err := c.studentService.UpsertDocuments(ctx, ctx.Param("email"), in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewResponse(bundle))
}
