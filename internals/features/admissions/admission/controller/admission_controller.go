package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/admissions/admission/dto"
	aModel "schoolku_backend/internals/features/admissions/admission/model"
	"schoolku_backend/internals/features/admissions/admission/service"
	studentDTO "schoolku_backend/internals/features/students/student/dto"
	userDTO "schoolku_backend/internals/features/users/user/dto"
	helper "schoolku_backend/internals/helpers"
)

type AdmissionController struct {
	DB        *gorm.DB
	Lifecycle *service.LifecycleService
	Validate  *validator.Validate
}

func NewAdmissionController(db *gorm.DB, lifecycle *service.LifecycleService) *AdmissionController {
	return &AdmissionController{DB: db, Lifecycle: lifecycle, Validate: validator.New()}
}

// POST /api/admissions
// Open by design: applicants submit without an account. The response carries
// the generated student id, the one-time password, and the login credentials —
// this is the only time they are ever returned.
func (h *AdmissionController) CreateAdmission(c *fiber.Ctx) error {
	var req dto.CreateAdmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := h.Lifecycle.CreateAdmission(c.Context(), req.ToModel())
	if err != nil {
		return mapLifecycleError(c, err)
	}

	resp := dto.AdmissionResponse{
		NewAdmissionModel: res.Admission,
		GeneratedPassword: res.OneTimePassword,
		LoginCredentials: &userDTO.LoginCredentials{
			Username: res.User.UserName,
			Email:    res.User.Email,
			Password: res.OneTimePassword,
		},
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Admission created", resp)
}

// GET /api/admissions
// Filters: ?status=, ?grade=, ?q= (name/student_id/admission_number search),
// ?ordering= (created_at|student_name, prefix - for desc)
func (h *AdmissionController) GetAdmissions(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	db := h.DB.WithContext(c.Context()).Model(&aModel.NewAdmissionModel{})

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		db = db.Where("status = ?", strings.ToLower(status))
	}
	if grade := strings.TrimSpace(c.Query("grade")); grade != "" {
		db = db.Where("grade = ?", grade)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		ilike := "%" + q + "%"
		db = db.Where("student_name ILIKE ? OR student_id ILIKE ? OR admission_number ILIKE ?", ilike, ilike, ilike)
	}

	order := "created_at DESC"
	switch strings.TrimSpace(c.Query("ordering")) {
	case "created_at":
		order = "created_at ASC"
	case "student_name":
		order = "student_name ASC"
	case "-student_name":
		order = "student_name DESC"
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []aModel.NewAdmissionModel
	if err := db.Order(order).Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Admissions fetched", fiber.Map{
		"admissions": rows,
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /api/admissions/:id
func (h *AdmissionController) GetAdmissionByID(c *fiber.Ctx) error {
	var adm aModel.NewAdmissionModel
	err := h.DB.WithContext(c.Context()).Where("student_id = ?", c.Params("id")).First(&adm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Admission not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Admission fetched", adm)
}

// PUT/PATCH /api/admissions/:id
// Partial update. A payload carrying student_id is rejected outright — the id
// is immutable once the row exists. A status flip to approved runs the full
// approval path atomically with the rest of the update.
func (h *AdmissionController) UpdateAdmission(c *fiber.Ctx) error {
	// reject student_id before binding the typed DTO
	var rawBody map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &rawBody); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if _, present := rawBody["student_id"]; present {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", fiber.Map{
			"student_id": service.ErrStudentIDImmutable.Error(),
		})
	}

	var req dto.UpdateAdmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updated, approveRes, err := h.Lifecycle.UpdateAdmission(c.Context(), c.Params("id"), func(m *aModel.NewAdmissionModel) {
		req.ApplyToModel(m)
	})
	if err != nil {
		return mapLifecycleError(c, err)
	}

	resp := dto.AdmissionResponse{NewAdmissionModel: updated}
	if approveRes != nil {
		sr := studentDTO.FromStudentModel(approveRes.Student)
		resp.CreatedStudent = &sr
	}
	return helper.Success(c, "Admission updated", resp)
}

// POST /api/admissions/:id/approve
func (h *AdmissionController) ApproveAdmission(c *fiber.Ctx) error {
	res, err := h.Lifecycle.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return mapLifecycleError(c, err)
	}

	sr := studentDTO.FromStudentModel(res.Student)
	return helper.Success(c, "Admission approved", dto.AdmissionResponse{
		NewAdmissionModel: res.Admission,
		CreatedStudent:    &sr,
	})
}

// DELETE /api/admissions/:id
func (h *AdmissionController) DeleteAdmission(c *fiber.Ctx) error {
	res := h.DB.WithContext(c.Context()).Where("student_id = ?", c.Params("id")).Delete(&aModel.NewAdmissionModel{})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Admission not found")
	}
	return helper.Success(c, "Admission deleted", nil)
}

// mapLifecycleError translates service errors into the response envelope.
// Unexpected errors surface verbatim as 500s.
func mapLifecycleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAdmissionNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyApproved),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrDuplicateStudentID),
		errors.Is(err, service.ErrDuplicateAdmissionNumber),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrStudentIDImmutable):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		if strings.Contains(err.Error(), "approval rolled back") ||
			strings.Contains(err.Error(), "student creation failed") {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
}
