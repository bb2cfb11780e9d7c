package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/schools/school/dto"
	"schoolku_backend/internals/features/schools/school/model"
	helper "schoolku_backend/internals/helpers"
)

type SchoolController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db, Validate: validator.New()}
}

// POST /api/schools
func (h *SchoolController) CreateSchool(c *fiber.Ctx) error {
	var req dto.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	school := req.ToModel()
	if err := h.DB.WithContext(c.Context()).Create(school).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusBadRequest, "School code already exists")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "School created", school)
}

// GET /api/schools
func (h *SchoolController) GetSchools(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	db := h.DB.WithContext(c.Context()).Model(&model.SchoolModel{})
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		db = db.Where("status = ?", strings.ToLower(status))
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		ilike := "%" + q + "%"
		db = db.Where("school_name ILIKE ? OR code ILIKE ?", ilike, ilike)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.SchoolModel
	if err := db.Order("school_name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Schools fetched", fiber.Map{
		"schools":    rows,
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /api/schools/:id
func (h *SchoolController) GetSchoolByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "School not found")
	}

	var school model.SchoolModel
	if err := h.DB.WithContext(c.Context()).Where("school_id = ?", id).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "School not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "School fetched", school)
}

// PUT/PATCH /api/schools/:id
func (h *SchoolController) UpdateSchool(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "School not found")
	}

	var school model.SchoolModel
	if err := h.DB.WithContext(c.Context()).Where("school_id = ?", id).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "School not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyToModel(&school)
	if err := h.DB.WithContext(c.Context()).Save(&school).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "School updated", school)
}

// DELETE /api/schools/:id
func (h *SchoolController) DeleteSchool(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "School not found")
	}

	res := h.DB.WithContext(c.Context()).Where("school_id = ?", id).Delete(&model.SchoolModel{})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "School not found")
	}
	return helper.Success(c, "School deleted", nil)
}
