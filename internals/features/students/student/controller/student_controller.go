package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/students/student/dto"
	"schoolku_backend/internals/features/students/student/model"
	helper "schoolku_backend/internals/helpers"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: validator.New()}
}

// GET /api/students
// Filters: ?grade=, ?q= (name/student_id/email search)
func (h *StudentController) GetStudents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	db := h.DB.WithContext(c.Context()).Model(&model.StudentModel{})

	if grade := strings.TrimSpace(c.Query("grade")); grade != "" {
		db = db.Where("grade = ?", grade)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		ilike := "%" + q + "%"
		db = db.Where("student_name ILIKE ? OR student_id ILIKE ? OR email ILIKE ?", ilike, ilike, ilike)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.StudentModel
	if err := db.Order("created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Students fetched", fiber.Map{
		"students":   dto.FromStudentModels(rows),
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /api/students/:email
func (h *StudentController) GetStudentByEmail(c *fiber.Ctx) error {
	var st model.StudentModel
	if err := h.DB.WithContext(c.Context()).Where("email = ?", c.Params("email")).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Student fetched", dto.FromStudentModel(&st))
}

// PUT/PATCH /api/students/:email
func (h *StudentController) UpdateStudent(c *fiber.Ctx) error {
	var st model.StudentModel
	if err := h.DB.WithContext(c.Context()).Where("email = ?", c.Params("email")).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyToModel(&st)
	if err := h.DB.WithContext(c.Context()).Save(&st).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Student updated", dto.FromStudentModel(&st))
}
