package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/users/user/dto"
	"schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/users
// Filters: ?role=, ?is_active=, ?q= (username/email search)
func (h *UserController) GetUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 200)

	db := h.DB.WithContext(c.Context()).Model(&model.UserModel{}).
		Joins("Role")

	if role := strings.TrimSpace(c.Query("role")); role != "" {
		db = db.Where(`"Role".role_name = ?`, role)
	}
	if active := strings.TrimSpace(c.Query("is_active")); active != "" {
		db = db.Where("users.is_active = ?", active == "true")
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		ilike := "%" + q + "%"
		db = db.Where("users.username ILIKE ? OR users.email ILIKE ?", ilike, ilike)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.UserModel
	if err := db.Order("users.created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Users fetched", fiber.Map{
		"users":      dto.FromUserModels(rows),
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /api/users/:id
func (h *UserController) GetUserByID(c *fiber.Ctx) error {
	var user model.UserModel
	err := h.DB.WithContext(c.Context()).
		Preload("Role").
		Where("user_id = ?", c.Params("id")).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "User fetched", dto.FromUserModel(&user))
}
