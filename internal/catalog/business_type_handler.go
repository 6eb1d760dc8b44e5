package catalog

import (
	"strings"

	"takas-backend/internal/database"
	"takas-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BusinessTypeRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	MinOrderAmount *float64 `json:"min_order_amount"`
	Active         *bool    `json:"active"`
}

// GET /api/business-types
func ListBusinessTypesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var types []models.BusinessType
		if err := database.DB.
			Where("active = ?", true).
			Order("name asc").
			Find(&types).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşletme türleri listelenemedi")
		}
		return c.JSON(types)
	}
}

// POST /api/admin/business-types
func CreateBusinessTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BusinessTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İşletme türü adı zorunlu")
		}

		bt := models.BusinessType{
			Name:           body.Name,
			Description:    body.Description,
			MinOrderAmount: body.MinOrderAmount,
			Active:         true,
		}
		if body.Active != nil {
			bt.Active = *body.Active
		}

		if err := database.DB.Create(&bt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşletme türü kaydedilemedi")
		}
		return c.Status(fiber.StatusCreated).JSON(bt)
	}
}

// PUT /api/admin/business-types/:id
func UpdateBusinessTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var bt models.BusinessType
		if err := database.DB.First(&bt, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İşletme türü bulunamadı")
		}

		var body BusinessTypeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if v := strings.TrimSpace(body.Name); v != "" {
			bt.Name = v
		}
		bt.Description = body.Description
		if body.MinOrderAmount != nil {
			bt.MinOrderAmount = body.MinOrderAmount
		}
		if body.Active != nil {
			bt.Active = *body.Active
		}

		if err := database.DB.Save(&bt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşletme türü güncellenemedi")
		}
		return c.JSON(bt)
	}
}
