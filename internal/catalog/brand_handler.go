package catalog

import (
	"strings"

	"takas-backend/internal/database"
	"takas-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BrandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Active      *bool  `json:"active"`
}

// GET /api/brands
func ListBrandsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var brands []models.Brand
		if err := database.DB.
			Where("active = ?", true).
			Order("name asc").
			Find(&brands).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Markalar listelenemedi")
		}
		return c.JSON(brands)
	}
}

// POST /api/admin/brands
func CreateBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BrandRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Marka adı zorunlu")
		}

		brand := models.Brand{
			Name:        body.Name,
			Description: body.Description,
			Logo:        body.Logo,
			Active:      true,
		}
		if body.Active != nil {
			brand.Active = *body.Active
		}

		if err := database.DB.Create(&brand).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Marka kaydedilemedi")
		}
		return c.Status(fiber.StatusCreated).JSON(brand)
	}
}

// PUT /api/admin/brands/:id
func UpdateBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var brand models.Brand
		if err := database.DB.First(&brand, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Marka bulunamadı")
		}

		var body BrandRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if v := strings.TrimSpace(body.Name); v != "" {
			brand.Name = v
		}
		brand.Description = body.Description
		brand.Logo = body.Logo
		if body.Active != nil {
			brand.Active = *body.Active
		}

		if err := database.DB.Save(&brand).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Marka güncellenemedi")
		}
		return c.JSON(brand)
	}
}

// DELETE /api/admin/brands/:id
func DeleteBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var brand models.Brand
		if err := database.DB.First(&brand, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Marka bulunamadı")
		}

		if err := database.DB.Model(&models.Listing{}).
			Where("brand_id = ?", brand.ID).
			Update("brand_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Marka referansları temizlenemedi")
		}

		if err := database.DB.Delete(&brand).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Marka silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
