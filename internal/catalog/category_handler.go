package catalog

import (
	"strings"

	"takas-backend/internal/database"
	"takas-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`
	SortOrder   *uint  `json:"sort_order"`
	Active      *bool  `json:"active"`
}

type SubCategoryRequest struct {
	CategoryID  uint   `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SortOrder   *uint  `json:"sort_order"`
	Active      *bool  `json:"active"`
}

// GET /api/categories - aktif kategoriler, alt kategorileriyle birlikte
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.
			Where("active = ?", true).
			Preload("SubCategories", "active = ?", true).
			Order("sort_order asc, name asc").
			Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}
		return c.JSON(categories)
	}
}

// POST /api/admin/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı zorunlu")
		}

		category := models.Category{
			Name:        body.Name,
			Description: body.Description,
			Icon:        body.Icon,
			Image:       body.Image,
			Active:      true,
		}
		if body.SortOrder != nil {
			category.SortOrder = *body.SortOrder
		}
		if body.Active != nil {
			category.Active = *body.Active
		}

		if err := database.DB.Create(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori kaydedilemedi")
		}
		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// PUT /api/admin/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var category models.Category
		if err := database.DB.First(&category, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if v := strings.TrimSpace(body.Name); v != "" {
			category.Name = v
		}
		category.Description = body.Description
		category.Icon = body.Icon
		category.Image = body.Image
		if body.SortOrder != nil {
			category.SortOrder = *body.SortOrder
		}
		if body.Active != nil {
			category.Active = *body.Active
		}

		if err := database.DB.Save(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori güncellenemedi")
		}
		return c.JSON(category)
	}
}

// DELETE /api/admin/categories/:id - ilanlardaki kategori referansı
// NULL'a çekilir, ilanlar silinmez
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var category models.Category
		if err := database.DB.First(&category, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		if err := database.DB.Model(&models.Listing{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori referansları temizlenemedi")
		}
		database.DB.Where("category_id = ?", category.ID).Delete(&models.SubCategory{})

		if err := database.DB.Delete(&category).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/admin/subcategories
func CreateSubCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SubCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.CategoryID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Alt kategori adı ve category_id zorunlu")
		}

		var category models.Category
		if err := database.DB.First(&category, body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ana kategori bulunamadı")
		}

		sub := models.SubCategory{
			CategoryID:  body.CategoryID,
			Name:        body.Name,
			Description: body.Description,
			Image:       body.Image,
			Active:      true,
		}
		if body.SortOrder != nil {
			sub.SortOrder = *body.SortOrder
		}
		if body.Active != nil {
			sub.Active = *body.Active
		}

		if err := database.DB.Create(&sub).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alt kategori kaydedilemedi")
		}
		return c.Status(fiber.StatusCreated).JSON(sub)
	}
}

// DELETE /api/admin/subcategories/:id
func DeleteSubCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sub models.SubCategory
		if err := database.DB.First(&sub, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Alt kategori bulunamadı")
		}

		if err := database.DB.Model(&models.Listing{}).
			Where("sub_category_id = ?", sub.ID).
			Update("sub_category_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alt kategori referansları temizlenemedi")
		}

		if err := database.DB.Delete(&sub).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alt kategori silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
