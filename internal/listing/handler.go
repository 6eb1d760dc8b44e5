package listing

import (
	"strings"

	"takas-backend/internal/auth"
	"takas-backend/internal/database"
	"takas-backend/internal/merchant"
	"takas-backend/internal/messaging"
	"takas-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateListingRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Image           string   `json:"image"`
	CategoryID      *uint    `json:"category_id"`
	SubCategoryID   *uint    `json:"sub_category_id"`
	BrandID         *uint    `json:"brand_id"`
	Quantity        uint     `json:"quantity"`
	Unit            string   `json:"unit"`
	Price           *float64 `json:"price"`
	MinOrderQty     *uint    `json:"min_order_qty"`
	VATRate         *uint    `json:"vat_rate"`
	TransactionType string   `json:"transaction_type"`
}

type ListingResponse struct {
	ID              uint     `json:"id"`
	ListingNo       string   `json:"listing_no"`
	MerchantID      uint     `json:"merchant_id"`
	CompanyName     string   `json:"company_name,omitempty"`
	CategoryID      *uint    `json:"category_id"`
	SubCategoryID   *uint    `json:"sub_category_id"`
	BrandID         *uint    `json:"brand_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Image           string   `json:"image"`
	Quantity        uint     `json:"quantity"`
	Unit            string   `json:"unit"`
	Price           *float64 `json:"price"`
	MinOrderQty     uint     `json:"min_order_qty"`
	VATRate         uint     `json:"vat_rate"`
	TransactionType string   `json:"transaction_type"`
	Active          bool     `json:"active"`
	Showcase        bool     `json:"showcase"`
	CreatedAt       string   `json:"created_at"`
}

func toResponse(l *models.Listing) ListingResponse {
	resp := ListingResponse{
		ID:              l.ID,
		ListingNo:       l.ListingNo,
		MerchantID:      l.MerchantID,
		CategoryID:      l.CategoryID,
		SubCategoryID:   l.SubCategoryID,
		BrandID:         l.BrandID,
		Name:            l.Name,
		Description:     l.Description,
		Image:           l.Image,
		Quantity:        l.Quantity,
		Unit:            string(l.Unit),
		Price:           l.Price,
		MinOrderQty:     l.MinOrderQty,
		VATRate:         l.VATRate,
		TransactionType: string(l.TransactionType),
		Active:          l.Active,
		Showcase:        l.Showcase,
		CreatedAt:       l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if l.Merchant.ID != 0 {
		resp.CompanyName = l.Merchant.CompanyName
	}
	return resp
}

func toResponses(listings []models.Listing) []ListingResponse {
	resp := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		resp = append(resp, toResponse(&listings[i]))
	}
	return resp
}

func parseTransactionType(s string) (models.TransactionType, error) {
	switch models.TransactionType(s) {
	case models.TransactionTrade, models.TransactionSale, models.TransactionBoth:
		return models.TransactionType(s), nil
	case "":
		return models.TransactionSale, nil
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, "transaction_type 'trade', 'sale' veya 'both' olmalı")
	}
}

func parseUnit(s string) (models.StockUnit, error) {
	switch models.StockUnit(s) {
	case models.UnitPiece, models.UnitKg, models.UnitGram, models.UnitLiter, models.UnitPack, models.UnitBox:
		return models.StockUnit(s), nil
	case "":
		return models.UnitPiece, nil
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, "Geçersiz stok birimi")
	}
}

// -------------------------
// Handlers
// -------------------------

// POST /api/listings
func CreateListingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "İlan ekleyebilmek için önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var body CreateListingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || strings.TrimSpace(body.Description) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı ve açıklama zorunlu")
		}
		if body.Quantity == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stok miktarı 0'dan büyük olmalı")
		}

		txType, err := parseTransactionType(body.TransactionType)
		if err != nil {
			return err
		}
		unit, err := parseUnit(body.Unit)
		if err != nil {
			return err
		}

		l := models.Listing{
			MerchantID:      profile.ID,
			CategoryID:      body.CategoryID,
			SubCategoryID:   body.SubCategoryID,
			BrandID:         body.BrandID,
			Name:            body.Name,
			Description:     strings.TrimSpace(body.Description),
			Image:           body.Image,
			Quantity:        body.Quantity,
			Unit:            unit,
			Price:           body.Price,
			MinOrderQty:     1,
			VATRate:         18,
			TransactionType: txType,
			Active:          true,
		}
		if body.MinOrderQty != nil && *body.MinOrderQty > 0 {
			l.MinOrderQty = *body.MinOrderQty
		}
		if body.VATRate != nil {
			l.VATRate = *body.VATRate
		}

		if err := Create(&l); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlan kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&l))
	}
}

// GET /api/listings/mine
func MyListingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var listings []models.Listing
		if err := database.DB.
			Where("merchant_id = ?", profile.ID).
			Order("created_at desc").
			Find(&listings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlanlar listelenemedi")
		}
		return c.JSON(toResponses(listings))
	}
}

// GET /api/listings/:id - ilan detayı + aynı kategoriden 4 benzer ilan
func ListingDetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var l models.Listing
		if err := database.DB.Preload("Merchant").First(&l, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İlan bulunamadı")
		}

		var similar []models.Listing
		if l.CategoryID != nil {
			database.DB.Preload("Merchant").
				Where("category_id = ? AND active = ? AND id <> ?", *l.CategoryID, true, l.ID).
				Order("created_at desc").
				Limit(4).
				Find(&similar)
		}

		return c.JSON(fiber.Map{
			"listing": toResponse(&l),
			"similar": toResponses(similar),
		})
	}
}

// GET /api/listings/search?q=...
func SearchListingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			return c.JSON([]ListingResponse{})
		}

		pattern := "%" + query + "%"
		var listings []models.Listing
		if err := database.DB.Preload("Merchant").
			Joins("JOIN merchant_profiles ON merchant_profiles.id = listings.merchant_id").
			Where("listings.active = ?", true).
			Where("listings.name LIKE ? OR listings.description LIKE ? OR merchant_profiles.company_name LIKE ?",
				pattern, pattern, pattern).
			Order("listings.created_at desc").
			Find(&listings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Arama yapılamadı")
		}
		return c.JSON(toResponses(listings))
	}
}

// GET /api/categories/:id/listings
func CategoryListingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var category models.Category
		if err := database.DB.First(&category, "id = ? AND active = ?", c.Params("id"), true).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		var listings []models.Listing
		if err := database.DB.Preload("Merchant").
			Where("category_id = ? AND active = ?", category.ID, true).
			Order("created_at desc").
			Find(&listings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlanlar listelenemedi")
		}

		return c.JSON(fiber.Map{
			"category": category,
			"listings": toResponses(listings),
		})
	}
}

// GET /api/business-types/:id/listings
func BusinessTypeListingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var bt models.BusinessType
		if err := database.DB.First(&bt, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İşletme türü bulunamadı")
		}

		var listings []models.Listing
		if err := database.DB.Preload("Merchant").
			Joins("JOIN merchant_profiles ON merchant_profiles.id = listings.merchant_id").
			Where("merchant_profiles.business_type_id = ? AND listings.active = ?", bt.ID, true).
			Order("listings.created_at desc").
			Find(&listings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlanlar listelenemedi")
		}

		return c.JSON(fiber.Map{
			"business_type": bt,
			"listings":      toResponses(listings),
		})
	}
}

// GET /api/home - vitrin ilanları ve son eklenenler
func HomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var showcase []models.Listing
		database.DB.Preload("Merchant").
			Where("active = ? AND showcase = ?", true, true).
			Order("created_at desc").
			Limit(8).
			Find(&showcase)

		var latest []models.Listing
		database.DB.Preload("Merchant").
			Where("active = ?", true).
			Order("created_at desc").
			Limit(8).
			Find(&latest)

		return c.JSON(fiber.Map{
			"showcase": toResponses(showcase),
			"latest":   toResponses(latest),
		})
	}
}

// PUT /api/listings/:id/status - ilanı aktif/pasif yapar (sadece sahibi)
func ToggleListingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var l models.Listing
		if err := database.DB.First(&l, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İlan bulunamadı")
		}
		if l.MerchantID != profile.ID {
			return fiber.NewError(fiber.StatusForbidden, "Bu ilana erişim yetkiniz yok")
		}

		var body struct {
			Active *bool `json:"active"`
		}
		if err := c.BodyParser(&body); err != nil || body.Active == nil {
			return fiber.NewError(fiber.StatusBadRequest, "active alanı zorunlu")
		}

		l.Active = *body.Active
		if err := database.DB.Save(&l).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlan güncellenemedi")
		}
		return c.JSON(toResponse(&l))
	}
}

// DELETE /api/listings/:id - sahibi veya admin silebilir. Admin başka
// esnafın ilanını kaldırırsa sahibine sistem mesajı gönderilir.
func DeleteListingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var l models.Listing
		if err := database.DB.First(&l, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İlan bulunamadı")
		}

		isAdmin := auth.IsAdmin(c)
		profile, profileErr := merchant.ProfileForUser(userID)
		isOwner := profileErr == nil && l.MerchantID == profile.ID

		if !isAdmin && !isOwner {
			return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz bulunmuyor")
		}

		// Yönetici kaldırması: sahibine bildirim bırak
		if isAdmin && !isOwner {
			_ = messaging.SendSystemNotice(l.MerchantID,
				"Ürününüz Kaldırıldı",
				"\""+l.Name+"\" isimli ürününüz yönetici tarafından kaldırılmıştır. Lütfen ürün paylaşım kurallarımıza uygun paylaşım yapınız.")
		}

		if err := database.DB.Delete(&l).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İlan silinemedi")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/listings/:id/buy - satın alma için satıcı iletişim bilgileri.
// Sipariş/sepet akışı yok, fiziksel alışveriş taraflar arasında yürür.
func BuyContactHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var l models.Listing
		if err := database.DB.Preload("Merchant").First(&l, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İlan bulunamadı")
		}

		if l.MerchantID == profile.ID {
			return fiber.NewError(fiber.StatusBadRequest, "Kendi ürününüzü satın alamazsınız")
		}
		if !l.Sellable() {
			return fiber.NewError(fiber.StatusBadRequest, "Bu ürün satış için uygun değil")
		}
		if l.Price == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu ürünün fiyatı belirtilmemiş")
		}

		contact := fiber.Map{
			"company": l.Merchant.CompanyName,
			"phone":   l.Merchant.Phone,
			"address": l.Merchant.Address,
		}
		if l.Merchant.WhatsApp != "" {
			contact["whatsapp"] = l.Merchant.WhatsApp
		}

		return c.JSON(fiber.Map{
			"listing": toResponse(&l),
			"message": "Satın alma işlemi için satıcı ile iletişime geçin",
			"contact": contact,
		})
	}
}
