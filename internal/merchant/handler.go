package merchant

import (
	"strings"

	"takas-backend/internal/auth"
	"takas-backend/internal/database"
	"takas-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ProfileRequest struct {
	CompanyName    string   `json:"company_name"`
	BusinessTypeID *uint    `json:"business_type_id"`
	Address        string   `json:"address"`
	Phone          string   `json:"phone"`
	WhatsApp       string   `json:"whatsapp"`
	TaxNumber      string   `json:"tax_number"`
	TaxOffice      string   `json:"tax_office"`
	DeliveryOption string   `json:"delivery_option"`
	MinOrderAmount *float64 `json:"min_order_amount"`
}

type ProfileResponse struct {
	ID             uint     `json:"id"`
	CompanyName    string   `json:"company_name"`
	BusinessTypeID *uint    `json:"business_type_id"`
	Address        string   `json:"address"`
	Phone          string   `json:"phone"`
	WhatsApp       string   `json:"whatsapp"`
	TaxNumber      string   `json:"tax_number"`
	TaxOffice      string   `json:"tax_office"`
	DeliveryOption string   `json:"delivery_option"`
	MinOrderAmount *float64 `json:"min_order_amount"`
	Active         bool     `json:"active"`
}

func toResponse(p *models.MerchantProfile) ProfileResponse {
	return ProfileResponse{
		ID:             p.ID,
		CompanyName:    p.CompanyName,
		BusinessTypeID: p.BusinessTypeID,
		Address:        p.Address,
		Phone:          p.Phone,
		WhatsApp:       p.WhatsApp,
		TaxNumber:      p.TaxNumber,
		TaxOffice:      p.TaxOffice,
		DeliveryOption: string(p.DeliveryOption),
		MinOrderAmount: p.MinOrderAmount,
		Active:         p.Active,
	}
}

func parseDeliveryOption(s string) (models.DeliveryOption, error) {
	switch models.DeliveryOption(s) {
	case models.DeliverySelf, models.DeliveryCourier, models.DeliveryBoth:
		return models.DeliveryOption(s), nil
	case "":
		return models.DeliverySelf, nil
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, "delivery_option 'self', 'courier' veya 'both' olmalı")
	}
}

// POST /api/merchant/profile - firma bilgilerini tamamlar
func CompleteProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		if _, err := ProfileForUser(userID); err == nil {
			return fiber.NewError(fiber.StatusConflict, "Firma bilgileriniz zaten tamamlanmış")
		}

		var body ProfileRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.CompanyName = strings.TrimSpace(body.CompanyName)
		if body.CompanyName == "" || strings.TrimSpace(body.Address) == "" || strings.TrimSpace(body.Phone) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Firma adı, adres ve telefon zorunlu")
		}

		delivery, err := parseDeliveryOption(body.DeliveryOption)
		if err != nil {
			return err
		}

		if body.BusinessTypeID != nil {
			var bt models.BusinessType
			if err := database.DB.First(&bt, *body.BusinessTypeID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "İşletme türü bulunamadı")
			}
		}

		profile := models.MerchantProfile{
			UserID:         userID,
			BusinessTypeID: body.BusinessTypeID,
			CompanyName:    body.CompanyName,
			Address:        strings.TrimSpace(body.Address),
			Phone:          strings.TrimSpace(body.Phone),
			WhatsApp:       strings.TrimSpace(body.WhatsApp),
			TaxNumber:      strings.TrimSpace(body.TaxNumber),
			TaxOffice:      strings.TrimSpace(body.TaxOffice),
			DeliveryOption: delivery,
			MinOrderAmount: body.MinOrderAmount,
			Active:         true,
		}

		if err := database.DB.Create(&profile).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Profil kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&profile))
	}
}

// GET /api/merchant/profile - kendi profilin, ilanların ve
// öne çıkarma/reklam kayıtlarınla birlikte
func MyProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var listings []models.Listing
		database.DB.Where("merchant_id = ?", profile.ID).
			Order("created_at desc").
			Find(&listings)

		var ads []models.Advertisement
		database.DB.Where("merchant_id = ?", profile.ID).
			Order("starts_at desc").
			Find(&ads)

		var promotions []models.ListingPromotion
		database.DB.
			Joins("JOIN listings ON listings.id = listing_promotions.listing_id").
			Where("listings.merchant_id = ?", profile.ID).
			Order("listing_promotions.starts_at desc").
			Find(&promotions)

		return c.JSON(fiber.Map{
			"profile":    toResponse(profile),
			"listings":   listings,
			"ads":        ads,
			"promotions": promotions,
		})
	}
}

// PUT /api/merchant/profile
func UpdateProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var body ProfileRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if v := strings.TrimSpace(body.CompanyName); v != "" {
			profile.CompanyName = v
		}
		if v := strings.TrimSpace(body.Address); v != "" {
			profile.Address = v
		}
		if v := strings.TrimSpace(body.Phone); v != "" {
			profile.Phone = v
		}
		profile.WhatsApp = strings.TrimSpace(body.WhatsApp)
		profile.TaxNumber = strings.TrimSpace(body.TaxNumber)
		profile.TaxOffice = strings.TrimSpace(body.TaxOffice)
		if body.DeliveryOption != "" {
			delivery, err := parseDeliveryOption(body.DeliveryOption)
			if err != nil {
				return err
			}
			profile.DeliveryOption = delivery
		}
		if body.BusinessTypeID != nil {
			var bt models.BusinessType
			if err := database.DB.First(&bt, *body.BusinessTypeID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "İşletme türü bulunamadı")
			}
			profile.BusinessTypeID = body.BusinessTypeID
		}
		if body.MinOrderAmount != nil {
			profile.MinOrderAmount = body.MinOrderAmount
		}

		if err := database.DB.Save(profile).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Profil güncellenemedi")
		}

		return c.JSON(toResponse(profile))
	}
}

// DELETE /api/admin/merchants/:id - esnafı tüm verisiyle siler (admin)
func DeleteMerchantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var profile models.MerchantProfile
		if err := database.DB.First(&profile, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Esnaf bulunamadı")
		}

		if err := DeleteCascade(profile.ID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Esnaf silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
