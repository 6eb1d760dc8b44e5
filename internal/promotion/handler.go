package promotion

import (
	"fmt"
	"strconv"
	"strings"

	"takas-backend/internal/auth"
	"takas-backend/internal/config"
	"takas-backend/internal/database"
	"takas-backend/internal/logger"
	"takas-backend/internal/merchant"
	"takas-backend/internal/models"
	"takas-backend/internal/payment"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// -------------------------
// Request/Response Types
// -------------------------

type PromotionOptionRequest struct {
	Name         string  `json:"name"`
	Placement    string  `json:"placement"`
	DurationDays int     `json:"duration_days"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	Active       *bool   `json:"active"`
}

type AdSlotRequest struct {
	Name      string  `json:"name"`
	Placement string  `json:"placement"`
	Size      string  `json:"size"`
	DailyRate float64 `json:"daily_rate"`
	Active    *bool   `json:"active"`
}

type PurchasePromotionRequest struct {
	OptionID uint `json:"option_id"`
}

type PurchaseAdRequest struct {
	SlotID uint   `json:"slot_id"`
	Title  string `json:"title"`
	Image  string `json:"image"`
	Link   string `json:"link"`
	Days   int    `json:"days"`
}

type PaymentResponse struct {
	ID                 uint    `json:"id"`
	Kind               string  `json:"kind"`
	Amount             float64 `json:"amount"`
	Status             string  `json:"status"`
	ListingPromotionID *uint   `json:"listing_promotion_id,omitempty"`
	AdvertisementID    *uint   `json:"advertisement_id,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

func toPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID,
		Kind:               string(p.Kind),
		Amount:             p.Amount,
		Status:             string(p.Status),
		ListingPromotionID: p.ListingPromotionID,
		AdvertisementID:    p.AdvertisementID,
		CreatedAt:          p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func parsePlacement(s string) (models.PromotionPlacement, error) {
	switch models.PromotionPlacement(s) {
	case models.PlacementShowcase, models.PlacementCategoryTop, models.PlacementHomepageTop:
		return models.PromotionPlacement(s), nil
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, "placement 'showcase', 'category_top' veya 'homepage_top' olmalı")
	}
}

func parseAdPlacement(s string) (models.AdPlacement, error) {
	switch models.AdPlacement(s) {
	case models.AdPlacementHeader, models.AdPlacementSidebar, models.AdPlacementFooter, models.AdPlacementCategory:
		return models.AdPlacement(s), nil
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, "placement 'header', 'sidebar', 'footer' veya 'category' olmalı")
	}
}

// -------------------------
// Paket ve reklam alanı yönetimi
// -------------------------

// GET /api/promotion-options - satıştaki paketler, ucuzdan pahalıya
func ListOptionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var options []models.PromotionOption
		if err := database.DB.
			Where("active = ?", true).
			Order("price asc").
			Find(&options).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Paketler listelenemedi")
		}
		return c.JSON(options)
	}
}

// POST /api/admin/promotion-options
func CreateOptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PromotionOptionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.DurationDays <= 0 || body.Price <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Paket adı, süre ve fiyat zorunlu")
		}

		placement, err := parsePlacement(body.Placement)
		if err != nil {
			return err
		}

		option := models.PromotionOption{
			Name:         body.Name,
			Placement:    placement,
			DurationDays: body.DurationDays,
			Price:        body.Price,
			Description:  body.Description,
			Active:       true,
		}
		if body.Active != nil {
			option.Active = *body.Active
		}

		if err := database.DB.Create(&option).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Paket kaydedilemedi")
		}
		return c.Status(fiber.StatusCreated).JSON(option)
	}
}

// PUT /api/admin/promotion-options/:id
func UpdateOptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var option models.PromotionOption
		if err := database.DB.First(&option, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Paket bulunamadı")
		}

		var body PromotionOptionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if v := strings.TrimSpace(body.Name); v != "" {
			option.Name = v
		}
		if body.Placement != "" {
			placement, err := parsePlacement(body.Placement)
			if err != nil {
				return err
			}
			option.Placement = placement
		}
		if body.DurationDays > 0 {
			option.DurationDays = body.DurationDays
		}
		if body.Price > 0 {
			option.Price = body.Price
		}
		option.Description = body.Description
		if body.Active != nil {
			option.Active = *body.Active
		}

		if err := database.DB.Save(&option).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Paket güncellenemedi")
		}
		return c.JSON(option)
	}
}

// GET /api/ad-slots
func ListAdSlotsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var slots []models.AdSlot
		if err := database.DB.
			Where("active = ?", true).
			Order("daily_rate asc").
			Find(&slots).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Reklam alanları listelenemedi")
		}
		return c.JSON(slots)
	}
}

// POST /api/admin/ad-slots
func CreateAdSlotHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdSlotRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.DailyRate <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Alan adı ve günlük ücret zorunlu")
		}

		placement, err := parseAdPlacement(body.Placement)
		if err != nil {
			return err
		}

		slot := models.AdSlot{
			Name:      body.Name,
			Placement: placement,
			Size:      body.Size,
			DailyRate: body.DailyRate,
			Active:    true,
		}
		if body.Active != nil {
			slot.Active = *body.Active
		}

		if err := database.DB.Create(&slot).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Reklam alanı kaydedilemedi")
		}
		return c.Status(fiber.StatusCreated).JSON(slot)
	}
}

// PUT /api/admin/ad-slots/:id
func UpdateAdSlotHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var slot models.AdSlot
		if err := database.DB.First(&slot, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reklam alanı bulunamadı")
		}

		var body AdSlotRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if v := strings.TrimSpace(body.Name); v != "" {
			slot.Name = v
		}
		if body.Placement != "" {
			placement, err := parseAdPlacement(body.Placement)
			if err != nil {
				return err
			}
			slot.Placement = placement
		}
		if body.Size != "" {
			slot.Size = body.Size
		}
		if body.DailyRate > 0 {
			slot.DailyRate = body.DailyRate
		}
		if body.Active != nil {
			slot.Active = *body.Active
		}

		if err := database.DB.Save(&slot).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Reklam alanı güncellenemedi")
		}
		return c.JSON(slot)
	}
}

// -------------------------
// Satın alma
// -------------------------

// POST /api/listings/:id/promote
func PurchasePromotionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		listingID, err := c.ParamsInt("id")
		if err != nil || listingID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var body PurchasePromotionRequest
		if err := c.BodyParser(&body); err != nil || body.OptionID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "option_id zorunlu")
		}

		pay, err := PurchasePromotion(profile.ID, uint(listingID), body.OptionID)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"payment": toPaymentResponse(pay),
			"message": "Ödemeniz onaylandıktan sonra ürününüz öne çıkarılacaktır",
		})
	}
}

// POST /api/ads
func PurchaseAdHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var body PurchaseAdRequest
		if err := c.BodyParser(&body); err != nil || body.SlotID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "slot_id zorunlu")
		}

		pay, err := PurchaseAd(profile.ID, body.SlotID,
			strings.TrimSpace(body.Title), strings.TrimSpace(body.Image), strings.TrimSpace(body.Link), body.Days)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"payment": toPaymentResponse(pay),
			"message": "Ödemeniz onaylandıktan sonra reklamınız yayınlanacaktır",
		})
	}
}

// -------------------------
// Ödeme
// -------------------------

// GET /api/payments/:id - ödeme detayları ve havale bilgileri (sahibi)
func PaymentInfoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var pay models.Payment
		if err := database.DB.First(&pay, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ödeme bulunamadı")
		}
		if pay.MerchantID != profile.ID {
			return fiber.NewError(fiber.StatusForbidden, "Bu ödemeye erişim yetkiniz yok")
		}

		return c.JSON(fiber.Map{
			"payment": toPaymentResponse(&pay),
			"bank_info": fiber.Map{
				"bank_name":      "Ziraat Bankası",
				"account_holder": "TakasOnline Ltd. Şti.",
				"iban":           "TR00 0000 0000 0000 0000 0000 00",
				"reference":      fmt.Sprintf("TAKAS-%d", pay.ID),
			},
		})
	}
}

// POST /api/payments/:id/checkout - iyzico ödeme formunu başlatır.
// Gateway hatası ödeme durumunu değiştirmez, sadece çağırana döner.
func CheckoutHandler(gw *payment.Client, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var pay models.Payment
		if err := database.DB.Preload("Merchant.User").First(&pay, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ödeme bulunamadı")
		}
		if pay.MerchantID != profile.ID {
			return fiber.NewError(fiber.StatusForbidden, "Bu ödemeye erişim yetkiniz yok")
		}
		if pay.Status != models.PaymentPending {
			return fiber.NewError(fiber.StatusConflict, "Sadece bekleyen ödemeler için form başlatılabilir")
		}

		kindLabel := "Öne Çıkarma"
		if pay.Kind == models.PaymentKindAdvertisement {
			kindLabel = "Reklam"
		}
		amount := strconv.FormatFloat(pay.Amount, 'f', 2, 64)

		req := &payment.CheckoutFormRequest{
			Locale:              "tr",
			ConversationID:      pay.ConversationID,
			Price:               amount,
			PaidPrice:           amount,
			Currency:            "TRY",
			BasketID:            strconv.FormatUint(uint64(pay.ID), 10),
			PaymentGroup:        "PRODUCT",
			CallbackURL:         cfg.CallbackURL,
			EnabledInstallments: []string{"2", "3", "6", "9"},
			Buyer: payment.Buyer{
				ID:                  strconv.FormatUint(uint64(pay.Merchant.UserID), 10),
				Name:                pay.Merchant.User.FirstName,
				Surname:             pay.Merchant.User.LastName,
				Email:               pay.Merchant.User.Email,
				IdentityNumber:      "11111111111",
				RegistrationAddress: pay.Merchant.Address,
				City:                "Istanbul",
				Country:             "Turkey",
				IP:                  c.IP(),
			},
			ShippingAddress: payment.Address{
				ContactName: pay.Merchant.CompanyName,
				City:        "Istanbul",
				Country:     "Turkey",
				Address:     pay.Merchant.Address,
			},
			BillingAddress: payment.Address{
				ContactName: pay.Merchant.CompanyName,
				City:        "Istanbul",
				Country:     "Turkey",
				Address:     pay.Merchant.Address,
			},
			BasketItems: []payment.BasketItem{{
				ID:        strconv.FormatUint(uint64(pay.ID), 10),
				Name:      kindLabel + " Ödemesi",
				Category1: kindLabel,
				ItemType:  "VIRTUAL",
				Price:     amount,
			}},
		}

		result, err := gw.InitializeCheckoutForm(req)
		if err != nil {
			logger.Get().Error("Ödeme formu başlatılamadı",
				zap.Uint("payment_id", pay.ID), zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, "Ödeme servisi şu anda kullanılamıyor, lütfen tekrar deneyin")
		}

		return c.JSON(fiber.Map{
			"token":            result.Token,
			"payment_page_url": result.PaymentPageURL,
		})
	}
}

// POST /api/payments/callback - gateway'in ödeme sonrası çağırdığı uç.
// Sonuç sadece doğrulanıp raporlanır; ödeme onayı buradan verilmez,
// onay ayrı ve yetkili bir işlemdir (gateway zaman aşımı ödeme durumunu
// bozamaz).
func CallbackHandler(gw *payment.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Token string `json:"token" form:"token"`
		}
		if err := c.BodyParser(&body); err != nil || body.Token == "" {
			return fiber.NewError(fiber.StatusBadRequest, "token zorunlu")
		}

		result, err := gw.RetrieveCheckoutForm(body.Token)
		if err != nil {
			logger.Get().Error("Ödeme doğrulaması yapılamadı", zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, "Ödeme servisi şu anda kullanılamıyor")
		}

		logger.Get().Info("Ödeme doğrulama sonucu alındı",
			zap.String("conversation_id", result.ConversationID),
			zap.String("payment_status", result.PaymentStatus))

		return c.JSON(fiber.Map{
			"conversation_id": result.ConversationID,
			"payment_status":  result.PaymentStatus,
		})
	}
}

// -------------------------
// Yönetici işlemleri
// -------------------------

// GET /api/admin/payments?status=...
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Payment{}).Preload("Merchant")

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var payments []models.Payment
		if err := dbq.Order("created_at desc").Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ödemeler listelenemedi")
		}

		resp := make([]PaymentResponse, 0, len(payments))
		for i := range payments {
			resp = append(resp, toPaymentResponse(&payments[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/payments/:id/confirm
func ConfirmPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		if err := ConfirmPayment(uint(id)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Ödeme onaylandı"})
	}
}

// POST /api/admin/payments/:id/cancel
func CancelPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		if err := CancelPayment(uint(id)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Ödeme iptal edildi"})
	}
}
