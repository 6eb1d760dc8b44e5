package promotion

import (
	"errors"
	"time"

	"takas-backend/internal/database"
	"takas-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListingNotFound  = fiber.NewError(fiber.StatusNotFound, "İlan bulunamadı")
	ErrListingNotOwned  = fiber.NewError(fiber.StatusForbidden, "Bu ilana erişim yetkiniz yok")
	ErrOptionNotFound   = fiber.NewError(fiber.StatusNotFound, "Öne çıkarma paketi bulunamadı")
	ErrOptionInactive   = fiber.NewError(fiber.StatusBadRequest, "Öne çıkarma paketi satışta değil")
	ErrSlotNotFound     = fiber.NewError(fiber.StatusNotFound, "Reklam alanı bulunamadı")
	ErrSlotInactive     = fiber.NewError(fiber.StatusBadRequest, "Reklam alanı kiralamaya kapalı")
	ErrInvalidDuration  = fiber.NewError(fiber.StatusBadRequest, "Reklam süresi 1 ile 365 gün arasında olmalı")
	ErrMissingAdFields  = fiber.NewError(fiber.StatusBadRequest, "Başlık, görsel ve link zorunlu")
	ErrPaymentNotFound  = fiber.NewError(fiber.StatusNotFound, "Ödeme bulunamadı")
	ErrPaymentCancelled = fiber.NewError(fiber.StatusConflict, "İptal edilmiş ödeme onaylanamaz")
	ErrPaymentConfirmed = fiber.NewError(fiber.StatusConflict, "Onaylanmış ödeme iptal edilemez")
)

// PurchasePromotion - ilan için öne çıkarma satın alır. Öne çıkarma
// kaydı ve ödeme tek transaction'da açılır: ikisi de oluşur ya da
// hiçbiri. Kayıt ödeme onaylanana kadar aktif değildir.
func PurchasePromotion(profileID, listingID, optionID uint) (*models.Payment, error) {
	var l models.Listing
	if err := database.DB.First(&l, listingID).Error; err != nil {
		return nil, ErrListingNotFound
	}
	if l.MerchantID != profileID {
		return nil, ErrListingNotOwned
	}

	var option models.PromotionOption
	if err := database.DB.First(&option, optionID).Error; err != nil {
		return nil, ErrOptionNotFound
	}
	if !option.Active {
		return nil, ErrOptionInactive
	}

	now := time.Now()
	promo := models.ListingPromotion{
		ListingID:     l.ID,
		OptionID:      option.ID,
		StartsAt:      now,
		EndsAt:        now.AddDate(0, 0, option.DurationDays),
		Active:        false,
		PaymentStatus: models.PaymentPending,
	}
	payment := models.Payment{
		MerchantID:     profileID,
		Kind:           models.PaymentKindPromotion,
		Amount:         option.Price,
		Status:         models.PaymentPending,
		ConversationID: uuid.NewString(),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&promo).Error; err != nil {
			return err
		}
		payment.ListingPromotionID = &promo.ID
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// PurchaseAd - reklam alanı kiralar. Tutar = günlük ücret x gün sayısı.
// Reklam ve ödeme tek transaction'da açılır.
func PurchaseAd(profileID, slotID uint, title, image, link string, days int) (*models.Payment, error) {
	if days < 1 || days > 365 {
		return nil, ErrInvalidDuration
	}
	if title == "" || image == "" || link == "" {
		return nil, ErrMissingAdFields
	}

	var slot models.AdSlot
	if err := database.DB.First(&slot, slotID).Error; err != nil {
		return nil, ErrSlotNotFound
	}
	if !slot.Active {
		return nil, ErrSlotInactive
	}

	now := time.Now()
	ad := models.Advertisement{
		MerchantID:    profileID,
		SlotID:        slot.ID,
		Title:         title,
		Image:         image,
		Link:          link,
		StartsAt:      now,
		EndsAt:        now.AddDate(0, 0, days),
		Active:        false,
		PaymentStatus: models.PaymentPending,
	}
	payment := models.Payment{
		MerchantID:     profileID,
		Kind:           models.PaymentKindAdvertisement,
		Amount:         slot.DailyRate * float64(days),
		Status:         models.PaymentPending,
		ConversationID: uuid.NewString(),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ad).Error; err != nil {
			return err
		}
		payment.AdvertisementID = &ad.ID
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// ConfirmPayment - ödemeyi onaylar ve bağlı kaydı aktifleştirir.
// Aktifleştirmenin tek yolu budur; gateway'den dönen sonuç dahil hiçbir
// dış sinyal kaydı doğrudan aktif edemez. Tekrarlanan çağrı hata değil,
// aynı sonucu üretir.
func ConfirmPayment(paymentID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if payment.Status == models.PaymentCancelled {
			return ErrPaymentCancelled
		}

		if err := tx.Model(&payment).Update("status", models.PaymentConfirmed).Error; err != nil {
			return err
		}

		switch {
		case payment.ListingPromotionID != nil:
			return tx.Model(&models.ListingPromotion{}).
				Where("id = ?", *payment.ListingPromotionID).
				Updates(map[string]interface{}{
					"active":         true,
					"payment_status": models.PaymentConfirmed,
				}).Error
		case payment.AdvertisementID != nil:
			return tx.Model(&models.Advertisement{}).
				Where("id = ?", *payment.AdvertisementID).
				Updates(map[string]interface{}{
					"active":         true,
					"payment_status": models.PaymentConfirmed,
				}).Error
		}
		return nil
	})
}

// CancelPayment - bekleyen ödemeyi iptal eder, bağlı kayıt aktif olmaz.
// Onaylanmış ödeme bu yoldan geri alınamaz.
func CancelPayment(paymentID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if payment.Status == models.PaymentConfirmed {
			return ErrPaymentConfirmed
		}
		if payment.Status == models.PaymentCancelled {
			return nil
		}

		if err := tx.Model(&payment).Update("status", models.PaymentCancelled).Error; err != nil {
			return err
		}

		switch {
		case payment.ListingPromotionID != nil:
			return tx.Model(&models.ListingPromotion{}).
				Where("id = ?", *payment.ListingPromotionID).
				Update("payment_status", models.PaymentCancelled).Error
		case payment.AdvertisementID != nil:
			return tx.Model(&models.Advertisement{}).
				Where("id = ?", *payment.AdvertisementID).
				Update("payment_status", models.PaymentCancelled).Error
		}
		return nil
	})
}
