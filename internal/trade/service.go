package trade

import (
	"errors"

	"takas-backend/internal/database"
	"takas-backend/internal/merchant"
	"takas-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Her red sebebi ayrı bir hata: çağıran tarafta kullanıcıya özel mesaj
// gösterilebilsin diye genel bir "olmadı" hatasına indirgenmez.
var (
	ErrProfileIncomplete     = fiber.NewError(fiber.StatusForbidden, "Takas teklifi gönderebilmek için önce firma bilgilerinizi tamamlamanız gerekiyor")
	ErrSelfOffer             = fiber.NewError(fiber.StatusBadRequest, "Kendi ürününüze teklif veremezsiniz")
	ErrNotTradeable          = fiber.NewError(fiber.StatusBadRequest, "Bu ürün takas için uygun değil")
	ErrNoEligibleInventory   = fiber.NewError(fiber.StatusBadRequest, "Takas teklifi yapabilmek için önce takas edilebilir bir ürün eklemelisiniz")
	ErrOfferedListingInvalid = fiber.NewError(fiber.StatusBadRequest, "Teklif ettiğiniz ürün size ait, aktif ve takasa uygun olmalı")
	ErrDuplicatePending      = fiber.NewError(fiber.StatusConflict, "Bu ürün için zaten bekleyen bir teklifiniz var")
	ErrListingNotFound       = fiber.NewError(fiber.StatusNotFound, "İlan bulunamadı")
	ErrOfferNotFound         = fiber.NewError(fiber.StatusNotFound, "Teklif bulunamadı")
	ErrNotReceiver           = fiber.NewError(fiber.StatusForbidden, "Bu teklife yanıt verme yetkiniz yok")
	ErrOfferDecided          = fiber.NewError(fiber.StatusConflict, "Bu teklif zaten yanıtlanmış")
	ErrInvalidDecision       = fiber.NewError(fiber.StatusBadRequest, "decision 'accept' veya 'reject' olmalı")
)

// CreateOffer - takas teklifi oluşturur. Ön koşullar sırayla denetlenir;
// aynı (teklif veren, istenen ilan) ikilisi için bekleyen teklif varsa
// yeni kayıt açılmaz. Ön kontrol yarışırsa kısmi tekil index yakalar.
func CreateOffer(userID, requestedListingID, offeredListingID uint, note string) (*models.TradeOffer, error) {
	profile, err := merchant.ProfileForUser(userID)
	if err != nil {
		return nil, ErrProfileIncomplete
	}

	var requested models.Listing
	if err := database.DB.First(&requested, requestedListingID).Error; err != nil {
		return nil, ErrListingNotFound
	}

	if requested.MerchantID == profile.ID {
		return nil, ErrSelfOffer
	}
	if !requested.Tradeable() {
		return nil, ErrNotTradeable
	}

	var eligibleCount int64
	database.DB.Model(&models.Listing{}).
		Where("merchant_id = ? AND active = ? AND transaction_type IN ?",
			profile.ID, true, []models.TransactionType{models.TransactionTrade, models.TransactionBoth}).
		Count(&eligibleCount)
	if eligibleCount == 0 {
		return nil, ErrNoEligibleInventory
	}

	var offered models.Listing
	if err := database.DB.First(&offered, offeredListingID).Error; err != nil {
		return nil, ErrOfferedListingInvalid
	}
	if offered.MerchantID != profile.ID || !offered.Active || !offered.Tradeable() {
		return nil, ErrOfferedListingInvalid
	}

	offer := models.TradeOffer{
		OffererID:          profile.ID,
		ReceiverID:         requested.MerchantID,
		OfferedListingID:   offered.ID,
		RequestedListingID: requested.ID,
		Status:             models.OfferPending,
		Note:               note,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var pendingCount int64
		if err := tx.Model(&models.TradeOffer{}).
			Where("offerer_id = ? AND requested_listing_id = ? AND status = ?",
				profile.ID, requested.ID, models.OfferPending).
			Count(&pendingCount).Error; err != nil {
			return err
		}
		if pendingCount > 0 {
			return ErrDuplicatePending
		}
		return tx.Create(&offer).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePending
		}
		return nil, err
	}

	return &offer, nil
}

// RespondOffer - teklifi kabul/red eder. Sadece teklif alan taraf,
// sadece teklif beklemedeyken. Kabul stok değiştirmez; fiziksel takas
// taraflar arasında yürür, iletişim bilgileri handler'da açılır.
func RespondOffer(userID, offerID uint, decision string) (*models.TradeOffer, error) {
	profile, err := merchant.ProfileForUser(userID)
	if err != nil {
		return nil, ErrProfileIncomplete
	}

	var newStatus models.OfferStatus
	switch decision {
	case "accept":
		newStatus = models.OfferAccepted
	case "reject":
		newStatus = models.OfferRejected
	default:
		return nil, ErrInvalidDecision
	}

	var offer models.TradeOffer
	if err := database.DB.First(&offer, offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}

	if offer.ReceiverID != profile.ID {
		return nil, ErrNotReceiver
	}
	if offer.Status != models.OfferPending {
		return nil, ErrOfferDecided
	}

	offer.Status = newStatus
	if err := database.DB.Model(&offer).Update("status", newStatus).Error; err != nil {
		return nil, err
	}

	return &offer, nil
}

// ListOffers - esnafın aldığı ve gönderdiği teklifler, yeniden eskiye
func ListOffers(profileID uint) (received, sent []models.TradeOffer, err error) {
	if err = database.DB.
		Preload("Offerer").Preload("OfferedListing").Preload("RequestedListing").
		Where("receiver_id = ?", profileID).
		Order("created_at desc").
		Find(&received).Error; err != nil {
		return nil, nil, err
	}

	if err = database.DB.
		Preload("Receiver").Preload("OfferedListing").Preload("RequestedListing").
		Where("offerer_id = ?", profileID).
		Order("created_at desc").
		Find(&sent).Error; err != nil {
		return nil, nil, err
	}

	return received, sent, nil
}
