package merchant

import (
	"errors"

	"takas-backend/internal/database"
	"takas-backend/internal/models"

	"gorm.io/gorm"
)

// ErrNoProfile - kullanıcı hesabı var ama firma bilgileri tamamlanmamış
var ErrNoProfile = errors.New("esnaf profili bulunamadı")

// ProfileForUser - hesaba bağlı esnaf profilini getirir
func ProfileForUser(userID uint) (*models.MerchantProfile, error) {
	var profile models.MerchantProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	return &profile, nil
}

// DeleteCascade - bir esnafı tüm verisiyle birlikte siler. Veritabanı
// cascade'ine bırakılmaz; silme sırası burada sabitlenir ki storage
// davranışından bağımsız test edilebilsin. Sıra: ödemeler, öne
// çıkarmalar, reklamlar, teklifler (iki yönde + ilanlarına gelenler),
// mesajlar (iki yönde), ilanlar, profil, hesap.
func DeleteCascade(profileID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.MerchantProfile
		if err := tx.First(&profile, profileID).Error; err != nil {
			return err
		}

		var listingIDs []uint
		if err := tx.Model(&models.Listing{}).
			Where("merchant_id = ?", profile.ID).
			Pluck("id", &listingIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("merchant_id = ?", profile.ID).
			Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if len(listingIDs) > 0 {
			if err := tx.Where("listing_id IN ?", listingIDs).
				Delete(&models.ListingPromotion{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("merchant_id = ?", profile.ID).
			Delete(&models.Advertisement{}).Error; err != nil {
			return err
		}

		offerQuery := tx.Where("offerer_id = ? OR receiver_id = ?", profile.ID, profile.ID)
		if len(listingIDs) > 0 {
			offerQuery = offerQuery.Or("offered_listing_id IN ? OR requested_listing_id IN ?", listingIDs, listingIDs)
		}
		if err := offerQuery.Delete(&models.TradeOffer{}).Error; err != nil {
			return err
		}

		if err := tx.Where("sender_id = ? OR recipient_id = ?", profile.ID, profile.ID).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}

		if err := tx.Where("merchant_id = ?", profile.ID).
			Delete(&models.Listing{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.MerchantProfile{}, profile.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, profile.UserID).Error
	})
}
