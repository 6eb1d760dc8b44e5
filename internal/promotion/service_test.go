package promotion

import (
	"fmt"
	"testing"

	"takas-backend/internal/database"
	"takas-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db
}

var fixtureSeq int

func newProfile(t *testing.T) *models.MerchantProfile {
	t.Helper()
	fixtureSeq++

	user := &models.User{
		FirstName:    "Test",
		LastName:     "Esnaf",
		Email:        fmt.Sprintf("promo%d@test.com", fixtureSeq),
		PasswordHash: "x",
		Role:         models.RoleEsnaf,
	}
	require.NoError(t, database.DB.Create(user).Error)

	profile := &models.MerchantProfile{
		UserID:      user.ID,
		CompanyName: "Kaya Gıda",
		Address:     "Test Mah. No:1",
		Phone:       "05551112233",
		Active:      true,
	}
	require.NoError(t, database.DB.Create(profile).Error)
	return profile
}

func newTestListing(t *testing.T, merchantID uint) *models.Listing {
	t.Helper()
	fixtureSeq++

	l := &models.Listing{
		ListingNo:       fmt.Sprintf("%d", 3000000+fixtureSeq),
		MerchantID:      merchantID,
		Name:            "Zeytinyağı",
		Description:     "test ürünü",
		Quantity:        10,
		Unit:            models.UnitPiece,
		TransactionType: models.TransactionBoth,
		Active:          true,
	}
	require.NoError(t, database.DB.Create(l).Error)
	return l
}

func newOption(t *testing.T, price float64, days int, active bool) *models.PromotionOption {
	t.Helper()

	option := &models.PromotionOption{
		Name:         "Vitrin Paketi",
		Placement:    models.PlacementShowcase,
		DurationDays: days,
		Price:        price,
		Active:       active,
	}
	require.NoError(t, database.DB.Create(option).Error)
	return option
}

func newSlot(t *testing.T, dailyRate float64, active bool) *models.AdSlot {
	t.Helper()

	slot := &models.AdSlot{
		Name:      "Üst Banner",
		Placement: models.AdPlacementHeader,
		Size:      "728x90",
		DailyRate: dailyRate,
		Active:    active,
	}
	require.NoError(t, database.DB.Create(slot).Error)
	return slot
}

func TestPurchasePromotion(t *testing.T) {
	setupDB(t)

	profile := newProfile(t)
	l := newTestListing(t, profile.ID)
	option := newOption(t, 50.00, 7, true)

	pay, err := PurchasePromotion(profile.ID, l.ID, option.ID)
	require.NoError(t, err)

	// Ödeme beklemede, tutar paket fiyatı
	assert.Equal(t, models.PaymentPending, pay.Status)
	assert.Equal(t, models.PaymentKindPromotion, pay.Kind)
	assert.Equal(t, 50.00, pay.Amount)
	assert.NotEmpty(t, pay.ConversationID)
	require.NotNil(t, pay.ListingPromotionID)

	// Öne çıkarma kaydı açıldı ama aktif değil
	var promo models.ListingPromotion
	require.NoError(t, database.DB.First(&promo, *pay.ListingPromotionID).Error)
	assert.False(t, promo.Active)
	assert.Equal(t, models.PaymentPending, promo.PaymentStatus)
	assert.Equal(t, l.ID, promo.ListingID)
	assert.True(t, promo.EndsAt.Equal(promo.StartsAt.AddDate(0, 0, 7)))
}

func TestPurchasePromotionRejections(t *testing.T) {
	setupDB(t)

	owner := newProfile(t)
	other := newProfile(t)
	l := newTestListing(t, owner.ID)
	active := newOption(t, 50.00, 7, true)
	inactive := newOption(t, 50.00, 7, false)

	_, err := PurchasePromotion(owner.ID, 99999, active.ID)
	assert.ErrorIs(t, err, ErrListingNotFound)

	_, err = PurchasePromotion(other.ID, l.ID, active.ID)
	assert.ErrorIs(t, err, ErrListingNotOwned)

	_, err = PurchasePromotion(owner.ID, l.ID, 99999)
	assert.ErrorIs(t, err, ErrOptionNotFound)

	_, err = PurchasePromotion(owner.ID, l.ID, inactive.ID)
	assert.ErrorIs(t, err, ErrOptionInactive)
}

func TestPurchaseAd(t *testing.T) {
	setupDB(t)

	profile := newProfile(t)
	slot := newSlot(t, 10.00, true)

	pay, err := PurchaseAd(profile.ID, slot.ID, "Kampanya", "banner.png", "https://kaya.example", 5)
	require.NoError(t, err)

	// Tutar = günlük ücret x gün
	assert.Equal(t, 50.00, pay.Amount)
	assert.Equal(t, models.PaymentKindAdvertisement, pay.Kind)
	assert.Equal(t, models.PaymentPending, pay.Status)
	require.NotNil(t, pay.AdvertisementID)

	var ad models.Advertisement
	require.NoError(t, database.DB.First(&ad, *pay.AdvertisementID).Error)
	assert.False(t, ad.Active)
	assert.True(t, ad.EndsAt.Equal(ad.StartsAt.AddDate(0, 0, 5)))
}

func TestPurchaseAdRejections(t *testing.T) {
	setupDB(t)

	profile := newProfile(t)
	slot := newSlot(t, 10.00, true)
	closedSlot := newSlot(t, 10.00, false)

	tests := []struct {
		name    string
		slotID  uint
		title   string
		image   string
		link    string
		days    int
		wantErr error
	}{
		{"süre sıfır", slot.ID, "Başlık", "img", "link", 0, ErrInvalidDuration},
		{"süre çok uzun", slot.ID, "Başlık", "img", "link", 366, ErrInvalidDuration},
		{"başlık eksik", slot.ID, "", "img", "link", 5, ErrMissingAdFields},
		{"görsel eksik", slot.ID, "Başlık", "", "link", 5, ErrMissingAdFields},
		{"link eksik", slot.ID, "Başlık", "img", "", 5, ErrMissingAdFields},
		{"alan yok", 99999, "Başlık", "img", "link", 5, ErrSlotNotFound},
		{"alan kapalı", closedSlot.ID, "Başlık", "img", "link", 5, ErrSlotInactive},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PurchaseAd(profile.ID, tc.slotID, tc.title, tc.image, tc.link, tc.days)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestConfirmPayment(t *testing.T) {
	setupDB(t)

	profile := newProfile(t)
	l := newTestListing(t, profile.ID)
	option := newOption(t, 50.00, 7, true)

	pay, err := PurchasePromotion(profile.ID, l.ID, option.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, ConfirmPayment(99999), ErrPaymentNotFound)

	require.NoError(t, ConfirmPayment(pay.ID))

	// Ödeme onaylı, öne çıkarma aktif
	var after models.Payment
	require.NoError(t, database.DB.First(&after, pay.ID).Error)
	assert.Equal(t, models.PaymentConfirmed, after.Status)

	var promo models.ListingPromotion
	require.NoError(t, database.DB.First(&promo, *pay.ListingPromotionID).Error)
	assert.True(t, promo.Active)
	assert.Equal(t, models.PaymentConfirmed, promo.PaymentStatus)

	// Tekrarlanan onay hata değil, sonuç aynı
	require.NoError(t, ConfirmPayment(pay.ID))
	require.NoError(t, database.DB.First(&promo, *pay.ListingPromotionID).Error)
	assert.True(t, promo.Active)
}

func TestConfirmPaymentActivatesAd(t *testing.T) {
	setupDB(t)

	profile := newProfile(t)
	slot := newSlot(t, 20.00, true)

	pay, err := PurchaseAd(profile.ID, slot.ID, "Kampanya", "banner.png", "https://kaya.example", 3)
	require.NoError(t, err)

	require.NoError(t, ConfirmPayment(pay.ID))

	var ad models.Advertisement
	require.NoError(t, database.DB.First(&ad, *pay.AdvertisementID).Error)
	assert.True(t, ad.Active)
	assert.Equal(t, models.PaymentConfirmed, ad.PaymentStatus)
}

func TestCancelPayment(t *testing.T) {
	setupDB(t)

	profile := newProfile(t)
	l := newTestListing(t, profile.ID)
	option := newOption(t, 50.00, 7, true)

	pay, err := PurchasePromotion(profile.ID, l.ID, option.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, CancelPayment(99999), ErrPaymentNotFound)

	require.NoError(t, CancelPayment(pay.ID))

	var after models.Payment
	require.NoError(t, database.DB.First(&after, pay.ID).Error)
	assert.Equal(t, models.PaymentCancelled, after.Status)

	// İptal edilen ödeme aktifleştirme yapmaz ve artık onaylanamaz
	var promo models.ListingPromotion
	require.NoError(t, database.DB.First(&promo, *pay.ListingPromotionID).Error)
	assert.False(t, promo.Active)
	assert.Equal(t, models.PaymentCancelled, promo.PaymentStatus)

	assert.ErrorIs(t, ConfirmPayment(pay.ID), ErrPaymentCancelled)

	// Tekrarlanan iptal no-op
	require.NoError(t, CancelPayment(pay.ID))
}

func TestCancelConfirmedPayment(t *testing.T) {
	setupDB(t)

	profile := newProfile(t)
	l := newTestListing(t, profile.ID)
	option := newOption(t, 50.00, 7, true)

	pay, err := PurchasePromotion(profile.ID, l.ID, option.ID)
	require.NoError(t, err)

	require.NoError(t, ConfirmPayment(pay.ID))
	assert.ErrorIs(t, CancelPayment(pay.ID), ErrPaymentConfirmed)
}
