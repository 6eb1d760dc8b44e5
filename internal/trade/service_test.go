package trade

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

// newMerchant - test için kullanıcı + esnaf profili açar
func newMerchant(t *testing.T, company string) (*models.User, *models.MerchantProfile) {
	t.Helper()
	fixtureSeq++

	user := &models.User{
		FirstName:    "Test",
		LastName:     "Esnaf",
		Email:        fmt.Sprintf("esnaf%d@test.com", fixtureSeq),
		PasswordHash: "x",
		Role:         models.RoleEsnaf,
	}
	require.NoError(t, database.DB.Create(user).Error)

	profile := &models.MerchantProfile{
		UserID:      user.ID,
		CompanyName: company,
		Address:     "Test Mah. Test Cad. No:1",
		Phone:       "05551112233",
		Active:      true,
	}
	require.NoError(t, database.DB.Create(profile).Error)

	return user, profile
}

func newListing(t *testing.T, merchantID uint, name string, tt models.TransactionType, active bool) *models.Listing {
	t.Helper()
	fixtureSeq++

	l := &models.Listing{
		ListingNo:       fmt.Sprintf("%d", 2000000+fixtureSeq),
		MerchantID:      merchantID,
		Name:            name,
		Description:     "test ürünü",
		Quantity:        10,
		Unit:            models.UnitPiece,
		TransactionType: tt,
		Active:          active,
	}
	require.NoError(t, database.DB.Create(l).Error)
	return l
}

func TestCreateOffer(t *testing.T) {
	setupDB(t)

	offererUser, offererProfile := newMerchant(t, "Kaya Gıda")
	_, receiverProfile := newMerchant(t, "Demir Ticaret")

	offered := newListing(t, offererProfile.ID, "Zeytinyağı", models.TransactionTrade, true)
	requested := newListing(t, receiverProfile.ID, "Un", models.TransactionBoth, true)

	offer, err := CreateOffer(offererUser.ID, requested.ID, offered.ID, "5 koli una 3 teneke yağ")
	require.NoError(t, err)

	assert.Equal(t, models.OfferPending, offer.Status)
	assert.Equal(t, offererProfile.ID, offer.OffererID)
	assert.Equal(t, receiverProfile.ID, offer.ReceiverID)
	assert.Equal(t, offered.ID, offer.OfferedListingID)
	assert.Equal(t, requested.ID, offer.RequestedListingID)
	assert.Equal(t, "5 koli una 3 teneke yağ", offer.Note)
}

func TestCreateOfferRejections(t *testing.T) {
	setupDB(t)

	offererUser, offererProfile := newMerchant(t, "Kaya Gıda")
	_, receiverProfile := newMerchant(t, "Demir Ticaret")

	noProfileUser := &models.User{FirstName: "A", LastName: "B", Email: "profilsiz@test.com", PasswordHash: "x", Role: models.RoleEsnaf}
	require.NoError(t, database.DB.Create(noProfileUser).Error)

	myTradeable := newListing(t, offererProfile.ID, "Zeytinyağı", models.TransactionTrade, true)
	myOwnListing := newListing(t, offererProfile.ID, "Salça", models.TransactionTrade, true)
	mySaleOnly := newListing(t, offererProfile.ID, "Şeker", models.TransactionSale, true)
	myInactive := newListing(t, offererProfile.ID, "Sirke", models.TransactionTrade, false)

	theirTradeable := newListing(t, receiverProfile.ID, "Un", models.TransactionTrade, true)
	theirSaleOnly := newListing(t, receiverProfile.ID, "Tuz", models.TransactionSale, true)

	tests := []struct {
		name      string
		userID    uint
		requested uint
		offered   uint
		wantErr   error
	}{
		{"profil tamamlanmamış", noProfileUser.ID, theirTradeable.ID, myTradeable.ID, ErrProfileIncomplete},
		{"istenen ilan yok", offererUser.ID, 99999, myTradeable.ID, ErrListingNotFound},
		{"kendi ilanına teklif", offererUser.ID, myOwnListing.ID, myTradeable.ID, ErrSelfOffer},
		{"istenen ilan takasa kapalı", offererUser.ID, theirSaleOnly.ID, myTradeable.ID, ErrNotTradeable},
		{"teklif edilen ilan yok", offererUser.ID, theirTradeable.ID, 99999, ErrOfferedListingInvalid},
		{"teklif edilen ilan başkasının", offererUser.ID, theirTradeable.ID, theirTradeable.ID, ErrOfferedListingInvalid},
		{"teklif edilen ilan satış-only", offererUser.ID, theirTradeable.ID, mySaleOnly.ID, ErrOfferedListingInvalid},
		{"teklif edilen ilan pasif", offererUser.ID, theirTradeable.ID, myInactive.ID, ErrOfferedListingInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateOffer(tc.userID, tc.requested, tc.offered, "")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// Takasa açık envanteri olmayan esnaf hiç teklif veremez
func TestCreateOfferNoEligibleInventory(t *testing.T) {
	setupDB(t)

	offererUser, offererProfile := newMerchant(t, "Kaya Gıda")
	_, receiverProfile := newMerchant(t, "Demir Ticaret")

	// Sadece satışa açık ilanı var, takasa açık hiçbir ilanı yok
	saleOnly := newListing(t, offererProfile.ID, "Şeker", models.TransactionSale, true)
	theirTradeable := newListing(t, receiverProfile.ID, "Un", models.TransactionTrade, true)

	_, err := CreateOffer(offererUser.ID, theirTradeable.ID, saleOnly.ID, "")
	assert.ErrorIs(t, err, ErrNoEligibleInventory)
}

func TestCreateOfferDuplicatePending(t *testing.T) {
	setupDB(t)

	offererUser, offererProfile := newMerchant(t, "Kaya Gıda")
	receiverUser, receiverProfile := newMerchant(t, "Demir Ticaret")

	offered := newListing(t, offererProfile.ID, "Zeytinyağı", models.TransactionTrade, true)
	otherOffered := newListing(t, offererProfile.ID, "Salça", models.TransactionTrade, true)
	requested := newListing(t, receiverProfile.ID, "Un", models.TransactionTrade, true)

	first, err := CreateOffer(offererUser.ID, requested.ID, offered.ID, "")
	require.NoError(t, err)

	// Aynı ilana ikinci bekleyen teklif - farklı ürün teklif edilse bile olmaz
	_, err = CreateOffer(offererUser.ID, requested.ID, otherOffered.ID, "")
	assert.ErrorIs(t, err, ErrDuplicatePending)

	// Teklif reddedilince kural kalkar: tekillik sadece bekleyenler için
	_, err = RespondOffer(receiverUser.ID, first.ID, "reject")
	require.NoError(t, err)

	second, err := CreateOffer(offererUser.ID, requested.ID, otherOffered.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.OfferPending, second.Status)
}

func TestRespondOffer(t *testing.T) {
	setupDB(t)

	offererUser, offererProfile := newMerchant(t, "Kaya Gıda")
	receiverUser, receiverProfile := newMerchant(t, "Demir Ticaret")
	outsiderUser, _ := newMerchant(t, "Üçüncü Firma")

	offered := newListing(t, offererProfile.ID, "Zeytinyağı", models.TransactionTrade, true)
	requested := newListing(t, receiverProfile.ID, "Un", models.TransactionTrade, true)

	offer, err := CreateOffer(offererUser.ID, requested.ID, offered.ID, "")
	require.NoError(t, err)

	// Teklif veren kendi teklifine yanıt veremez
	_, err = RespondOffer(offererUser.ID, offer.ID, "accept")
	assert.ErrorIs(t, err, ErrNotReceiver)

	// Üçüncü taraf hiç yanıt veremez
	_, err = RespondOffer(outsiderUser.ID, offer.ID, "accept")
	assert.ErrorIs(t, err, ErrNotReceiver)

	// Geçersiz karar
	_, err = RespondOffer(receiverUser.ID, offer.ID, "maybe")
	assert.ErrorIs(t, err, ErrInvalidDecision)

	// Olmayan teklif
	_, err = RespondOffer(receiverUser.ID, 99999, "accept")
	assert.ErrorIs(t, err, ErrOfferNotFound)

	// Kabul
	accepted, err := RespondOffer(receiverUser.ID, offer.ID, "accept")
	require.NoError(t, err)
	assert.Equal(t, models.OfferAccepted, accepted.Status)

	// Karar terminaldir: tekrar yanıtlanamaz, geri alınamaz
	_, err = RespondOffer(receiverUser.ID, offer.ID, "reject")
	assert.ErrorIs(t, err, ErrOfferDecided)
	_, err = RespondOffer(receiverUser.ID, offer.ID, "accept")
	assert.ErrorIs(t, err, ErrOfferDecided)
}

// Kabul stokları değiştirmez, sadece teklif durumunu çevirir
func TestAcceptDoesNotTouchInventory(t *testing.T) {
	setupDB(t)

	offererUser, offererProfile := newMerchant(t, "Kaya Gıda")
	receiverUser, receiverProfile := newMerchant(t, "Demir Ticaret")

	offered := newListing(t, offererProfile.ID, "Zeytinyağı", models.TransactionTrade, true)
	requested := newListing(t, receiverProfile.ID, "Un", models.TransactionTrade, true)

	offer, err := CreateOffer(offererUser.ID, requested.ID, offered.ID, "")
	require.NoError(t, err)

	_, err = RespondOffer(receiverUser.ID, offer.ID, "accept")
	require.NoError(t, err)

	var after models.Listing
	require.NoError(t, database.DB.First(&after, offered.ID).Error)
	assert.Equal(t, uint(10), after.Quantity)
	assert.True(t, after.Active)

	require.NoError(t, database.DB.First(&after, requested.ID).Error)
	assert.Equal(t, uint(10), after.Quantity)
	assert.True(t, after.Active)
}

func TestListOffers(t *testing.T) {
	setupDB(t)

	offererUser, offererProfile := newMerchant(t, "Kaya Gıda")
	_, receiverProfile := newMerchant(t, "Demir Ticaret")

	offered := newListing(t, offererProfile.ID, "Zeytinyağı", models.TransactionTrade, true)
	requested1 := newListing(t, receiverProfile.ID, "Un", models.TransactionTrade, true)
	requested2 := newListing(t, receiverProfile.ID, "Bulgur", models.TransactionTrade, true)

	_, err := CreateOffer(offererUser.ID, requested1.ID, offered.ID, "")
	require.NoError(t, err)
	_, err = CreateOffer(offererUser.ID, requested2.ID, offered.ID, "")
	require.NoError(t, err)

	// Teklif veren tarafında: hepsi "gönderilen"
	received, sent, err := ListOffers(offererProfile.ID)
	require.NoError(t, err)
	assert.Len(t, received, 0)
	assert.Len(t, sent, 2)

	// Alan tarafında: hepsi "alınan"
	received, sent, err = ListOffers(receiverProfile.ID)
	require.NoError(t, err)
	assert.Len(t, received, 2)
	assert.Len(t, sent, 0)
}
