package listing

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
		Email:        fmt.Sprintf("ilan%d@test.com", fixtureSeq),
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

func makeListing(merchantID uint, name string) *models.Listing {
	return &models.Listing{
		MerchantID:      merchantID,
		Name:            name,
		Description:     "test ürünü",
		Quantity:        5,
		Unit:            models.UnitPiece,
		TransactionType: models.TransactionTrade,
		Active:          true,
	}
}

// Numara serisi 1000001'den başlar ve her ilanla bir artar
func TestListingNumberSequence(t *testing.T) {
	setupDB(t)
	profile := newProfile(t)

	first := makeListing(profile.ID, "Zeytinyağı")
	require.NoError(t, Create(first))
	assert.Equal(t, "1000001", first.ListingNo)

	second := makeListing(profile.ID, "Salça")
	require.NoError(t, Create(second))
	assert.Equal(t, "1000002", second.ListingNo)

	third := makeListing(profile.ID, "Un")
	require.NoError(t, Create(third))
	assert.Equal(t, "1000003", third.ListingNo)
}

// Silinen ilanın numarası geri kullanılmaz, seri kaldığı yerden sürer
func TestListingNumberNotReused(t *testing.T) {
	setupDB(t)
	profile := newProfile(t)

	first := makeListing(profile.ID, "Zeytinyağı")
	require.NoError(t, Create(first))
	second := makeListing(profile.ID, "Salça")
	require.NoError(t, Create(second))

	require.NoError(t, database.DB.Delete(&models.Listing{}, first.ID).Error)

	third := makeListing(profile.ID, "Un")
	require.NoError(t, Create(third))
	assert.Equal(t, "1000003", third.ListingNo)
}

// Önceden numarası atanmış kayıt olduğu gibi saklanır
func TestListingNumberPreassigned(t *testing.T) {
	setupDB(t)
	profile := newProfile(t)

	l := makeListing(profile.ID, "Zeytinyağı")
	l.ListingNo = "5000000"
	require.NoError(t, Create(l))
	assert.Equal(t, "5000000", l.ListingNo)

	// Seri artık en büyük numaradan devam eder
	next := makeListing(profile.ID, "Salça")
	require.NoError(t, Create(next))
	assert.Equal(t, "5000001", next.ListingNo)
}
