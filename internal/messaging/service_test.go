package messaging

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

func newProfile(t *testing.T, company string) *models.MerchantProfile {
	t.Helper()
	fixtureSeq++

	user := &models.User{
		FirstName:    "Test",
		LastName:     "Esnaf",
		Email:        fmt.Sprintf("mesaj%d@test.com", fixtureSeq),
		PasswordHash: "x",
		Role:         models.RoleEsnaf,
	}
	require.NoError(t, database.DB.Create(user).Error)

	profile := &models.MerchantProfile{
		UserID:      user.ID,
		CompanyName: company,
		Address:     "Test Mah. No:1",
		Phone:       "05551112233",
		Active:      true,
	}
	require.NoError(t, database.DB.Create(profile).Error)
	return profile
}

func TestSend(t *testing.T) {
	setupDB(t)

	sender := newProfile(t, "Kaya Gıda")
	recipient := newProfile(t, "Demir Ticaret")

	msg, err := Send(&sender.ID, recipient.ID, "Fiyat sorusu", "Un için toplu fiyatınız nedir?")
	require.NoError(t, err)

	assert.Equal(t, sender.ID, *msg.SenderID)
	assert.Equal(t, recipient.ID, msg.RecipientID)
	assert.False(t, msg.IsRead)

	// Boş konu veya içerik kabul edilmez
	_, err = Send(&sender.ID, recipient.ID, "   ", "içerik")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	_, err = Send(&sender.ID, recipient.ID, "konu", "")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendSystemNotice(t *testing.T) {
	setupDB(t)

	recipient := newProfile(t, "Demir Ticaret")

	require.NoError(t, SendSystemNotice(recipient.ID, "Ürününüz Kaldırıldı", "Açıklama"))

	var msg models.Message
	require.NoError(t, database.DB.Where("recipient_id = ?", recipient.ID).First(&msg).Error)
	assert.Nil(t, msg.SenderID)
	assert.False(t, msg.IsRead)
}

func TestMarkRead(t *testing.T) {
	setupDB(t)

	sender := newProfile(t, "Kaya Gıda")
	recipient := newProfile(t, "Demir Ticaret")

	msg, err := Send(&sender.ID, recipient.ID, "Merhaba", "Takas ilgilenir misiniz?")
	require.NoError(t, err)

	// Gönderen kendi mesajını okundu yapamaz
	assert.ErrorIs(t, MarkRead(msg.ID, sender.ID), ErrNotRecipient)

	// Olmayan mesaj
	assert.ErrorIs(t, MarkRead(99999, recipient.ID), ErrMessageNotFound)

	// Alıcı işaretler
	require.NoError(t, MarkRead(msg.ID, recipient.ID))

	var after models.Message
	require.NoError(t, database.DB.First(&after, msg.ID).Error)
	assert.True(t, after.IsRead)

	// Tekrar işaretlemek hata değil
	require.NoError(t, MarkRead(msg.ID, recipient.ID))
}

func TestUnreadCount(t *testing.T) {
	setupDB(t)

	sender := newProfile(t, "Kaya Gıda")
	recipient := newProfile(t, "Demir Ticaret")

	count, err := UnreadCount(recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	m1, err := Send(&sender.ID, recipient.ID, "Birinci", "mesaj")
	require.NoError(t, err)
	_, err = Send(&sender.ID, recipient.ID, "İkinci", "mesaj")
	require.NoError(t, err)

	count, err = UnreadCount(recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, MarkRead(m1.ID, recipient.ID))

	count, err = UnreadCount(recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Gönderenin okunmamışı yok
	count, err = UnreadCount(sender.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
