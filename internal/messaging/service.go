package messaging

import (
	"errors"
	"strings"

	"takas-backend/internal/database"
	"takas-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = fiber.NewError(fiber.StatusNotFound, "Mesaj bulunamadı")
	ErrNotRecipient    = fiber.NewError(fiber.StatusForbidden, "Bu mesaja erişim yetkiniz yok")
	ErrEmptyMessage    = fiber.NewError(fiber.StatusBadRequest, "Konu ve içerik boş olamaz")
)

// Send - esnaftan esnafa mesaj. senderID nil ise sistem bildirimi.
func Send(senderID *uint, recipientID uint, subject, body string) (*models.Message, error) {
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if subject == "" || body == "" {
		return nil, ErrEmptyMessage
	}

	var recipient models.MerchantProfile
	if err := database.DB.First(&recipient, recipientID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Alıcı bulunamadı")
	}

	msg := models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     subject,
		Body:        body,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendSystemNotice - gönderen olmadan sistem bildirimi bırakır
// (örneğin yönetici ilan kaldırdığında)
func SendSystemNotice(recipientID uint, subject, body string) error {
	_, err := Send(nil, recipientID, subject, body)
	return err
}

// MarkRead - mesajı okundu işaretler. Sadece alıcı işaretleyebilir;
// zaten okunmuşsa hata değil, no-op.
func MarkRead(messageID, profileID uint) error {
	var msg models.Message
	if err := database.DB.First(&msg, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}

	if msg.RecipientID != profileID {
		return ErrNotRecipient
	}

	if msg.IsRead {
		return nil
	}

	return database.DB.Model(&msg).Update("is_read", true).Error
}

// UnreadCount - esnafın okunmamış mesaj sayısı
func UnreadCount(profileID uint) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", profileID, false).
		Count(&count).Error
	return count, err
}
