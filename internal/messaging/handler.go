package messaging

import (
	"takas-backend/internal/auth"
	"takas-backend/internal/database"
	"takas-backend/internal/merchant"
	"takas-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

type MessageResponse struct {
	ID          uint   `json:"id"`
	SenderID    *uint  `json:"sender_id"` // null = sistem bildirimi
	SenderName  string `json:"sender_name,omitempty"`
	RecipientID uint   `json:"recipient_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}

func toResponse(m *models.Message) MessageResponse {
	resp := MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Subject:     m.Subject,
		Body:        m.Body,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if m.Sender != nil {
		resp.SenderName = m.Sender.CompanyName
	}
	return resp
}

func toResponses(messages []models.Message) []MessageResponse {
	resp := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, toResponse(&messages[i]))
	}
	return resp
}

// POST /api/messages
func SendMessageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Mesaj gönderebilmek için önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var body SendMessageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		senderID := profile.ID
		msg, err := Send(&senderID, body.RecipientID, body.Subject, body.Body)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(msg))
	}
}

// GET /api/messages - gelen ve gönderilen mesajlar
func ListMessagesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Mesajlarınızı görüntüleyebilmek için önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		var inbox []models.Message
		if err := database.DB.Preload("Sender").
			Where("recipient_id = ?", profile.ID).
			Order("created_at desc").
			Find(&inbox).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mesajlar listelenemedi")
		}

		var sent []models.Message
		if err := database.DB.
			Where("sender_id = ?", profile.ID).
			Order("created_at desc").
			Find(&sent).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mesajlar listelenemedi")
		}

		unread, err := UnreadCount(profile.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Okunmamış mesaj sayısı alınamadı")
		}

		return c.JSON(fiber.Map{
			"inbox":        toResponses(inbox),
			"sent":         toResponses(sent),
			"unread_count": unread,
		})
	}
}

// POST /api/messages/:id/read
func MarkReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		if err := MarkRead(uint(id), profile.ID); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/messages/unread-count - profil tamamlanmamışsa hata değil 0 döner
func UnreadCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return c.JSON(fiber.Map{"unread_count": 0})
		}

		unread, err := UnreadCount(profile.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Okunmamış mesaj sayısı alınamadı")
		}
		return c.JSON(fiber.Map{"unread_count": unread})
	}
}
