package trade

import (
	"time"

	"takas-backend/internal/auth"
	"takas-backend/internal/database"
	"takas-backend/internal/merchant"
	"takas-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateOfferRequest struct {
	RequestedListingID uint   `json:"requested_listing_id"`
	OfferedListingID   uint   `json:"offered_listing_id"`
	Note               string `json:"note"`
}

type RespondOfferRequest struct {
	Decision string `json:"decision"` // "accept" veya "reject"
}

type OfferResponse struct {
	ID                 uint   `json:"id"`
	OffererID          uint   `json:"offerer_id"`
	OffererName        string `json:"offerer_name,omitempty"`
	ReceiverID         uint   `json:"receiver_id"`
	ReceiverName       string `json:"receiver_name,omitempty"`
	OfferedListingID   uint   `json:"offered_listing_id"`
	OfferedListing     string `json:"offered_listing,omitempty"`
	RequestedListingID uint   `json:"requested_listing_id"`
	RequestedListing   string `json:"requested_listing,omitempty"`
	Status             string `json:"status"`
	Note               string `json:"note"`
	CreatedAt          string `json:"created_at"`
}

func toResponse(o *models.TradeOffer) OfferResponse {
	resp := OfferResponse{
		ID:                 o.ID,
		OffererID:          o.OffererID,
		ReceiverID:         o.ReceiverID,
		OfferedListingID:   o.OfferedListingID,
		RequestedListingID: o.RequestedListingID,
		Status:             string(o.Status),
		Note:               o.Note,
		CreatedAt:          o.CreatedAt.Format(time.RFC3339),
	}
	if o.Offerer.ID != 0 {
		resp.OffererName = o.Offerer.CompanyName
	}
	if o.Receiver.ID != 0 {
		resp.ReceiverName = o.Receiver.CompanyName
	}
	if o.OfferedListing.ID != 0 {
		resp.OfferedListing = o.OfferedListing.Name
	}
	if o.RequestedListing.ID != 0 {
		resp.RequestedListing = o.RequestedListing.Name
	}
	return resp
}

func toResponses(offers []models.TradeOffer) []OfferResponse {
	resp := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		resp = append(resp, toResponse(&offers[i]))
	}
	return resp
}

func contactOf(p *models.MerchantProfile) fiber.Map {
	contact := fiber.Map{
		"company": p.CompanyName,
		"phone":   p.Phone,
		"address": p.Address,
	}
	if p.WhatsApp != "" {
		contact["whatsapp"] = p.WhatsApp
	}
	return contact
}

// -------------------------
// Handlers
// -------------------------

// POST /api/trade-offers
func CreateOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateOfferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if body.RequestedListingID == 0 || body.OfferedListingID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "requested_listing_id ve offered_listing_id zorunlu")
		}

		offer, err := CreateOffer(userID, body.RequestedListingID, body.OfferedListingID, body.Note)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(offer))
	}
}

// POST /api/trade-offers/:id/respond - kabulde iki tarafın iletişim
// bilgileri de döner, fiziksel takası kendileri organize eder
func RespondOfferHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var body RespondOfferRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		offer, err := RespondOffer(userID, uint(id), body.Decision)
		if err != nil {
			return err
		}

		response := fiber.Map{"offer": toResponse(offer)}

		if offer.Status == models.OfferAccepted {
			var offerer, receiver models.MerchantProfile
			if err := database.DB.First(&offerer, offer.OffererID).Error; err == nil {
				response["offerer_contact"] = contactOf(&offerer)
			}
			if err := database.DB.First(&receiver, offer.ReceiverID).Error; err == nil {
				response["receiver_contact"] = contactOf(&receiver)
			}
		}

		return c.JSON(response)
	}
}

// GET /api/trade-offers - alınan ve gönderilen teklifler
func ListOffersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		profile, err := merchant.ProfileForUser(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Takas tekliflerini görüntüleyebilmek için önce firma bilgilerinizi tamamlamanız gerekiyor")
		}

		received, sent, err := ListOffers(profile.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Teklifler listelenemedi")
		}

		return c.JSON(fiber.Map{
			"received": toResponses(received),
			"sent":     toResponses(sent),
		})
	}
}
