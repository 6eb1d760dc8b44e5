package main

import (
	"os"
	"strings"

	"takas-backend/internal/auth"
	"takas-backend/internal/catalog"
	"takas-backend/internal/config"
	"takas-backend/internal/database"
	"takas-backend/internal/listing"
	"takas-backend/internal/logger"
	"takas-backend/internal/merchant"
	"takas-backend/internal/messaging"
	"takas-backend/internal/metrics"
	"takas-backend/internal/models"
	"takas-backend/internal/payment"
	"takas-backend/internal/promotion"
	"takas-backend/internal/trade"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	if err := logger.Init(os.Getenv("APP_ENV")); err != nil {
		panic(err)
	}
	defer logger.Get().Sync()

	cfg := config.Load()
	database.Init(cfg)

	gateway := payment.NewClient(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.Get().Error("Beklenmeyen hata", zap.Error(err), zap.String("path", c.Path()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Use(metrics.HTTPMetrics())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Public vitrin ve katalog
	api.Get("/home", listing.HomeHandler())
	api.Get("/listings/search", listing.SearchListingsHandler())
	api.Get("/listings/:id", listing.ListingDetailHandler())
	api.Get("/categories", catalog.ListCategoriesHandler())
	api.Get("/categories/:id/listings", listing.CategoryListingsHandler())
	api.Get("/brands", catalog.ListBrandsHandler())
	api.Get("/business-types", catalog.ListBusinessTypesHandler())
	api.Get("/business-types/:id/listings", listing.BusinessTypeListingsHandler())
	api.Get("/promotion-options", promotion.ListOptionsHandler())
	api.Get("/ad-slots", promotion.ListAdSlotsHandler())

	// Gateway'in ödeme sonrası geri çağırdığı uç (auth yok, token ile doğrulanır)
	api.Post("/payments/callback", promotion.CallbackHandler(gateway))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Esnaf profili
	protected.Post("/merchant/profile", merchant.CompleteProfileHandler())
	protected.Get("/merchant/profile", merchant.MyProfileHandler())
	protected.Put("/merchant/profile", merchant.UpdateProfileHandler())

	// İlanlar
	protected.Post("/listings", listing.CreateListingHandler())
	protected.Get("/my-listings", listing.MyListingsHandler())
	protected.Put("/listings/:id/status", listing.ToggleListingHandler())
	protected.Delete("/listings/:id", listing.DeleteListingHandler())
	protected.Get("/listings/:id/buy", listing.BuyContactHandler())

	// Takas teklifleri
	protected.Post("/trade-offers", trade.CreateOfferHandler())
	protected.Get("/trade-offers", trade.ListOffersHandler())
	protected.Post("/trade-offers/:id/respond", trade.RespondOfferHandler())

	// Mesajlaşma
	protected.Post("/messages", messaging.SendMessageHandler())
	protected.Get("/messages", messaging.ListMessagesHandler())
	protected.Put("/messages/:id/read", messaging.MarkReadHandler())
	protected.Get("/messages/unread-count", messaging.UnreadCountHandler())

	// Öne çıkarma ve reklam satın alma
	protected.Post("/listings/:id/promote", promotion.PurchasePromotionHandler())
	protected.Post("/ads", promotion.PurchaseAdHandler())
	protected.Get("/payments/:id", promotion.PaymentInfoHandler())
	protected.Post("/payments/:id/checkout", promotion.CheckoutHandler(gateway, cfg))

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Katalog yönetimi
	adminRoutes.Post("/categories", catalog.CreateCategoryHandler())
	adminRoutes.Put("/categories/:id", catalog.UpdateCategoryHandler())
	adminRoutes.Delete("/categories/:id", catalog.DeleteCategoryHandler())
	adminRoutes.Post("/categories/:id/subcategories", catalog.CreateSubCategoryHandler())
	adminRoutes.Delete("/subcategories/:id", catalog.DeleteSubCategoryHandler())
	adminRoutes.Post("/brands", catalog.CreateBrandHandler())
	adminRoutes.Put("/brands/:id", catalog.UpdateBrandHandler())
	adminRoutes.Delete("/brands/:id", catalog.DeleteBrandHandler())
	adminRoutes.Post("/business-types", catalog.CreateBusinessTypeHandler())
	adminRoutes.Put("/business-types/:id", catalog.UpdateBusinessTypeHandler())

	// Esnaf moderasyonu
	adminRoutes.Delete("/merchants/:id", merchant.DeleteMerchantHandler())

	// Paket ve reklam alanı yönetimi
	adminRoutes.Post("/promotion-options", promotion.CreateOptionHandler())
	adminRoutes.Put("/promotion-options/:id", promotion.UpdateOptionHandler())
	adminRoutes.Post("/ad-slots", promotion.CreateAdSlotHandler())
	adminRoutes.Put("/ad-slots/:id", promotion.UpdateAdSlotHandler())

	// Ödeme onayı
	adminRoutes.Get("/payments", promotion.ListPaymentsHandler())
	adminRoutes.Post("/payments/:id/confirm", promotion.ConfirmPaymentHandler())
	adminRoutes.Post("/payments/:id/cancel", promotion.CancelPaymentHandler())

	logger.Get().Info("Server çalışıyor", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Get().Fatal("Server başlatılamadı", zap.Error(err))
	}
}
