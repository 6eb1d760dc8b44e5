package database

import (
	"takas-backend/internal/config"
	"takas-backend/internal/logger"
	"takas-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true, // duplicate key hatalarını gorm.ErrDuplicatedKey olarak almak için
	})
	if err != nil {
		logger.Get().Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}

	if err := Migrate(DB); err != nil {
		logger.Get().Fatal("Migration hatası", zap.Error(err))
	}

	logger.Get().Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate - şemayı kurar. Init dışında testler de çağırır, bu yüzden
// hedef DB parametre olarak alınır.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.BusinessType{},
		&models.Category{},
		&models.SubCategory{},
		&models.Brand{},
		&models.MerchantProfile{},
		&models.Listing{},
		&models.TradeOffer{},
		&models.Message{},
		&models.PromotionOption{},
		&models.ListingPromotion{},
		&models.AdSlot{},
		&models.Advertisement{},
		&models.Payment{},
	)
	if err != nil {
		return err
	}

	// Aynı (teklif veren, istenen ilan) ikilisi için aynı anda tek bekleyen
	// teklif. Uygulama tarafındaki ön kontrol yarışabilir, asıl garanti bu
	// kısmi tekil index. GORM tag'leri kısmi index'i ifade edemediği için
	// ham SQL ile kuruluyor.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_trade_offers_pending
		ON trade_offers (offerer_id, requested_listing_id)
		WHERE status = 'pending'
	`).Error; err != nil {
		return err
	}

	return nil
}
