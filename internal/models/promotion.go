package models

import "time"

// PromotionPlacement - Öne çıkarma konumu
type PromotionPlacement string

const (
	PlacementShowcase    PromotionPlacement = "showcase"     // Vitrin
	PlacementCategoryTop PromotionPlacement = "category_top" // Kategori üstü
	PlacementHomepageTop PromotionPlacement = "homepage_top" // Anasayfa üstü
)

// PromotionOption - Satın alınabilir öne çıkarma paketi
type PromotionOption struct {
	ID           uint               `gorm:"primaryKey"`
	Name         string             `gorm:"size:100;not null"`
	Placement    PromotionPlacement `gorm:"size:20;not null"`
	DurationDays int                `gorm:"not null"`
	Price        float64            `gorm:"not null"`
	Description  string             `gorm:"size:500"`
	Active       bool               `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ListingPromotion - Bir ilan için satın alınmış öne çıkarma kaydı.
// Ödeme onaylanana kadar aktif değildir; aktifleştirme yalnızca bağlı
// Payment kaydının onaylanması üzerinden olur.
type ListingPromotion struct {
	ID            uint `gorm:"primaryKey"`
	ListingID     uint `gorm:"index;not null"`
	Listing       Listing `gorm:"constraint:OnDelete:CASCADE"`
	OptionID      uint `gorm:"not null"`
	Option        PromotionOption `gorm:"foreignKey:OptionID"`
	StartsAt      time.Time `gorm:"not null"`
	EndsAt        time.Time `gorm:"not null"` // StartsAt + paket süresi
	Active        bool      `gorm:"not null;default:false"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:pending"`
	CreatedAt     time.Time
}
