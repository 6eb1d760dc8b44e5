package models

import "time"

// AdPlacement - Reklam alanı konumu
type AdPlacement string

const (
	AdPlacementHeader   AdPlacement = "header"   // Üst banner
	AdPlacementSidebar  AdPlacement = "sidebar"  // Yan banner
	AdPlacementFooter   AdPlacement = "footer"   // Alt banner
	AdPlacementCategory AdPlacement = "category" // Kategori sayfası
)

// AdSlot - Kiralanabilir reklam alanı
type AdSlot struct {
	ID        uint        `gorm:"primaryKey"`
	Name      string      `gorm:"size:100;not null"`
	Placement AdPlacement `gorm:"size:20;not null"`
	Size      string      `gorm:"size:50"` // Örn: "728x90"
	DailyRate float64     `gorm:"not null"`
	Active    bool        `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Advertisement - Esnafın satın aldığı banner reklamı. Ödeme onaylanana
// kadar aktif değildir.
type Advertisement struct {
	ID            uint `gorm:"primaryKey"`
	MerchantID    uint `gorm:"index;not null"`
	Merchant      MerchantProfile `gorm:"constraint:OnDelete:CASCADE"`
	SlotID        uint `gorm:"not null"`
	Slot          AdSlot `gorm:"foreignKey:SlotID"`
	Title         string `gorm:"size:200;not null"`
	Image         string `gorm:"size:255;not null"`
	Link          string `gorm:"size:255;not null"`
	StartsAt      time.Time `gorm:"not null"`
	EndsAt        time.Time `gorm:"not null"` // StartsAt + istenen gün sayısı
	Active        bool      `gorm:"not null;default:false"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:pending"`
	CreatedAt     time.Time
}
