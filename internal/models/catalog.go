package models

import "time"

// Category - Ana kategori
type Category struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;not null"`
	Description   string `gorm:"size:500"`
	Icon          string `gorm:"size:50"`  // Font Awesome ikon kodu
	Image         string `gorm:"size:255"` // Kategori görseli yolu
	SortOrder     uint   `gorm:"not null;default:0"`
	Active        bool   `gorm:"not null;default:true"`
	SubCategories []SubCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SubCategory struct {
	ID          uint   `gorm:"primaryKey"`
	CategoryID  uint   `gorm:"index;not null"`
	Category    Category
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`
	Image       string `gorm:"size:255"`
	SortOrder   uint   `gorm:"not null;default:0"`
	Active      bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Brand struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`
	Logo        string `gorm:"size:255"`
	Active      bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BusinessType - İşletme türü (bakkal, market, toptancı vs.)
type BusinessType struct {
	ID             uint     `gorm:"primaryKey"`
	Name           string   `gorm:"size:100;not null"`
	Description    string   `gorm:"size:500"`
	MinOrderAmount *float64 // Minimum sipariş tutarı (TL), opsiyonel
	Active         bool     `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
