package models

import "time"

// TransactionType - İlanın işlem türü
type TransactionType string

const (
	TransactionTrade TransactionType = "trade" // Sadece takas
	TransactionSale  TransactionType = "sale"  // Sadece satış
	TransactionBoth  TransactionType = "both"  // Hem takas hem satış
)

// StockUnit - Stok birimi
type StockUnit string

const (
	UnitPiece StockUnit = "piece" // Adet
	UnitKg    StockUnit = "kg"
	UnitGram  StockUnit = "g"
	UnitLiter StockUnit = "lt"
	UnitPack  StockUnit = "pack" // Paket
	UnitBox   StockUnit = "box"  // Koli
)

// Listing - Esnafın yayınladığı ürün ilanı. ListingNo oluşturma sırasında
// atanır, 1000001'den başlar ve tekil index ile korunur.
type Listing struct {
	ID            uint   `gorm:"primaryKey"`
	ListingNo     string `gorm:"size:10;uniqueIndex"`
	MerchantID    uint   `gorm:"index;not null"`
	Merchant      MerchantProfile `gorm:"constraint:OnDelete:CASCADE"`
	CategoryID    *uint
	Category      *Category `gorm:"constraint:OnDelete:SET NULL"`
	SubCategoryID *uint
	SubCategory   *SubCategory `gorm:"constraint:OnDelete:SET NULL"`
	BrandID       *uint
	Brand         *Brand `gorm:"constraint:OnDelete:SET NULL"`
	Name          string `gorm:"size:200;not null"`
	Description   string `gorm:"size:2000;not null"`
	Image         string `gorm:"size:255"`
	Quantity      uint   `gorm:"not null"`
	Unit          StockUnit `gorm:"size:20;not null;default:piece"`
	Price         *float64  // Satış fiyatı (TL), takas ilanlarında boş olabilir
	MinOrderQty   uint      `gorm:"not null;default:1"`
	VATRate       uint      `gorm:"not null;default:18"` // KDV oranı (%)
	TransactionType TransactionType `gorm:"size:20;not null;default:sale;index"`
	Active        bool `gorm:"not null;default:true"`
	Showcase      bool `gorm:"not null;default:false"` // Vitrinde göster
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Tradeable - İlan takas teklifine konu olabilir mi
func (l *Listing) Tradeable() bool {
	return l.TransactionType == TransactionTrade || l.TransactionType == TransactionBoth
}

// Sellable - İlan satışa uygun mu
func (l *Listing) Sellable() bool {
	return l.TransactionType == TransactionSale || l.TransactionType == TransactionBoth
}
