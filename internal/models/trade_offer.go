package models

import "time"

// OfferStatus - Takas teklifi durumu. pending'den accepted veya rejected'a
// geçilir, ikisi de terminaldir.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

// TradeOffer - İki esnaf arasında, iki ilan üzerinden takas teklifi.
// Aynı (teklif veren, istenen ilan) ikilisi için aynı anda en fazla bir
// bekleyen teklif olabilir; bu kural kısmi tekil index ile garanti edilir
// (bkz. database.Migrate).
type TradeOffer struct {
	ID                 uint `gorm:"primaryKey"`
	OffererID          uint `gorm:"index;not null"`
	Offerer            MerchantProfile `gorm:"foreignKey:OffererID;constraint:OnDelete:CASCADE"`
	ReceiverID         uint `gorm:"index;not null"`
	Receiver           MerchantProfile `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
	OfferedListingID   uint `gorm:"not null"`
	OfferedListing     Listing `gorm:"foreignKey:OfferedListingID;constraint:OnDelete:CASCADE"`
	RequestedListingID uint `gorm:"index;not null"`
	RequestedListing   Listing `gorm:"foreignKey:RequestedListingID;constraint:OnDelete:CASCADE"`
	Status             OfferStatus `gorm:"size:20;not null;default:pending"`
	Note               string      `gorm:"size:1000"`
	CreatedAt          time.Time
}
