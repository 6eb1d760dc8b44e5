package models

import "time"

// PaymentKind - Ödemenin neyi kapsadığı
type PaymentKind string

const (
	PaymentKindPromotion     PaymentKind = "promotion"
	PaymentKindAdvertisement PaymentKind = "advertisement"
)

// PaymentStatus - Ödeme durumu
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment - Öne çıkarma veya reklam aktivasyonunu bekleten ödeme kaydı.
// Sadece satın alma akışı tarafından oluşturulur, kullanıcıya doğrudan
// oluşturma ucu yoktur. Hedef her zaman tam olarak tek bir kayıttır;
// CHECK constraint bunu tablo seviyesinde zorlar.
type Payment struct {
	ID                 uint        `gorm:"primaryKey"`
	MerchantID         uint        `gorm:"index;not null"`
	Merchant           MerchantProfile `gorm:"constraint:OnDelete:CASCADE"`
	Kind               PaymentKind `gorm:"size:20;not null"`
	Amount             float64     `gorm:"not null"`
	Status             PaymentStatus `gorm:"size:20;not null;default:pending"`
	ListingPromotionID *uint `gorm:"uniqueIndex;check:chk_payments_single_target,(listing_promotion_id IS NULL) <> (advertisement_id IS NULL)"`
	ListingPromotion   *ListingPromotion `gorm:"constraint:OnDelete:CASCADE"`
	AdvertisementID    *uint `gorm:"uniqueIndex"`
	Advertisement      *Advertisement `gorm:"constraint:OnDelete:CASCADE"`
	ConversationID     string `gorm:"size:36;index"` // Gateway çağrılarında kullanılan tekil referans
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
