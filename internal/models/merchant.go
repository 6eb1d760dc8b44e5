package models

import "time"

// DeliveryOption - Teslimat seçeneği
type DeliveryOption string

const (
	DeliverySelf    DeliveryOption = "self"    // Kendim teslim ediyorum
	DeliveryCourier DeliveryOption = "courier" // Anlaşmalı kargo
	DeliveryBoth    DeliveryOption = "both"    // Her ikisi de
)

// MerchantProfile - Esnaf profili. Her kullanıcı hesabına en fazla bir profil.
type MerchantProfile struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"uniqueIndex;not null"`
	User           User
	BusinessTypeID *uint
	BusinessType   *BusinessType `gorm:"constraint:OnDelete:SET NULL"`
	CompanyName    string        `gorm:"size:200;not null"`
	Logo           string        `gorm:"size:255"`
	Address        string        `gorm:"size:500;not null"`
	Phone          string        `gorm:"size:20;not null"`
	WhatsApp       string        `gorm:"size:20"`
	TaxNumber      string        `gorm:"size:50"`
	TaxOffice      string        `gorm:"size:100"`
	DeliveryOption DeliveryOption `gorm:"size:20;not null;default:self"`
	MinOrderAmount *float64
	Active         bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
