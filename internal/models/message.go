package models

import "time"

// Message - Esnaflar arası mesaj. SenderID boşsa sistem bildirimi
// (örneğin yönetici bir ilanı kaldırdığında).
type Message struct {
	ID          uint  `gorm:"primaryKey"`
	SenderID    *uint `gorm:"index"`
	Sender      *MerchantProfile `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	RecipientID uint  `gorm:"index;not null"`
	Recipient   MerchantProfile `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	Subject     string `gorm:"size:200;not null"`
	Body        string `gorm:"size:2000;not null"`
	IsRead      bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
}
