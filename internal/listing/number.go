package listing

import (
	"errors"
	"strconv"

	"takas-backend/internal/database"
	"takas-backend/internal/models"

	"gorm.io/gorm"
)

// İlan numaraları 1000001'den başlar ve geri kullanılmaz.
const firstListingNo = 1000001

var ErrNumberExhausted = errors.New("ilan numarası atanamadı")

// nextListingNo - mevcut en büyük numara + 1. Numara alanı tarihsel
// nedenlerle string; sayıya çevrilemiyorsa seri baştan başlatılır.
func nextListingNo(tx *gorm.DB) string {
	var last models.Listing
	err := tx.Select("listing_no").
		Where("listing_no <> ''").
		Order("listing_no desc").
		First(&last).Error
	if err != nil {
		return strconv.Itoa(firstListingNo)
	}

	n, err := strconv.Atoi(last.ListingNo)
	if err != nil {
		return strconv.Itoa(firstListingNo)
	}
	return strconv.Itoa(n + 1)
}

// Create - ilanı kaydeder, numarası yoksa transaction içinde atar.
// max+1 okuması iki eşzamanlı insert'te çakışabilir; tekillik
// listing_no üzerindeki unique index'e bırakılır ve çakışmada yeni
// numara ile tekrar denenir.
func Create(l *models.Listing) error {
	for attempt := 0; attempt < 3; attempt++ {
		assigned := l.ListingNo == ""
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if l.ListingNo == "" {
				l.ListingNo = nextListingNo(tx)
			}
			return tx.Create(l).Error
		})
		if err == nil {
			return nil
		}
		if assigned && errors.Is(err, gorm.ErrDuplicatedKey) {
			l.ID = 0
			l.ListingNo = ""
			continue
		}
		return err
	}
	return ErrNumberExhausted
}
