package models

import "time"

// Lokasi meja
const (
	LocationIndoor  = "indoor"
	LocationOutdoor = "outdoor"
	LocationVIP     = "vip"
	LocationTerrace = "terrace"
)

// Table -> data meja. Status TIDAK disimpan di sini, selalu diturunkan
// dari reservasi + order (lihat TableStatus).
type Table struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TableNumber     string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"table_number"`
	Capacity        int       `gorm:"not null;default:2" json:"capacity"`
	Location        string    `gorm:"type:varchar(20);not null;default:'indoor'" json:"location"`
	Amenities       string    `gorm:"type:text" json:"amenities"` // JSON array of tags
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	PriceMultiplier float64   `gorm:"type:decimal(5,2);not null;default:1.00" json:"price_multiplier"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func IsValidLocation(loc string) bool {
	switch loc {
	case LocationIndoor, LocationOutdoor, LocationVIP, LocationTerrace:
		return true
	}
	return false
}
