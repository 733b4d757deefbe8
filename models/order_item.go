package models

import "time"

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order    Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID   uint    `gorm:"not null" json:"menu_id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`     // snapshot nama menu saat order
	Category string  `gorm:"type:varchar(50)" json:"category"`           // food / drink / dessert
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`   // harga satuan saat order
	Quantity int     `gorm:"not null" json:"quantity"`
	Notes    string  `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
