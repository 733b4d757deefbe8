package models

import "time"

// Status order
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Status pembayaran (sub-record di order; capture pembayaran sendiri
// ditangani sistem eksternal)
const (
	PaymentUnpaid   = "unpaid"
	PaymentPartial  = "partial"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

type PaymentInfo struct {
	Status     string     `gorm:"type:varchar(20);not null;default:'unpaid'" json:"status"`
	Method     string     `gorm:"type:varchar(20)" json:"method"`
	AmountDue  float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"amount_due"`
	AmountPaid float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"amount_paid"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
}

// Order -> pesanan untuk satu meja. TableNumber didenormalisasi (bukan
// foreign key) supaya order walk-in tetap bisa dibuat tanpa reservasi.
type Order struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	TableNumber   string       `gorm:"type:varchar(50);not null;index" json:"table_number"`
	ReservationID *uint        `gorm:"index" json:"reservation_id,omitempty"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"reservation,omitempty"`
	CustomerName  string       `gorm:"type:varchar(100)" json:"customer_name"`
	CustomerEmail string       `gorm:"type:varchar(100)" json:"customer_email"`
	CustomerPhone string       `gorm:"type:varchar(30)" json:"customer_phone"`
	Status        string       `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount   float64      `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Payment       PaymentInfo  `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	OrderItems    []OrderItem  `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

// IsWalkIn -> order tanpa link reservasi
func (o *Order) IsWalkIn() bool {
	return o.ReservationID == nil
}
