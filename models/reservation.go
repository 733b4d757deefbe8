package models

import "time"

// Status reservasi
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationSeated    = "seated"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
	ReservationNoShow    = "no_show"
	ReservationExpired   = "expired"
)

// ActiveReservationStatuses -> status yang "menduduki" sebuah slot.
// Satu meja hanya boleh punya satu reservasi dengan status ini per
// (date, slot); invariant ini dijaga oleh booking writer, bukan store.
var ActiveReservationStatuses = []string{
	ReservationPending,
	ReservationConfirmed,
	ReservationSeated,
}

type Reservation struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	Code            string   `gorm:"type:varchar(64);uniqueIndex" json:"code"`
	TableID         uint     `gorm:"not null;index" json:"table_id"`
	Table           Table    `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	UserID          uint     `gorm:"index" json:"user_id"`
	CustomerName    string   `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerEmail   string   `gorm:"type:varchar(100)" json:"customer_email"`
	CustomerPhone   string   `gorm:"type:varchar(30)" json:"customer_phone"`
	Date            string   `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Slot            string   `gorm:"type:varchar(11);not null" json:"slot"`       // HH:MM-HH:MM
	StartTime       string   `gorm:"type:varchar(5)" json:"start_time"`
	EndTime         string   `gorm:"type:varchar(5)" json:"end_time"`
	PartySize       int      `gorm:"not null" json:"party_size"`
	Status          string   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SpecialRequests string   `gorm:"type:text" json:"special_requests"`
	TotalAmount     *float64 `gorm:"type:decimal(10,2)" json:"total_amount,omitempty"`
	PreOrderItemIDs string   `gorm:"type:text" json:"pre_order_item_ids"` // JSON array of menu IDs
	StaffNotes      string   `gorm:"type:text" json:"staff_notes"`

	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	NoShowAt    *time.Time `json:"no_show_at,omitempty"`
}

// IsTerminal -> status akhir yang tidak boleh ditransisikan lagi
func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case ReservationCompleted, ReservationCancelled, ReservationNoShow, ReservationExpired:
		return true
	}
	return false
}
