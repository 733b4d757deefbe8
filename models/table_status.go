package models

import "time"

// Status meja hasil derivasi
const (
	TableAvailable       = "available"
	TableReserved        = "reserved"
	TableSeated          = "seated"
	TableOrdered         = "ordered"
	TableServed          = "served"
	TableAwaitingPayment = "awaiting_payment"
	TableOverdue         = "overdue"
	TableUnavailable     = "unavailable"
)

// TableStatus -> view turunan per meja, TIDAK pernah disimpan ke store.
// Selalu dihitung ulang dari (table, reservations, orders, now).
type TableStatus struct {
	Table              Table        `json:"table"`
	ActiveReservation  *Reservation `json:"active_reservation,omitempty"`
	ActiveOrder        *Order       `json:"active_order,omitempty"`
	Status             string       `json:"status"`
	WaitingTimeMinutes int          `json:"waiting_time_minutes"`
	LastActivity       *time.Time   `json:"last_activity,omitempty"`
	CustomerName       string       `json:"customer_name,omitempty"`
	PartySize          int          `json:"party_size,omitempty"`
}
