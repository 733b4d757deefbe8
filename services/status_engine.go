package services

import (
	"sync"
	"time"

	"github.com/yeremiapane/lounge-floor/models"
)

// StatusThresholds -> ambang eskalasi (menit) untuk pewarnaan status.
// Berlaku process-wide dan bisa diganti saat runtime tanpa restart.
type StatusThresholds struct {
	WarningMinutes    int `json:"warning_minutes"`
	OverdueMinutes    int `json:"overdue_minutes"`
	MaxServiceMinutes int `json:"max_service_minutes"`
}

func DefaultStatusThresholds() StatusThresholds {
	return StatusThresholds{
		WarningMinutes:    45,
		OverdueMinutes:    90,
		MaxServiceMinutes: 180,
	}
}

var (
	thresholdMu      sync.RWMutex
	activeThresholds = DefaultStatusThresholds()
)

func GetStatusThresholds() StatusThresholds {
	thresholdMu.RLock()
	defer thresholdMu.RUnlock()
	return activeThresholds
}

// SetStatusThresholds -> ganti ambang saat runtime. Nilai <= 0 jatuh
// kembali ke default.
func SetStatusThresholds(t StatusThresholds) {
	def := DefaultStatusThresholds()
	if t.WarningMinutes <= 0 {
		t.WarningMinutes = def.WarningMinutes
	}
	if t.OverdueMinutes <= 0 {
		t.OverdueMinutes = def.OverdueMinutes
	}
	if t.MaxServiceMinutes <= 0 {
		t.MaxServiceMinutes = def.MaxServiceMinutes
	}

	thresholdMu.Lock()
	activeThresholds = t
	thresholdMu.Unlock()
}

// DeriveTableStatus -> fungsi murni: (meja, reservasi meja itu, order
// meja itu, now, ambang) => satu TableStatus. Tidak menyentuh store dan
// tidak pernah gagal; field opsional yang hilang diperlakukan "absent".
//
// Hasilnya sama tidak peduli stream mana yang terakhir berubah, karena
// selalu membaca kedua koleksi penuh.
func DeriveTableStatus(table models.Table, reservations []models.Reservation, orders []models.Order, now time.Time, th StatusThresholds) models.TableStatus {
	st := models.TableStatus{
		Table:  table,
		Status: models.TableAvailable,
	}

	// Meja nonaktif -> unavailable, apapun isi reservasi/order
	if !table.IsActive {
		st.Status = models.TableUnavailable
		return st
	}

	st.ActiveReservation = selectActiveReservation(reservations, now)
	st.ActiveOrder = selectActiveOrder(orders)

	// lastActivity = updatedAt paling akhir dari keduanya
	var lastActivity *time.Time
	if st.ActiveReservation != nil {
		t := st.ActiveReservation.UpdatedAt
		lastActivity = &t
	}
	if st.ActiveOrder != nil {
		t := st.ActiveOrder.UpdatedAt
		if lastActivity == nil || t.After(*lastActivity) {
			lastActivity = &t
		}
	}
	st.LastActivity = lastActivity

	if lastActivity != nil {
		waiting := int(now.Sub(*lastActivity).Minutes())
		if waiting < 0 {
			waiting = 0
		}
		st.WaitingTimeMinutes = waiting
	}

	// Nama/jumlah tamu diambil dari sumber yang aktif
	if st.ActiveReservation != nil {
		st.CustomerName = st.ActiveReservation.CustomerName
		st.PartySize = st.ActiveReservation.PartySize
	} else if st.ActiveOrder != nil {
		st.CustomerName = st.ActiveOrder.CustomerName
	}

	st.Status = resolveStatus(st, th)
	return st
}

// selectActiveReservation -> reservasi confirmed/seated yang occupancy
// window-nya memuat now. Invariannya maksimal satu; kalau lebih, ambil
// yang paling baru di-update.
func selectActiveReservation(reservations []models.Reservation, now time.Time) *models.Reservation {
	var active *models.Reservation
	for i := range reservations {
		r := &reservations[i]
		if r.Status != models.ReservationConfirmed && r.Status != models.ReservationSeated {
			continue
		}
		if !IsReservationOccupancyActive(r, now) {
			continue
		}
		if active == nil || r.UpdatedAt.After(active.UpdatedAt) {
			active = r
		}
	}
	return active
}

// selectActiveOrder -> order terbaru yang siklusnya belum selesai.
// Order delivered ikut terpilih selama belum dibayar, supaya meja bisa
// sampai ke awaiting_payment.
func selectActiveOrder(orders []models.Order) *models.Order {
	var active *models.Order
	for i := range orders {
		o := &orders[i]
		switch o.Status {
		case models.OrderPending, models.OrderConfirmed, models.OrderPreparing, models.OrderReady:
		case models.OrderDelivered:
			if o.Payment.Status == models.PaymentPaid {
				continue
			}
		default:
			continue
		}
		if active == nil || o.CreatedAt.After(active.CreatedAt) ||
			(o.CreatedAt.Equal(active.CreatedAt) && o.ID > active.ID) {
			active = o
		}
	}
	return active
}

// resolveStatus -> tangga precedence, match pertama menang
func resolveStatus(st models.TableStatus, th StatusThresholds) string {
	waiting := st.WaitingTimeMinutes

	if st.LastActivity != nil && waiting > th.OverdueMinutes {
		return models.TableOverdue
	}

	if st.ActiveOrder != nil {
		switch st.ActiveOrder.Status {
		case models.OrderPending, models.OrderConfirmed, models.OrderPreparing:
			return models.TableOrdered
		case models.OrderReady:
			if waiting > th.WarningMinutes {
				return models.TableOverdue
			}
			return models.TableServed
		case models.OrderDelivered:
			return models.TableAwaitingPayment
		}
	}

	if st.ActiveReservation != nil {
		switch st.ActiveReservation.Status {
		case models.ReservationConfirmed:
			return models.TableReserved
		case models.ReservationSeated:
			return models.TableSeated
		}
	}

	return models.TableAvailable
}

// SummarizeStatuses -> hitungan per status untuk dashboard lantai
func SummarizeStatuses(statuses []models.TableStatus) map[string]int {
	summary := map[string]int{
		models.TableAvailable:       0,
		models.TableReserved:        0,
		models.TableSeated:          0,
		models.TableOrdered:         0,
		models.TableServed:          0,
		models.TableAwaitingPayment: 0,
		models.TableOverdue:         0,
		models.TableUnavailable:     0,
	}
	for _, st := range statuses {
		summary[st.Status]++
	}
	return summary
}
