package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yeremiapane/lounge-floor/floor"
	"github.com/yeremiapane/lounge-floor/models"
	"github.com/yeremiapane/lounge-floor/utils"
	"gorm.io/gorm"
)

// Reconciler -> menggabungkan dua stream perubahan (reservations, orders)
// menjadi view TableStatus tunggal. Setiap event memicu hitung ulang
// SEMUA meja (tanpa diffing); hasilnya idempotent dan tidak peduli urutan
// stream karena selalu membaca ulang kedua koleksi penuh.
//
// Satu goroutine konsumen, dua channel berbuffer 1: burst event yang
// datang saat recompute berjalan collapse menjadi satu recompute
// berikutnya.
type Reconciler struct {
	DB           *gorm.DB
	Reservations *ReservationService

	reservationCh chan struct{}
	orderCh       chan struct{}
	stopCh        chan struct{}

	mu        sync.Mutex
	listeners map[int]func([]models.TableStatus)
	nextID    int
}

func NewReconciler(db *gorm.DB, reservations *ReservationService) *Reconciler {
	return &Reconciler{
		DB:            db,
		Reservations:  reservations,
		reservationCh: make(chan struct{}, 1),
		orderCh:       make(chan struct{}, 1),
		stopCh:        make(chan struct{}),
		listeners:     make(map[int]func([]models.TableStatus)),
	}
}

// Start -> loop konsumen tunggal
func (rc *Reconciler) Start() {
	go func() {
		for {
			select {
			case <-rc.reservationCh:
				rc.recomputeAndBroadcast()
			case <-rc.orderCh:
				rc.recomputeAndBroadcast()
			case <-rc.stopCh:
				return
			}
		}
	}()
	utils.InfoLogger.Println("Floor reconciler started")
}

func (rc *Reconciler) Stop() {
	close(rc.stopCh)
}

// NotifyReservationChange -> non-blocking; event saat recompute berjalan
// cukup menjadwalkan satu recompute lagi
func (rc *Reconciler) NotifyReservationChange() {
	select {
	case rc.reservationCh <- struct{}{}:
	default:
	}
}

func (rc *Reconciler) NotifyOrderChange() {
	select {
	case rc.orderCh <- struct{}{}:
	default:
	}
}

// Subscribe -> listener in-process; fungsi balikan untuk unsubscribe
func (rc *Reconciler) Subscribe(fn func([]models.TableStatus)) func() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	id := rc.nextID
	rc.nextID++
	rc.listeners[id] = fn

	return func() {
		rc.mu.Lock()
		defer rc.mu.Unlock()
		delete(rc.listeners, id)
	}
}

// GetTableStatuses -> baca ulang seluruh meja + reservasi + order dan
// derive status per meja
func (rc *Reconciler) GetTableStatuses() ([]models.TableStatus, error) {
	now := time.Now()
	th := GetStatusThresholds()

	var tables []models.Table
	if err := rc.DB.Order("table_number").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var reservations []models.Reservation
	if err := rc.DB.
		Where("status IN ?", []string{models.ReservationConfirmed, models.ReservationSeated}).
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var orders []models.Order
	if err := rc.DB.
		Where("status NOT IN ?", []string{models.OrderCancelled}).
		Where("(status <> ? OR payment_status <> ?)", models.OrderDelivered, models.PaymentPaid).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resByTable := make(map[uint][]models.Reservation)
	for _, r := range reservations {
		resByTable[r.TableID] = append(resByTable[r.TableID], r)
	}
	ordersByNumber := make(map[string][]models.Order)
	for _, o := range orders {
		ordersByNumber[o.TableNumber] = append(ordersByNumber[o.TableNumber], o)
	}

	statuses := make([]models.TableStatus, 0, len(tables))
	for _, table := range tables {
		statuses = append(statuses, DeriveTableStatus(
			table,
			resByTable[table.ID],
			ordersByNumber[table.TableNumber],
			now,
			th,
		))
	}
	return statuses, nil
}

func (rc *Reconciler) recomputeAndBroadcast() {
	statuses, err := rc.GetTableStatuses()
	if err != nil {
		utils.ErrorLogger.Printf("Floor recompute failed: %v", err)
		return
	}

	floor.BroadcastFloorUpdate(statuses, SummarizeStatuses(statuses))

	rc.mu.Lock()
	listeners := make([]func([]models.TableStatus), 0, len(rc.listeners))
	for _, fn := range rc.listeners {
		listeners = append(listeners, fn)
	}
	rc.mu.Unlock()

	for _, fn := range listeners {
		fn(statuses)
	}
}

// HandleOrderCreated -> promotion: order baru dengan link reservasi
// mendudukkan reservasinya (seated). Idempotent; semua error hanya
// dilog, tidak pernah menggagalkan pembuatan order.
func (rc *Reconciler) HandleOrderCreated(order *models.Order) {
	if order.ReservationID == nil {
		return
	}

	var reservation models.Reservation
	if err := rc.DB.Preload("Table").First(&reservation, *order.ReservationID).Error; err != nil {
		utils.ErrorLogger.Printf("Order %d links missing reservation %d: %v",
			order.ID, *order.ReservationID, err)
		return
	}

	// Cek konsistensi advisory; mismatch dilog, order jalan terus
	if !ordersConsistent(order, &reservation) {
		utils.ErrorLogger.Printf("Order %d and reservation %d are inconsistent (table/customer fields mismatch)",
			order.ID, reservation.ID)
	}

	switch reservation.Status {
	case models.ReservationSeated, models.ReservationCompleted:
		return
	}

	if _, err := rc.Reservations.UpdateStatus(reservation.ID, models.ReservationSeated, ""); err != nil {
		utils.ErrorLogger.Printf("Failed to seat reservation %d from order %d: %v",
			reservation.ID, order.ID, err)
	}
}

// HandleOrderDelivered -> completion: order delivered menyelesaikan
// reservasinya. Fire-and-forget; tidak pernah rollback/blokir update
// order yang memicunya.
func (rc *Reconciler) HandleOrderDelivered(order *models.Order) {
	if order.ReservationID == nil {
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, *order.ReservationID).Error; err != nil {
		utils.ErrorLogger.Printf("Delivered order %d links missing reservation %d: %v",
			order.ID, *order.ReservationID, err)
		return
	}

	if reservation.Status == models.ReservationCompleted {
		return
	}

	if _, err := rc.Reservations.UpdateStatus(reservation.ID, models.ReservationCompleted, ""); err != nil {
		utils.ErrorLogger.Printf("Failed to complete reservation %d from order %d: %v",
			reservation.ID, order.ID, err)
	}
}

// ordersConsistent -> konsisten jika nomor meja sama persis dan field
// customer yang ADA di kedua sisi cocok; field kosong di salah satu sisi
// bukan mismatch
func ordersConsistent(order *models.Order, reservation *models.Reservation) bool {
	if order.TableNumber != reservation.Table.TableNumber {
		return false
	}
	if !fieldsMatch(order.CustomerName, reservation.CustomerName) {
		return false
	}
	if !fieldsMatch(order.CustomerEmail, reservation.CustomerEmail) {
		return false
	}
	if !fieldsMatch(order.CustomerPhone, reservation.CustomerPhone) {
		return false
	}
	return true
}

func fieldsMatch(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return true
	}
	return strings.EqualFold(a, b)
}

// TableContext -> konteks pre-fill order form: reservasi yang sedang
// aktif (ordering window) untuk sebuah nomor meja. nil tanpa error kalau
// tidak ada yang aktif.
func (rc *Reconciler) TableContext(tableNumber string, now time.Time) (*models.Reservation, error) {
	var table models.Table
	if err := rc.DB.Where("table_number = ?", tableNumber).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var reservations []models.Reservation
	if err := rc.DB.Preload("Table").
		Where("table_id = ?", table.ID).
		Where("status IN ?", []string{models.ReservationConfirmed, models.ReservationSeated}).
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var active *models.Reservation
	for i := range reservations {
		r := &reservations[i]
		if !IsReservationOrderingActive(r, now) {
			continue
		}
		if active == nil || r.UpdatedAt.After(active.UpdatedAt) {
			active = r
		}
	}
	return active, nil
}
