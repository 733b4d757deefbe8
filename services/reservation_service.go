package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/lounge-floor/models"
	"github.com/yeremiapane/lounge-floor/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// customerCancelLeadTime -> customer hanya boleh cancel kalau masih
// lebih dari 2 jam sebelum mulai
const customerCancelLeadTime = 2 * time.Hour

// reservationTransitions -> state machine reservasi:
// pending -> confirmed -> seated -> completed, dengan side exit
// cancelled/no_show. "expired" pasif (time-based, bukan engine ini yang
// menjadwalkan) sehingga boleh dari status non-terminal mana pun.
// pending -> seated diizinkan: order yang masuk untuk reservasi yang
// belum sempat dikonfirmasi tetap berarti tamunya sudah duduk.
var reservationTransitions = map[string][]string{
	models.ReservationPending: {
		models.ReservationConfirmed,
		models.ReservationSeated,
		models.ReservationCancelled,
		models.ReservationExpired,
	},
	models.ReservationConfirmed: {
		models.ReservationSeated,
		models.ReservationCancelled,
		models.ReservationNoShow,
		models.ReservationExpired,
	},
	models.ReservationSeated: {
		models.ReservationCompleted,
	},
}

// CanTransitionReservation -> cek tabel transisi
func CanTransitionReservation(from, to string) bool {
	for _, allowed := range reservationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type ReservationService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{
		DB:           db,
		Availability: NewAvailabilityService(db),
	}
}

// BookingForm -> form booking yang sudah tervalidasi di controller
type BookingForm struct {
	TableID         uint   `json:"table_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	Slot            string `json:"slot" binding:"required"`
	PartySize       int    `json:"party_size" binding:"required"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	SpecialRequests string `json:"special_requests"`
	PreOrderItemIDs string `json:"pre_order_item_ids"`
}

// CreateReservation -> booking writer. Re-check availability dan insert
// berjalan dalam SATU transaksi dengan row lock pada meja, jadi dua
// booking bersamaan untuk meja yang sama terserialisasi dan yang kalah
// menerima ErrSlotConflict dari re-check.
func (rs *ReservationService) CreateReservation(form BookingForm, userID uint) (*models.Reservation, error) {
	startStr, endStr, err := SplitSlot(form.Slot)
	if err != nil {
		return nil, err
	}
	if _, _, err := SlotBounds(form.Date, form.Slot); err != nil {
		return nil, err
	}
	if form.PartySize < 1 {
		return nil, fmt.Errorf("party size must be at least 1")
	}

	var reservation models.Reservation

	err = rs.DB.Transaction(func(tx *gorm.DB) error {
		// Lock baris meja supaya re-check + insert atomik terhadap
		// writer lain. SQLite (tests) tidak mendukung FOR UPDATE;
		// transaksinya sendiri sudah serial di sana.
		q := tx
		if tx.Dialector.Name() == "mysql" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var table models.Table
		if err := q.First(&table, form.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}

		if !table.IsActive || table.Capacity < form.PartySize {
			return ErrSlotConflict
		}
		if !IsLocationOpenForSlot(table.Location, form.Slot) {
			return ErrSlotConflict
		}

		conflict, err := rs.Availability.hasSlotConflict(tx, table.ID, form.Date, form.Slot)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if conflict {
			return ErrSlotConflict
		}

		total := BaseReservationFee * table.PriceMultiplier
		now := time.Now()

		reservation = models.Reservation{
			Code:            uuid.NewString(),
			TableID:         table.ID,
			UserID:          userID,
			CustomerName:    form.CustomerName,
			CustomerEmail:   form.CustomerEmail,
			CustomerPhone:   form.CustomerPhone,
			Date:            form.Date,
			Slot:            form.Slot,
			StartTime:       startStr,
			EndTime:         endStr,
			PartySize:       form.PartySize,
			Status:          models.ReservationPending,
			SpecialRequests: form.SpecialRequests,
			TotalAmount:     &total,
			PreOrderItemIDs: form.PreOrderItemIDs,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %s created: table_id=%d date=%s slot=%s total=Rp%s",
		reservation.Code, reservation.TableID, reservation.Date, reservation.Slot,
		utils.FormatCurrency(*reservation.TotalAmount))

	return &reservation, nil
}

// UpdateStatus -> transisi status oleh staff/sistem. Idempotent untuk
// status yang sama (re-link reservasi yang sudah seated = no-op).
func (rs *ReservationService) UpdateStatus(id uint, newStatus string, notes string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := rs.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if reservation.Status == newStatus {
		return &reservation, nil
	}
	if !CanTransitionReservation(reservation.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
	}

	now := time.Now()
	reservation.Status = newStatus
	reservation.UpdatedAt = now

	switch newStatus {
	case models.ReservationConfirmed:
		reservation.ConfirmedAt = &now
	case models.ReservationCancelled:
		reservation.CancelledAt = &now
	case models.ReservationNoShow:
		reservation.NoShowAt = &now
	}

	if notes != "" {
		if reservation.StaffNotes != "" {
			reservation.StaffNotes += "\n"
		}
		reservation.StaffNotes += notes
	}

	if err := rs.DB.Save(&reservation).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	utils.InfoLogger.Printf("Reservation %d status changed to %s", reservation.ID, newStatus)
	return &reservation, nil
}

// CancelByCustomer -> cancel oleh customer sendiri; hanya dari
// pending/confirmed dan hanya >2 jam sebelum mulai
func (rs *ReservationService) CancelByCustomer(id uint, now time.Time) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := rs.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if reservation.Status != models.ReservationPending && reservation.Status != models.ReservationConfirmed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, models.ReservationCancelled)
	}

	start, _, err := SlotBounds(reservation.Date, reservation.Slot)
	if err != nil {
		return nil, err
	}
	if start.Sub(now) <= customerCancelLeadTime {
		return nil, ErrCancelTooLate
	}

	return rs.UpdateStatus(id, models.ReservationCancelled, "cancelled by customer")
}

// ReservationFilter -> filter list untuk staff
type ReservationFilter struct {
	Date    string
	Status  string
	TableID uint
}

func (rs *ReservationService) ListReservations(filter ReservationFilter) ([]models.Reservation, error) {
	q := rs.DB.Preload("Table").Order("date, slot, id")
	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.TableID != 0 {
		q = q.Where("table_id = ?", filter.TableID)
	}

	var reservations []models.Reservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return reservations, nil
}

func (rs *ReservationService) GetReservation(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := rs.DB.Preload("Table").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &reservation, nil
}
