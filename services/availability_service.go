package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yeremiapane/lounge-floor/models"
	"gorm.io/gorm"
)

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// AvailabilityCheck -> parameter pencarian meja
type AvailabilityCheck struct {
	Date      string `json:"date"`
	Slot      string `json:"slot"`
	PartySize int    `json:"party_size"`
	Location  string `json:"location"` // opsional
}

// AvailableTable -> kandidat meja beranotasi. Caller butuh kandidat yang
// TIDAK tersedia juga (untuk ditampilkan abu-abu), jadi hasilnya set
// penuh, bukan hanya yang kosong.
type AvailableTable struct {
	Table     models.Table `json:"table"`
	Available bool         `json:"available"`
	Reason    string       `json:"reason,omitempty"`
	Price     float64      `json:"price"`
}

// GetAvailableTables -> kandidat = meja aktif dengan kapasitas cukup
// (difilter lokasi bila diminta), dicek bentrok reservasi per meja,
// diurutkan berdasarkan nomor meja.
func (as *AvailabilityService) GetAvailableTables(check AvailabilityCheck) ([]AvailableTable, error) {
	if _, _, err := SlotBounds(check.Date, check.Slot); err != nil {
		return nil, err
	}
	if check.PartySize < 1 {
		return nil, fmt.Errorf("party size must be at least 1")
	}

	q := as.DB.Where("is_active = ?", true).Where("capacity >= ?", check.PartySize)
	if check.Location != "" {
		q = q.Where("location = ?", check.Location)
	}

	var tables []models.Table
	if err := q.Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	sort.Slice(tables, func(i, j int) bool {
		return tables[i].TableNumber < tables[j].TableNumber
	})

	results := make([]AvailableTable, 0, len(tables))
	for _, table := range tables {
		entry := AvailableTable{
			Table:     table,
			Available: true,
			Price:     BaseReservationFee * table.PriceMultiplier,
		}

		if !IsLocationOpenForSlot(table.Location, check.Slot) {
			entry.Available = false
			entry.Reason = "location closed for this slot"
			results = append(results, entry)
			continue
		}

		conflict, err := as.hasSlotConflict(as.DB, table.ID, check.Date, check.Slot)
		if err != nil {
			// Gagal cek bentrok = anggap TIDAK tersedia, jangan pernah
			// "tersedia"
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if conflict {
			entry.Available = false
			entry.Reason = "already reserved"
		}

		results = append(results, entry)
	}

	return results, nil
}

// CheckTableAvailable -> varian satu meja, dipakai booking writer saat
// re-check di write time. tx boleh transaksi yang sedang berjalan.
func (as *AvailabilityService) CheckTableAvailable(tx *gorm.DB, tableID uint, date string, slot string) (models.Table, error) {
	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return table, ErrNotFound
		}
		return table, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if !table.IsActive {
		return table, ErrSlotConflict
	}
	if !IsLocationOpenForSlot(table.Location, slot) {
		return table, ErrSlotConflict
	}

	conflict, err := as.hasSlotConflict(tx, table.ID, date, slot)
	if err != nil {
		return table, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if conflict {
		return table, ErrSlotConflict
	}

	return table, nil
}

// hasSlotConflict -> ada reservasi aktif untuk (table, date, slot) yang
// sama persis?
func (as *AvailabilityService) hasSlotConflict(tx *gorm.DB, tableID uint, date string, slot string) (bool, error) {
	var count int64
	err := tx.Model(&models.Reservation{}).
		Where("table_id = ? AND date = ? AND slot = ?", tableID, date, slot).
		Where("status IN ?", models.ActiveReservationStatuses).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
