package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/lounge-floor/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupServiceDB -> SQLite in-memory per nama supaya antar test tidak
// saling menumpuk data
func setupServiceDB(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.Table{},
		&models.Menu{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func TestGetAvailableTables(t *testing.T) {
	db := setupServiceDB("availability_basic")
	svc := NewAvailabilityService(db)

	t1 := models.Table{TableNumber: "T1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0}
	t2 := models.Table{TableNumber: "T2", Capacity: 4, Location: models.LocationOutdoor, IsActive: true, PriceMultiplier: 1.0}
	t3 := models.Table{TableNumber: "T3", Capacity: 2, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0}
	t4 := models.Table{TableNumber: "T4", Capacity: 6, Location: models.LocationVIP, IsActive: true, PriceMultiplier: 1.5}
	t5 := models.Table{TableNumber: "T5", Capacity: 6, Location: models.LocationIndoor, IsActive: false, PriceMultiplier: 1.0}
	db.Create(&t1)
	db.Create(&t2)
	db.Create(&t3)
	db.Create(&t4)
	db.Create(&t5)

	results, err := svc.GetAvailableTables(AvailabilityCheck{
		Date:      "2030-05-20",
		Slot:      "19:00-21:00",
		PartySize: 3,
	})
	assert.NoError(t, err)

	// T3 kalah kapasitas, T5 nonaktif -> bukan kandidat
	assert.Len(t, results, 3)
	assert.Equal(t, "T1", results[0].Table.TableNumber)
	assert.Equal(t, "T2", results[1].Table.TableNumber)
	assert.Equal(t, "T4", results[2].Table.TableNumber)

	for _, r := range results {
		assert.True(t, r.Available)
	}

	// Harga = base fee x multiplier
	assert.Equal(t, 50000.0, results[0].Price)
	assert.Equal(t, 75000.0, results[2].Price)
}

// Meja dengan reservasi aktif pada (date, slot) sama tidak pernah
// ditawarkan available
func TestGetAvailableTablesSlotConflict(t *testing.T) {
	db := setupServiceDB("availability_conflict")
	svc := NewAvailabilityService(db)

	table := models.Table{TableNumber: "T1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0}
	db.Create(&table)

	db.Create(&models.Reservation{
		Code:         "res-1",
		TableID:      table.ID,
		CustomerName: "Budi",
		Date:         "2030-05-20",
		Slot:         "19:00-21:00",
		PartySize:    2,
		Status:       models.ReservationConfirmed,
	})

	results, err := svc.GetAvailableTables(AvailabilityCheck{
		Date:      "2030-05-20",
		Slot:      "19:00-21:00",
		PartySize: 2,
	})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.False(t, results[0].Available)
	assert.Equal(t, "already reserved", results[0].Reason)

	// Slot lain di hari yang sama tetap bebas
	results, err = svc.GetAvailableTables(AvailabilityCheck{
		Date:      "2030-05-20",
		Slot:      "21:00-23:00",
		PartySize: 2,
	})
	assert.NoError(t, err)
	assert.True(t, results[0].Available)
}

// Reservasi cancelled tidak menduduki slot
func TestGetAvailableTablesIgnoresCancelled(t *testing.T) {
	db := setupServiceDB("availability_cancelled")
	svc := NewAvailabilityService(db)

	table := models.Table{TableNumber: "T1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0}
	db.Create(&table)
	db.Create(&models.Reservation{
		Code:         "res-cancelled",
		TableID:      table.ID,
		CustomerName: "Budi",
		Date:         "2030-05-20",
		Slot:         "19:00-21:00",
		PartySize:    2,
		Status:       models.ReservationCancelled,
	})

	results, err := svc.GetAvailableTables(AvailabilityCheck{
		Date:      "2030-05-20",
		Slot:      "19:00-21:00",
		PartySize: 2,
	})
	assert.NoError(t, err)
	assert.True(t, results[0].Available)
}

// Outdoor/terrace tertutup untuk slot larut malam
func TestGetAvailableTablesLocationClosed(t *testing.T) {
	db := setupServiceDB("availability_location")
	svc := NewAvailabilityService(db)

	db.Create(&models.Table{TableNumber: "T1", Capacity: 4, Location: models.LocationOutdoor, IsActive: true, PriceMultiplier: 1.0})
	db.Create(&models.Table{TableNumber: "T2", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0})

	results, err := svc.GetAvailableTables(AvailabilityCheck{
		Date:      "2030-05-20",
		Slot:      "21:00-23:00",
		PartySize: 2,
	})
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.False(t, results[0].Available)
	assert.Equal(t, "location closed for this slot", results[0].Reason)
	assert.True(t, results[1].Available)
}

func TestGetAvailableTablesLocationFilter(t *testing.T) {
	db := setupServiceDB("availability_filter")
	svc := NewAvailabilityService(db)

	db.Create(&models.Table{TableNumber: "T1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0})
	db.Create(&models.Table{TableNumber: "T2", Capacity: 4, Location: models.LocationVIP, IsActive: true, PriceMultiplier: 2.0})

	results, err := svc.GetAvailableTables(AvailabilityCheck{
		Date:      "2030-05-20",
		Slot:      "19:00-21:00",
		PartySize: 2,
		Location:  models.LocationVIP,
	})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "T2", results[0].Table.TableNumber)
}

func TestGetAvailableTablesValidation(t *testing.T) {
	db := setupServiceDB("availability_validation")
	svc := NewAvailabilityService(db)

	_, err := svc.GetAvailableTables(AvailabilityCheck{Date: "2030-05-20", Slot: "bad", PartySize: 2})
	assert.Error(t, err)

	_, err = svc.GetAvailableTables(AvailabilityCheck{Date: "2030-05-20", Slot: "19:00-21:00", PartySize: 0})
	assert.Error(t, err)
}

func TestCheckTableAvailable(t *testing.T) {
	db := setupServiceDB("availability_single")
	svc := NewAvailabilityService(db)

	table := models.Table{TableNumber: "T1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0}
	db.Create(&table)

	got, err := svc.CheckTableAvailable(db, table.ID, "2030-05-20", "19:00-21:00")
	assert.NoError(t, err)
	assert.Equal(t, table.ID, got.ID)

	_, err = svc.CheckTableAvailable(db, 999, "2030-05-20", "19:00-21:00")
	assert.True(t, errors.Is(err, ErrNotFound))

	db.Create(&models.Reservation{
		Code:         "res-1",
		TableID:      table.ID,
		CustomerName: "Budi",
		Date:         "2030-05-20",
		Slot:         "19:00-21:00",
		PartySize:    2,
		Status:       models.ReservationPending,
	})
	_, err = svc.CheckTableAvailable(db, table.ID, "2030-05-20", "19:00-21:00")
	assert.True(t, errors.Is(err, ErrSlotConflict))
}
