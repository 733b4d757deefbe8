package services

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// ChangeMonitor -> polling change-feed db_changes yang diisi trigger
// database, lalu meneruskan per koleksi ke Reconciler. Dua subscription
// logis (reservations, orders) berbagi satu poller.
type ChangeMonitor struct {
	DB         *gorm.DB
	Reconciler *Reconciler
	StopChan   chan struct{}
	Interval   time.Duration
}

type DBChange struct {
	ID         int64     `gorm:"column:id"`
	TableName  string    `gorm:"column:table_name"`
	RecordID   int64     `gorm:"column:record_id"`
	ActionType string    `gorm:"column:action_type"`
	ChangedAt  time.Time `gorm:"column:changed_at"`
	Processed  bool      `gorm:"column:processed"`
}

func NewChangeMonitor(db *gorm.DB, reconciler *Reconciler) *ChangeMonitor {
	return &ChangeMonitor{
		DB:         db,
		Reconciler: reconciler,
		StopChan:   make(chan struct{}),
		Interval:   1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []DBChange

	// Gunakan transaction untuk mencegah race condition
	tx := cm.DB.Begin()

	if err := tx.Table("db_changes").
		Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching changes: %v", err)
		return
	}

	sawReservation := false
	sawOrder := false

	for _, change := range changes {
		switch change.TableName {
		case "reservations":
			sawReservation = true
		case "orders":
			sawOrder = true
		}

		// Mark sebagai processed
		if err := tx.Table("db_changes").
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction: %v", err)
		tx.Rollback()
		return
	}

	// Satu notify per stream cukup: recompute selalu membaca state penuh,
	// jadi batch perubahan collapse dengan aman
	if sawReservation {
		cm.Reconciler.NotifyReservationChange()
	}
	if sawOrder {
		cm.Reconciler.NotifyOrderChange()
	}

	if len(changes) > 0 {
		log.Printf("Processed %d change rows (reservations=%v orders=%v)",
			len(changes), sawReservation, sawOrder)
	}
}
