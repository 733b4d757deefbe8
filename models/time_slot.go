package models

import "time"

// TimeSlot -> data referensi slot waktu (statis, jarang berubah)
type TimeSlot struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StartTime       string    `gorm:"type:varchar(5);not null" json:"start_time"` // HH:MM
	EndTime         string    `gorm:"type:varchar(5);not null" json:"end_time"`   // HH:MM
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	MaxConcurrent   int       `gorm:"not null;default:0" json:"max_concurrent"` // 0 = tanpa batas
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// Slot -> representasi string "HH:MM-HH:MM" yang dipakai reservasi
func (ts *TimeSlot) Slot() string {
	return ts.StartTime + "-" + ts.EndTime
}
