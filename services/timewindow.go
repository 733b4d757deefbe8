package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/lounge-floor/models"
)

// BaseReservationFee -> biaya dasar per slot (Rupiah), dikali
// PriceMultiplier meja. Konstanta bisnis, bukan konfigurasi per-call.
const BaseReservationFee = 50000.0

// Window bisnis di sekitar slot reservasi. Dua window berbeda untuk dua
// pemakai berbeda: ordering (pre-fill order form) dan occupancy (derivasi
// status meja, termasuk buffer beres-beres).
const (
	orderingWindowBefore = 30 * time.Minute
	orderingWindowAfter  = 3 * time.Hour
	occupancyWindowAfter = 2 * time.Hour
)

// SlotBounds -> konversi (date "2006-01-02", slot "HH:MM-HH:MM") menjadi
// instant start/end absolut. Jam 0-6 dianggap milik hari BERIKUTNYA,
// sehingga slot lewat tengah malam seperti "23:00-01:00" menghasilkan
// end setelah start.
func SlotBounds(date string, slot string) (time.Time, time.Time, error) {
	startStr, endStr, err := SplitSlot(slot)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start, err := anchorToDate(date, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := anchorToDate(date, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

// SplitSlot -> pecah "HH:MM-HH:MM" menjadi dua bagian
func SplitSlot(slot string) (string, string, error) {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid slot format %q, expected HH:MM-HH:MM", slot)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// anchorToDate -> tempelkan "HH:MM" ke tanggal; jam 0-6 digeser ke hari
// berikutnya
func anchorToDate(date string, hhmm string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	hour, minute, err := parseClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
	if hour <= 6 {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

func parseClock(hhmm string) (int, int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return hour, minute, nil
}

// IsLocationOpenForSlot -> outdoor/terrace tutup jika jam selesai slot
// jatuh setelah 22:00 atau sebelum 06:00. Lokasi lain bebas. Aturan
// bisnis keras, tidak bisa dikonfigurasi per meja.
func IsLocationOpenForSlot(location string, slot string) bool {
	if location != models.LocationOutdoor && location != models.LocationTerrace {
		return true
	}

	_, endStr, err := SplitSlot(slot)
	if err != nil {
		return false
	}
	endHour, _, err := parseClock(endStr)
	if err != nil {
		return false
	}

	return endHour <= 22 && endHour >= 6
}

// OrderingWindow -> [start-30m, end+3h], dipakai untuk mengaitkan order
// baru dengan reservasi yang sedang berjalan
func OrderingWindow(r *models.Reservation) (time.Time, time.Time, error) {
	start, end, err := SlotBounds(r.Date, r.Slot)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start.Add(-orderingWindowBefore), end.Add(orderingWindowAfter), nil
}

// OccupancyWindow -> [start, end+2h], dipakai derivasi status meja
// (buffer 2 jam untuk beres-beres)
func OccupancyWindow(r *models.Reservation) (time.Time, time.Time, error) {
	start, end, err := SlotBounds(r.Date, r.Slot)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end.Add(occupancyWindowAfter), nil
}

// IsReservationOrderingActive -> now di dalam ordering window?
func IsReservationOrderingActive(r *models.Reservation, now time.Time) bool {
	from, to, err := OrderingWindow(r)
	if err != nil {
		return false
	}
	return !now.Before(from) && !now.After(to)
}

// IsReservationOccupancyActive -> now di dalam occupancy window?
func IsReservationOccupancyActive(r *models.Reservation, now time.Time) bool {
	from, to, err := OccupancyWindow(r)
	if err != nil {
		return false
	}
	return !now.Before(from) && !now.After(to)
}
