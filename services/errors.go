package services

import "errors"

// Error sentinel untuk layer service. Controller memetakan error ini ke
// HTTP status lewat errors.Is.
var (
	// ErrNotFound -> table/reservation/order yang direferensikan tidak ada
	ErrNotFound = errors.New("referenced record not found")
	// ErrSlotConflict -> slot sudah terisi saat write (re-check gagal)
	ErrSlotConflict = errors.New("table is no longer available for this slot")
	// ErrUnavailable -> pengecekan availability gagal; caller WAJIB
	// menganggap "tidak tersedia", bukan "tersedia"
	ErrUnavailable = errors.New("availability could not be verified")
	// ErrUpstream -> read/write ke store gagal
	ErrUpstream = errors.New("store operation failed")
	// ErrInvalidTransition -> transisi status tidak diizinkan state machine
	ErrInvalidTransition = errors.New("status transition not allowed")
	// ErrCancelTooLate -> customer hanya boleh cancel >2 jam sebelum mulai
	ErrCancelTooLate = errors.New("reservation can only be cancelled more than 2 hours before start")
)
