package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lounge-floor/floor"
	"github.com/yeremiapane/lounge-floor/models"
	"github.com/yeremiapane/lounge-floor/services"
	"github.com/yeremiapane/lounge-floor/utils"
	"gorm.io/gorm"
)

type ReservationController struct {
	DB           *gorm.DB
	Reservations *services.ReservationService
	Availability *services.AvailabilityService
	Reconciler   *services.Reconciler
}

func NewReservationController(db *gorm.DB, reservations *services.ReservationService, reconciler *services.Reconciler) *ReservationController {
	return &ReservationController{
		DB:           db,
		Reservations: reservations,
		Availability: reservations.Availability,
		Reconciler:   reconciler,
	}
}

// GetTimeSlots -> daftar slot waktu aktif untuk form booking
func (rc *ReservationController) GetTimeSlots(c *gin.Context) {
	var slots []models.TimeSlot
	if err := rc.DB.Where("is_active = ?", true).Order("start_time").Find(&slots).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of time slots", slots)
}

// GetAvailability -> kandidat meja beranotasi untuk (date, slot, party)
func (rc *ReservationController) GetAvailability(c *gin.Context) {
	partySize, _ := strconv.Atoi(c.Query("party_size"))
	check := services.AvailabilityCheck{
		Date:      c.Query("date"),
		Slot:      c.Query("slot"),
		PartySize: partySize,
		Location:  c.Query("location"),
	}

	tables, err := rc.Availability.GetAvailableTables(check)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table availability", tables)
}

// CreateReservation -> booking oleh customer
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		services.BookingForm
		UserID uint `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.CreateReservation(req.BookingForm, req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Trigger database juga akan menangkap insert ini; notify langsung
	// supaya dashboard tidak menunggu interval polling
	rc.Reconciler.NotifyReservationChange()
	floor.BroadcastReservationUpdate(*reservation)

	utils.RespondJSON(c, http.StatusCreated, "Reservation created", gin.H{
		"reservation_id": reservation.ID,
		"code":           reservation.Code,
		"status":         reservation.Status,
		"total_amount":   reservation.TotalAmount,
	})
}

// GetAllReservations -> list untuk staff, dengan filter opsional
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	tableID, _ := strconv.Atoi(c.Query("table_id"))
	filter := services.ReservationFilter{
		Date:    c.Query("date"),
		Status:  c.Query("status"),
		TableID: uint(tableID),
	}

	reservations, err := rc.Reservations.ListReservations(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationByID -> detail 1 reservasi
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("reservation_id"))

	reservation, err := rc.Reservations.GetReservation(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// UpdateReservationStatus -> transisi oleh staff (confirm, cancel,
// no_show, complete, expired)
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("reservation_id"))
	var body struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.UpdateStatus(uint(id), body.Status, body.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rc.Reconciler.NotifyReservationChange()
	floor.BroadcastReservationUpdate(*reservation)

	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}

// CancelReservation -> cancel oleh customer; hanya >2 jam sebelum mulai
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("reservation_id"))

	reservation, err := rc.Reservations.CancelByCustomer(uint(id), time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rc.Reconciler.NotifyReservationChange()
	floor.BroadcastReservationUpdate(*reservation)

	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", reservation)
}
