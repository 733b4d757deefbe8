package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lounge-floor/floor"
	"github.com/yeremiapane/lounge-floor/models"
	"github.com/yeremiapane/lounge-floor/services"
	"github.com/yeremiapane/lounge-floor/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB         *gorm.DB
	Reconciler *services.Reconciler
}

func NewTableController(db *gorm.DB, reconciler *services.Reconciler) *TableController {
	return &TableController{DB: db, Reconciler: reconciler}
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber     string   `json:"table_number" binding:"required"`
		Capacity        int      `json:"capacity" binding:"required"`
		Location        string   `json:"location"` // optional, default "indoor"
		Amenities       []string `json:"amenities"`
		PriceMultiplier *float64 `json:"price_multiplier"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableNumber:     req.TableNumber,
		Capacity:        req.Capacity,
		Location:        models.LocationIndoor,
		IsActive:        true,
		PriceMultiplier: 1.0,
	}
	if req.Location != "" {
		if !models.IsValidLocation(req.Location) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid location %q", req.Location))
			return
		}
		table.Location = req.Location
	}
	if req.PriceMultiplier != nil {
		if *req.PriceMultiplier < 0 {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("price multiplier must be >= 0"))
			return
		}
		table.PriceMultiplier = *req.PriceMultiplier
	}
	if len(req.Amenities) > 0 {
		table.Amenities = utils.EncodeTags(req.Amenities)
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	floor.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("New table created: %s (capacity=%d location=%s)",
		table.TableNumber, table.Capacity, table.Location)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// UpdateTable -> edit meja oleh staff. Hapus permanen tidak ada; meja
// dinonaktifkan lewat is_active=false (soft-disable).
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var body struct {
		Capacity        *int     `json:"capacity"`
		Location        *string  `json:"location"`
		Amenities       []string `json:"amenities"`
		IsActive        *bool    `json:"is_active"`
		PriceMultiplier *float64 `json:"price_multiplier"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Capacity != nil {
		if *body.Capacity < 1 {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("capacity must be at least 1"))
			return
		}
		table.Capacity = *body.Capacity
	}
	if body.Location != nil {
		if !models.IsValidLocation(*body.Location) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid location %q", *body.Location))
			return
		}
		table.Location = *body.Location
	}
	if body.Amenities != nil {
		table.Amenities = utils.EncodeTags(body.Amenities)
	}
	if body.IsActive != nil {
		table.IsActive = *body.IsActive
	}
	if body.PriceMultiplier != nil {
		if *body.PriceMultiplier < 0 {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("price multiplier must be >= 0"))
			return
		}
		table.PriceMultiplier = *body.PriceMultiplier
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	floor.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Table %d updated (active=%v)", table.ID, table.IsActive)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// GetTableContext -> reservasi aktif (ordering window) untuk pre-fill
// form order di meja ini
func (tc *TableController) GetTableContext(c *gin.Context) {
	tableNumber := c.Param("table_number")

	reservation, err := tc.Reconciler.TableContext(tableNumber, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if reservation == nil {
		utils.RespondJSON(c, http.StatusOK, "No active reservation for this table", gin.H{
			"table_number": tableNumber,
			"reservation":  nil,
		})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Active reservation context", gin.H{
		"table_number": tableNumber,
		"reservation":  reservation,
		"suggested": gin.H{
			"customer_name":  reservation.CustomerName,
			"customer_email": reservation.CustomerEmail,
			"customer_phone": reservation.CustomerPhone,
			"party_size":     reservation.PartySize,
		},
	})
}
