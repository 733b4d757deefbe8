package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/lounge-floor/controllers"
	"github.com/yeremiapane/lounge-floor/models"
	"github.com/yeremiapane/lounge-floor/services"
	"github.com/yeremiapane/lounge-floor/utils"
)

func setupFloorRouter(db *gorm.DB) (*gin.Engine, *services.Reconciler) {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	reservationSvc := services.NewReservationService(db)
	reconciler := services.NewReconciler(db, reservationSvc)

	tableCtrl := controllers.NewTableController(db, reconciler)
	floorCtrl := controllers.NewFloorController(reconciler)

	router.POST("/tables", tableCtrl.CreateTable)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	router.GET("/table-context/:table_number", tableCtrl.GetTableContext)
	router.GET("/floor/status", floorCtrl.GetFloorStatus)
	router.GET("/floor/thresholds", floorCtrl.GetThresholds)
	router.PUT("/floor/thresholds", floorCtrl.UpdateThresholds)
	return router, reconciler
}

func TestCreateTableEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations("ctrl_table_create")
	router, _ := setupFloorRouter(db)

	payload := map[string]interface{}{
		"table_number":     "A1",
		"capacity":         4,
		"location":         "vip",
		"amenities":        []string{"window", "sofa"},
		"price_multiplier": 1.5,
	}
	w := postJSON(t, router, "/tables", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Table created successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "A1", data["table_number"])
	assert.Equal(t, "vip", data["location"])
	assert.Equal(t, 1.5, data["price_multiplier"])
	assert.Equal(t, true, data["is_active"])

	// Lokasi tidak dikenal ditolak
	payload["table_number"] = "A2"
	payload["location"] = "rooftop"
	w = postJSON(t, router, "/tables", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Soft-disable: meja dinonaktifkan lewat is_active, bukan dihapus
func TestUpdateTableSoftDisable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations("ctrl_table_disable")
	router, _ := setupFloorRouter(db)

	table := models.Table{TableNumber: "A1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0}
	db.Create(&table)

	inactive := false
	body, _ := json.Marshal(map[string]interface{}{"is_active": inactive})
	req, _ := http.NewRequest("PATCH", "/tables/"+jsonNumber(float64(table.ID)), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Table
	assert.NoError(t, db.First(&got, table.ID).Error)
	assert.False(t, got.IsActive)

	// Meja nonaktif muncul unavailable di floor status
	req, _ = http.NewRequest("GET", "/floor/status", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	statuses := data["statuses"].([]interface{})
	assert.Len(t, statuses, 1)
	assert.Equal(t, "unavailable", statuses[0].(map[string]interface{})["status"])
}

func TestGetFloorStatusEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations("ctrl_floor_status")
	router, _ := setupFloorRouter(db)

	db.Create(&models.Table{TableNumber: "A1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0})
	db.Create(&models.Table{TableNumber: "B1", Capacity: 2, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0})

	req, _ := http.NewRequest("GET", "/floor/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Floor status", response["message"])

	data := response["data"].(map[string]interface{})
	statuses := data["statuses"].([]interface{})
	assert.Len(t, statuses, 2)
	for _, raw := range statuses {
		st := raw.(map[string]interface{})
		assert.Equal(t, "available", st["status"])
	}

	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, 2.0, summary["available"])
	assert.Equal(t, 0.0, summary["seated"])
}

func TestThresholdEndpoints(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations("ctrl_thresholds")
	router, _ := setupFloorRouter(db)
	defer services.SetStatusThresholds(services.DefaultStatusThresholds())

	req, _ := http.NewRequest("GET", "/floor/thresholds", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 45.0, data["warning_minutes"])
	assert.Equal(t, 90.0, data["overdue_minutes"])

	// Ganti ambang saat runtime
	body, _ := json.Marshal(map[string]int{
		"warning_minutes":     30,
		"overdue_minutes":     60,
		"max_service_minutes": 120,
	})
	putReq, _ := http.NewRequest("PUT", "/floor/thresholds", bytes.NewBuffer(body))
	putReq.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, putReq)
	assert.Equal(t, http.StatusOK, w.Code)

	th := services.GetStatusThresholds()
	assert.Equal(t, 30, th.WarningMinutes)
	assert.Equal(t, 60, th.OverdueMinutes)
	assert.Equal(t, 120, th.MaxServiceMinutes)
}

func TestGetTableContextEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations("ctrl_table_context")
	router, _ := setupFloorRouter(db)

	db.Create(&models.Table{TableNumber: "A1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0})

	// Tanpa reservasi aktif -> 200 dengan reservation null
	req, _ := http.NewRequest("GET", "/table-context/A1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "No active reservation for this table", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Nil(t, data["reservation"])

	// Meja tidak dikenal -> 404
	req, _ = http.NewRequest("GET", "/table-context/ZZ", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
