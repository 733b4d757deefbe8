package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/lounge-floor/controllers"
	"github.com/yeremiapane/lounge-floor/models"
	"github.com/yeremiapane/lounge-floor/services"
	"github.com/yeremiapane/lounge-floor/utils"
)

// setupTestDBForReservations menggunakan SQLite in-memory khusus untuk
// ReservationController
func setupTestDBForReservations(name string) *gorm.DB {
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

func setupReservationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	reservationSvc := services.NewReservationService(db)
	reconciler := services.NewReconciler(db, reservationSvc)
	reservationCtrl := controllers.NewReservationController(db, reservationSvc, reconciler)

	router.GET("/availability", reservationCtrl.GetAvailability)
	router.POST("/reservations", reservationCtrl.CreateReservation)
	router.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	router.PATCH("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)
	return router
}

// jsonNumber -> id numerik dari hasil unmarshal (float64) ke path param
func jsonNumber(v float64) string {
	return strconv.Itoa(int(v))
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetAvailability(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations("ctrl_availability")

	db.Create(&models.Table{TableNumber: "A1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0})
	db.Create(&models.Table{TableNumber: "B1", Capacity: 2, Location: models.LocationOutdoor, IsActive: true, PriceMultiplier: 1.0})

	router := setupReservationRouter(db)
	req, err := http.NewRequest("GET", "/availability?date=2030-05-20&slot=19:00-21:00&party_size=2", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Table availability", response["message"])

	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, true, first["available"])
	assert.Equal(t, 50000.0, first["price"])
}

func TestGetAvailabilityBadRequest(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations("ctrl_availability_bad")
	router := setupReservationRouter(db)

	req, _ := http.NewRequest("GET", "/availability?date=2030-05-20&slot=19:00-21:00", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// party_size hilang -> 400
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservationEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations("ctrl_create_reservation")

	table := models.Table{TableNumber: "A1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0}
	db.Create(&table)

	router := setupReservationRouter(db)

	payload := map[string]interface{}{
		"table_id":      table.ID,
		"date":          "2030-05-20",
		"slot":          "19:00-21:00",
		"party_size":    2,
		"customer_name": "Budi Santoso",
	}
	w := postJSON(t, router, "/reservations", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Reservation created", response["message"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.NotEmpty(t, data["code"])
	assert.Equal(t, 50000.0, data["total_amount"])
}

// Booking kedua untuk slot yang sama -> 409 dengan pesan standar
func TestCreateReservationConflict(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations("ctrl_conflict")

	table := models.Table{TableNumber: "A1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0}
	db.Create(&table)

	router := setupReservationRouter(db)

	payload := map[string]interface{}{
		"table_id":      table.ID,
		"date":          "2030-05-20",
		"slot":          "19:00-21:00",
		"party_size":    2,
		"customer_name": "Budi Santoso",
	}
	w := postJSON(t, router, "/reservations", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	payload["customer_name"] = "Siti Rahma"
	w = postJSON(t, router, "/reservations", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Table is no longer available, please choose another", response["message"])
}

func TestUpdateReservationStatusEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations("ctrl_res_status")

	table := models.Table{TableNumber: "A1", Capacity: 4, Location: models.LocationIndoor, IsActive: true, PriceMultiplier: 1.0}
	db.Create(&table)

	router := setupReservationRouter(db)

	w := postJSON(t, router, "/reservations", map[string]interface{}{
		"table_id":      table.ID,
		"date":          "2030-05-20",
		"slot":          "19:00-21:00",
		"party_size":    2,
		"customer_name": "Budi Santoso",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["data"].(map[string]interface{})["reservation_id"].(float64)

	body, _ := json.Marshal(map[string]string{"status": "confirmed"})
	req, _ := http.NewRequest("PATCH", "/reservations/"+jsonNumber(id)+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "confirmed", data["status"])

	// Transisi ilegal -> 400
	body, _ = json.Marshal(map[string]string{"status": "completed"})
	req, _ = http.NewRequest("PATCH", "/reservations/"+jsonNumber(id)+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
