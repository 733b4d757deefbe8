package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lounge-floor/controllers"
	"github.com/yeremiapane/lounge-floor/middlewares"
	"github.com/yeremiapane/lounge-floor/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, reconciler *services.Reconciler) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi service + controller
	reservationSvc := services.NewReservationService(db)
	orderSvc := services.NewOrderService(db, reconciler)

	tableCtrl := controllers.NewTableController(db, reconciler)
	reservationCtrl := controllers.NewReservationController(db, reservationSvc, reconciler)
	orderCtrl := controllers.NewOrderController(db, orderSvc, reconciler)
	floorCtrl := controllers.NewFloorController(reconciler)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Availability + booking (customer, tanpa login). Rate limiter ketat
	// khusus untuk booking.
	r.GET("/time-slots", reservationCtrl.GetTimeSlots)
	r.GET("/availability", reservationCtrl.GetAvailability)
	booking := r.Group("/")
	booking.Use(middlewares.NewStrictRateLimiter())
	{
		booking.POST("/reservations", reservationCtrl.CreateReservation)
	}
	r.POST("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)
	r.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)

	// Order untuk meja (walk-in atau terkait reservasi)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	staff := r.Group("/staff")

	// TABLE
	staff.GET("/tables", tableCtrl.GetAllTables)
	staff.POST("/tables", tableCtrl.CreateTable)
	staff.GET("/tables/:table_id", tableCtrl.GetTableByID)
	staff.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	staff.GET("/table-context/:table_number", tableCtrl.GetTableContext)

	// RESERVATIONS
	staff.GET("/reservations", reservationCtrl.GetAllReservations)
	staff.PATCH("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)

	// ORDERS
	staff.GET("/orders", orderCtrl.GetAllOrders)
	staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	staff.POST("/orders/:order_id/payment", orderCtrl.RecordOrderPayment)

	// FLOOR DASHBOARD
	staff.GET("/floor/status", floorCtrl.GetFloorStatus)
	staff.GET("/floor/thresholds", floorCtrl.GetThresholds)
	staff.PUT("/floor/thresholds", floorCtrl.UpdateThresholds)

	// WebSocket endpoint dashboard lantai
	r.GET("/ws/floor", floorCtrl.FloorWSHandler)

	return r
}
