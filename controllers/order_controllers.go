package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lounge-floor/floor"
	"github.com/yeremiapane/lounge-floor/services"
	"github.com/yeremiapane/lounge-floor/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	DB         *gorm.DB
	Orders     *services.OrderService
	Reconciler *services.Reconciler
}

func NewOrderController(db *gorm.DB, orders *services.OrderService, reconciler *services.Reconciler) *OrderController {
	return &OrderController{DB: db, Orders: orders, Reconciler: reconciler}
}

// CreateOrder -> buat order untuk meja; reservation_id opsional
// (walk-in tanpa reservasi tetap boleh)
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.CreateOrder(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	oc.Reconciler.NotifyOrderChange()
	floor.BroadcastOrderUpdate(*order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> list orders beserta items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Orders.ListOrders(c.Query("table_number"), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.Orders.GetOrder(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> staff/dapur menggeser status order. Transisi ke
// delivered ikut menyelesaikan reservasi terkait (fire-and-forget).
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdateStatus(uint(id), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	oc.Reconciler.NotifyOrderChange()
	floor.BroadcastOrderUpdate(*order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// RecordOrderPayment -> catat hasil capture pembayaran eksternal
func (oc *OrderController) RecordOrderPayment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))
	var body struct {
		Method string  `json:"method" binding:"required"`
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.RecordPayment(uint(id), body.Method, body.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	oc.Reconciler.NotifyOrderChange()
	floor.BroadcastOrderUpdate(*order)

	utils.RespondJSON(c, http.StatusOK, "Payment recorded", order)
}
