package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/lounge-floor/models"
	"github.com/yeremiapane/lounge-floor/utils"
	"gorm.io/gorm"
)

// orderTransitions -> pending -> confirmed -> preparing -> ready ->
// delivered, cancel boleh selama belum delivered
var orderTransitions = map[string][]string{
	models.OrderPending:   {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed: {models.OrderPreparing, models.OrderCancelled},
	models.OrderPreparing: {models.OrderReady, models.OrderCancelled},
	models.OrderReady:     {models.OrderDelivered, models.OrderCancelled},
}

func CanTransitionOrder(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type OrderService struct {
	DB         *gorm.DB
	Reconciler *Reconciler
}

func NewOrderService(db *gorm.DB, reconciler *Reconciler) *OrderService {
	return &OrderService{DB: db, Reconciler: reconciler}
}

type OrderItemInput struct {
	MenuID   uint   `json:"menu_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Notes    string `json:"notes"`
}

type OrderInput struct {
	TableNumber   string           `json:"table_number" binding:"required"`
	ReservationID *uint            `json:"reservation_id"`
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	CustomerPhone string           `json:"customer_phone"`
	Items         []OrderItemInput `json:"items" binding:"required"`
}

// CreateOrder -> buat order (walk-in atau terkait reservasi). Kalau ada
// link reservasi, promotion ke seated dijalankan setelah commit; error
// promotion tidak pernah menggagalkan order.
func (svc *OrderService) CreateOrder(input OrderInput) (*models.Order, error) {
	if input.ReservationID != nil {
		var reservation models.Reservation
		if err := svc.DB.First(&reservation, *input.ReservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	now := time.Now()
	order := models.Order{
		TableNumber:   input.TableNumber,
		ReservationID: input.ReservationID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Status:        models.OrderPending,
		Payment: models.PaymentInfo{
			Status: models.PaymentUnpaid,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	var items []models.OrderItem

	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}

		var total float64
		for _, item := range input.Items {
			// Ambil menu untuk snapshot nama/harga/kategori
			var menu models.Menu
			if err := tx.First(&menu, item.MenuID).Error; err != nil {
				// skip jika tak ketemu
				continue
			}
			if item.Quantity < 1 {
				continue
			}
			total += float64(item.Quantity) * menu.Price

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				MenuID:    menu.ID,
				Name:      menu.Name,
				Category:  menu.Category,
				Price:     menu.Price,
				Quantity:  item.Quantity,
				Notes:     item.Notes,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrUpstream, err)
			}
			items = append(items, orderItem)
		}

		order.TotalAmount = total
		order.Payment.AmountDue = total
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"total_amount":       total,
				"payment_amount_due": total,
			}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.OrderItems = items

	utils.InfoLogger.Printf("Order %d created for table %s (total=Rp%s)",
		order.ID, order.TableNumber, utils.FormatCurrency(order.TotalAmount))

	// Promotion: reservasi terkait -> seated (error dilog di dalam)
	if svc.Reconciler != nil {
		svc.Reconciler.HandleOrderCreated(&order)
	}

	return &order, nil
}

// UpdateStatus -> transisi status order. Saat delivered, completion
// reservasi terkait dijalankan fire-and-forget; kegagalannya tidak
// menggagalkan update order ini.
func (svc *OrderService) UpdateStatus(id uint, newStatus string) (*models.Order, error) {
	var order models.Order
	if err := svc.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if order.Status == newStatus {
		return &order, nil
	}
	if !CanTransitionOrder(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	order.Status = newStatus
	order.UpdatedAt = time.Now()
	if err := svc.DB.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, newStatus)

	if newStatus == models.OrderDelivered && svc.Reconciler != nil {
		svc.Reconciler.HandleOrderDelivered(&order)
	}

	return &order, nil
}

// RecordPayment -> catat pembayaran yang sudah di-capture sistem
// eksternal ke sub-record payment order
func (svc *OrderService) RecordPayment(id uint, method string, amount float64) (*models.Order, error) {
	var order models.Order
	if err := svc.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	now := time.Now()
	order.Payment.Method = method
	order.Payment.AmountPaid += amount
	if order.Payment.AmountPaid >= order.Payment.AmountDue {
		order.Payment.Status = models.PaymentPaid
		order.Payment.PaidAt = &now
	} else {
		order.Payment.Status = models.PaymentPartial
	}
	order.UpdatedAt = now

	if err := svc.DB.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &order, nil
}

func (svc *OrderService) ListOrders(tableNumber string, status string) ([]models.Order, error) {
	q := svc.DB.Preload("OrderItems").Order("created_at desc")
	if tableNumber != "" {
		q = q.Where("table_number = ?", tableNumber)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return orders, nil
}

func (svc *OrderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := svc.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &order, nil
}
