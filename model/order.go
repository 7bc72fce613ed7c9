package model

import (
	"time"

	"canteen_manager/constants"
)

type OrderItem struct {
	DTO
	OrderId  uint    `gorm:"not null;index" json:"-"`
	MenuId   uint    `gorm:"not null" json:"menuId"`
	Name     string  `gorm:"not null" json:"name"`
	Price    float64 `gorm:"not null" json:"price"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Total    float64 `gorm:"not null" json:"total"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type Order struct {
	DTO
	PublicCode            string          `gorm:"uniqueIndex;not null;size:30" json:"orderId"`
	Items                 []OrderItem     `gorm:"foreignKey:OrderId" json:"items"`
	TotalAmount           float64         `gorm:"not null" json:"totalAmount"`
	CanteenId             *uint           `gorm:"index" json:"canteenId"`
	Canteen               *CanteenRequest `gorm:"foreignKey:CanteenId;constraint:OnDelete:SET NULL" json:"canteen,omitempty"`
	Customer              CustomerInfo    `gorm:"embedded;embeddedPrefix:customer_" json:"customerInfo"`
	Status                string          `gorm:"not null;default:pending;index" json:"status"`
	PaymentStatus         string          `gorm:"not null;default:pending" json:"paymentStatus"`
	PaymentMethod         string          `json:"paymentMethod"` // cash, card, upi, wallet, cash_on_delivery
	Notes                 string          `json:"notes"`
	EstimatedDeliveryTime *time.Time      `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time      `json:"actualDeliveryTime,omitempty"`
}

type Orders []Order

// OrderStatusFlow lists the forward transitions of the order lifecycle.
// Cancellation is reachable from every non-terminal state.
var OrderStatusFlow = map[string][]string{
	constants.ORDER_PENDING:   {constants.ORDER_CONFIRMED, constants.ORDER_CANCELLED},
	constants.ORDER_CONFIRMED: {constants.ORDER_PREPARING, constants.ORDER_CANCELLED},
	constants.ORDER_PREPARING: {constants.ORDER_READY, constants.ORDER_CANCELLED},
	constants.ORDER_READY:     {constants.ORDER_DELIVERED, constants.ORDER_CANCELLED},
	constants.ORDER_DELIVERED: {},
	constants.ORDER_CANCELLED: {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range OrderStatusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus reports whether no further transitions exist.
func IsTerminalOrderStatus(status string) bool {
	return len(OrderStatusFlow[status]) == 0
}

func IsValidOrderStatus(status string) bool {
	_, ok := OrderStatusFlow[status]
	return ok
}

func IsValidPaymentStatus(status string) bool {
	switch status {
	case constants.PAYMENT_PENDING, constants.PAYMENT_PAID, constants.PAYMENT_FAILED, constants.PAYMENT_REFUNDED:
		return true
	}
	return false
}

type OrderItemInput struct {
	MenuItemId uint    `json:"menuItemId" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,min=1"`
	Price      float64 `json:"price"` // advisory only, server recomputes
}

type PlaceOrderInput struct {
	Items         []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	TotalAmount   float64          `json:"totalAmount"`
	CanteenId     *uint            `json:"canteenId"`
	CustomerInfo  *CustomerInfo    `json:"customerInfo"`
	Notes         string           `json:"notes"`
	PaymentMethod string           `json:"paymentMethod" validate:"omitempty,oneof=cash card upi wallet cash_on_delivery"`
	PaymentStatus string           `json:"paymentStatus" validate:"omitempty,oneof=pending paid failed refunded"`
}

type UpdateOrderStatusInput struct {
	Status                string     `json:"status" validate:"omitempty,oneof=pending confirmed preparing ready delivered cancelled"`
	PaymentStatus         string     `json:"paymentStatus" validate:"omitempty,oneof=pending paid failed refunded"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime"`
}

type FilterOrder struct {
	Pagination
	Status    string `query:"status"`
	CanteenId *uint  `query:"canteenId"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}
