package helper

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"canteen_manager/model"
	"canteen_manager/utils"

	"gorm.io/gorm"
)

// GenerateOrderCode builds the human-readable code handed to the customer,
// e.g. ORD-1718000000123-X7KQ. Collisions land on the unique index.
func GenerateOrderCode() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), utils.RandomString(4))
}

// FindOrderByAnyId looks an order up by its numeric storage id first, then by
// its public code.
func FindOrderByAnyId(db *gorm.DB, idOrCode string) (*model.Order, error) {
	var order model.Order

	if id, err := strconv.ParseUint(idOrCode, 10, 32); err == nil {
		err := db.Preload("Items").Preload("Canteen").First(&order, uint(id)).Error
		if err == nil {
			return &order, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := db.Preload("Items").Preload("Canteen").
		Where("public_code = ?", idOrCode).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// BuildOrderItems resolves each requested line against the authoritative menu
// records and recomputes every total server-side. The menus slice must
// contain an entry for each requested MenuItemId.
func BuildOrderItems(menus map[uint]model.Menu, requested []model.OrderItemInput) ([]model.OrderItem, float64, error) {
	items := make([]model.OrderItem, 0, len(requested))
	var total float64

	for _, in := range requested {
		menu, ok := menus[in.MenuItemId]
		if !ok {
			return nil, 0, fmt.Errorf("menu item not found: %d", in.MenuItemId)
		}
		quantity := in.Quantity
		if quantity < 1 {
			quantity = 1
		}
		lineTotal := menu.Price * float64(quantity)
		items = append(items, model.OrderItem{
			MenuId:   menu.ID,
			Name:     menu.Name,
			Price:    menu.Price,
			Quantity: quantity,
			Total:    lineTotal,
		})
		total += lineTotal
	}

	return items, total, nil
}

// TotalsMatch tolerates float rounding up to a cent.
func TotalsMatch(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= 0.01
}
