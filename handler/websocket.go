package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"canteen_manager/constants"
	"canteen_manager/database"
	"canteen_manager/model"

	"github.com/gofiber/contrib/websocket"
)

// OrderFeedWebsocket streams live order updates for one canteen. The client
// receives the current open orders on connect and a fresh snapshot whenever an
// order for that canteen is created or changes status. Each connection holds
// its own subscription and only ever writes to itself, so a broadcast reaches
// every open dashboard exactly once.
func OrderFeedWebsocket(c *websocket.Conn) {
	canteenIdStr := c.Params("canteenId")
	id64, err := strconv.ParseUint(canteenIdStr, 10, 64)
	if err != nil {
		log.Printf("Invalid canteenId: %s", canteenIdStr)
		c.Close()
		return
	}
	canteenId := uint(id64)

	log.Printf("New WS connection for canteen %d", canteenId)
	defer c.Close()

	// Initial snapshot so the dashboard renders immediately
	if snapshot, err := activeOrdersPayload(canteenId); err == nil {
		c.WriteMessage(websocket.TextMessage, snapshot)
	}

	pubsub := database.Redis.Subscribe(
		context.Background(),
		fmt.Sprintf("canteen_orders:%d", canteenId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()
	done := make(chan struct{})

	// Drain client messages to detect disconnects
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-channel:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// BroadcastCanteenOrders publishes the canteen's open orders to every feed
// subscriber. Called after order creation and status changes.
func BroadcastCanteenOrders(canteenId uint) {
	payload, err := activeOrdersPayload(canteenId)
	if err != nil {
		log.Printf("Error loading orders for broadcast: %v", err)
		return
	}

	err = database.Redis.Publish(
		context.Background(),
		fmt.Sprintf("canteen_orders:%d", canteenId),
		payload,
	).Err()
	if err != nil {
		log.Printf("Error publishing order feed for canteen %d: %v", canteenId, err)
	}
}

func activeOrdersPayload(canteenId uint) ([]byte, error) {
	var orders model.Orders
	err := database.DB.Preload("Items").
		Where("canteen_id = ? AND status NOT IN ?", canteenId,
			[]string{constants.ORDER_DELIVERED, constants.ORDER_CANCELLED}).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[string]interface{}{
		"type":   "orders",
		"orders": orders,
	})
}
