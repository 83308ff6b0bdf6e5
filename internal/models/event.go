package models

type EventType string

const (
	EventNewOrder    EventType = "new_order"
	EventOrderUpdate EventType = "order_update"
)

// OrderEvent is pushed to connected dashboards. Delivery is best effort;
// clients that miss one reload through the orders API.
type OrderEvent struct {
	Type         EventType   `json:"-"`
	ID           uint        `json:"id"`
	Status       OrderStatus `json:"status"`
	TableNumber  string      `json:"table_number"`
	RestaurantID uint        `json:"restaurant_id"`
}

// Frame is the websocket envelope: {"event": "...", "data": {...}}.
type Frame struct {
	Event EventType  `json:"event"`
	Data  OrderEvent `json:"data"`
}

func (e OrderEvent) Frame() Frame {
	return Frame{Event: e.Type, Data: e}
}
