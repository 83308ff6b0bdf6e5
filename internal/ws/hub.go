package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"table_order/internal/auth"
	"table_order/internal/logger"
	"table_order/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

var ErrHubClosed = errors.New("hub closed")

// Hub pushes order events to the dashboards connected to this process.
// Subscribers are grouped by restaurant and only see their own events.
type Hub struct {
	clients    map[uint]map[*websocket.Conn]bool // restaurantID -> set of clients
	broadcast  chan models.OrderEvent
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{}
	mu         sync.Mutex
	log        *logger.Logger
}

type Subscription struct {
	Conn         *websocket.Conn
	RestaurantID uint
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan models.OrderEvent),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves register, unregister and broadcast until ctx is cancelled,
// then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.RestaurantID] == nil {
				h.clients[sub.RestaurantID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.RestaurantID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			h.drop(sub.RestaurantID, sub.Conn)
			h.mu.Unlock()

		case event := <-h.broadcast:
			frame := event.Frame()
			h.mu.Lock()
			for conn := range h.clients[event.RestaurantID] {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(frame); err != nil {
					h.log.Warn("ws_write", "Dropping websocket subscriber",
						slog.Uint64("restaurant_id", uint64(event.RestaurantID)),
						slog.String("error", err.Error()),
					)
					h.drop(event.RestaurantID, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop must be called with mu held.
func (h *Hub) drop(restaurantID uint, conn *websocket.Conn) {
	if _, ok := h.clients[restaurantID][conn]; !ok {
		return
	}
	delete(h.clients[restaurantID], conn)
	if len(h.clients[restaurantID]) == 0 {
		delete(h.clients, restaurantID)
	}
	conn.Close()
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for rid, conns := range h.clients {
		for conn := range conns {
			conn.Close()
		}
		delete(h.clients, rid)
	}
	close(h.done)
}

// PublishEvent hands the event to the connected subscribers of its
// restaurant. Nothing is queued for clients that are not connected.
func (h *Hub) PublishEvent(ctx context.Context, event models.OrderEvent) error {
	select {
	case h.broadcast <- event:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Deliver is the pub/sub callback form of PublishEvent.
func (h *Hub) Deliver(event models.OrderEvent) {
	if err := h.PublishEvent(context.Background(), event); err != nil {
		h.log.Warn("ws_deliver", "Event not delivered", slog.String("error", err.Error()))
	}
}

// Subscribers reports how many dashboards of a restaurant are connected.
func (h *Hub) Subscribers(restaurantID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[restaurantID])
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleWebSocket upgrades an authenticated dashboard: GET /ws/orders
func (h *Hub) HandleWebSocket(c *gin.Context) {
	p := auth.PrincipalFrom(c)
	if !p.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws_upgrade", "Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	sub := Subscription{Conn: conn, RestaurantID: p.RestaurantID}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}

	go h.listen(sub)
}

// listen drains client frames so close and ping control messages are
// processed; dashboards never send data.
func (h *Hub) listen(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
