package ws

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"table_order/internal/auth"
	"table_order/internal/logger"
	"table_order/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub(logger.New("test", io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	r := gin.New()
	// rid query parameter stands in for the session
	r.Use(func(c *gin.Context) {
		rid, _ := strconv.Atoi(c.Query("rid"))
		auth.SetPrincipal(c, auth.Principal{RestaurantID: uint(rid)})
		c.Next()
	})
	r.GET("/ws/orders", hub.HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, srv, cancel
}

func dial(t *testing.T, srv *httptest.Server, rid int) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders?rid=" + strconv.Itoa(rid)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubDeliversPerRestaurant(t *testing.T) {
	hub, srv, _ := newTestServer(t)

	mine := dial(t, srv, 1)
	theirs := dial(t, srv, 2)
	require.Eventually(t, func() bool {
		return hub.Subscribers(1) == 1 && hub.Subscribers(2) == 1
	}, time.Second, 10*time.Millisecond)

	event := models.OrderEvent{Type: models.EventNewOrder, ID: 42, Status: models.OrderPending, TableNumber: "5", RestaurantID: 1}
	require.NoError(t, hub.PublishEvent(context.Background(), event))

	var frame models.Frame
	mine.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, mine.ReadJSON(&frame))
	assert.Equal(t, models.EventNewOrder, frame.Event)
	assert.Equal(t, uint(42), frame.Data.ID)
	assert.Equal(t, "5", frame.Data.TableNumber)

	theirs.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := theirs.ReadMessage()
	assert.Error(t, err, "other restaurants see nothing")
}

func TestHubRejectsAnonymous(t *testing.T) {
	_, srv, _ := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHubDropsClosedSubscribers(t *testing.T) {
	hub, srv, _ := newTestServer(t)

	conn := dial(t, srv, 1)
	require.Eventually(t, func() bool { return hub.Subscribers(1) == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers(1) == 0 }, time.Second, 10*time.Millisecond)

	// publishing with nobody connected is not an error
	assert.NoError(t, hub.PublishEvent(context.Background(), models.OrderEvent{Type: models.EventOrderUpdate, RestaurantID: 1}))
}

func TestHubStopsWithContext(t *testing.T) {
	hub, srv, cancel := newTestServer(t)

	conn := dial(t, srv, 1)
	require.Eventually(t, func() bool { return hub.Subscribers(1) == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool {
		return hub.PublishEvent(context.Background(), models.OrderEvent{RestaurantID: 1}) == ErrHubClosed
	}, time.Second, 10*time.Millisecond)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "connections are closed on shutdown")
}
