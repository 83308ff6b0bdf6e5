package handlers

import (
	"net/http"

	"table_order/internal/logger"
	"table_order/internal/models"
	"table_order/internal/services"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	authService   services.AuthService
	menuService   services.MenuService
	tableService  services.TableService
	orderService  services.OrderService
	razorpayKeyID string
	log           *logger.Logger
}

func NewCustomerHandler(
	authService services.AuthService,
	menuService services.MenuService,
	tableService services.TableService,
	orderService services.OrderService,
	razorpayKeyID string,
	log *logger.Logger,
) *CustomerHandler {
	return &CustomerHandler{
		authService:   authService,
		menuService:   menuService,
		tableService:  tableService,
		orderService:  orderService,
		razorpayKeyID: razorpayKeyID,
		log:           log,
	}
}

// Home: GET /
func (h *CustomerHandler) Home(c *gin.Context) {
	restaurants, err := h.authService.FeaturedRestaurants()
	if err != nil {
		pageError(c, h.log, "home", err)
		return
	}
	render(c, http.StatusOK, "index.html", gin.H{"Restaurants": restaurants})
}

// Menu: GET /menu?rid=&tid=
func (h *CustomerHandler) Menu(c *gin.Context) {
	restaurant, table, ok := h.tableContext(c)
	if !ok {
		return
	}
	items, err := h.menuService.List(restaurant.ID)
	if err != nil {
		pageError(c, h.log, "menu", err)
		return
	}
	render(c, http.StatusOK, "menu.html", gin.H{
		"Title":      restaurant.Name,
		"Restaurant": restaurant,
		"Table":      table,
		"MenuItems":  items,
	})
}

// Cart: GET /cart?rid=&tid=
func (h *CustomerHandler) Cart(c *gin.Context) {
	restaurant, table, ok := h.tableContext(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, "cart.html", gin.H{
		"Title":         "Cart",
		"Restaurant":    restaurant,
		"Table":         table,
		"RazorpayKeyID": h.razorpayKeyID,
	})
}

// tableContext resolves rid and tid, redirecting home when either is missing
// and answering 404 when they do not name a table of that restaurant.
func (h *CustomerHandler) tableContext(c *gin.Context) (*models.Restaurant, *models.Table, bool) {
	rawRID, rawTID := c.Query("rid"), c.Query("tid")
	if rawRID == "" || rawTID == "" {
		c.Redirect(http.StatusFound, "/")
		return nil, nil, false
	}

	rid, okR := parseID(rawRID)
	tid, okT := parseID(rawTID)
	if !okR || !okT {
		renderNotFound(c)
		return nil, nil, false
	}

	restaurant, err := h.authService.GetRestaurant(rid)
	if err != nil {
		pageError(c, h.log, "table_context", err)
		return nil, nil, false
	}
	table, err := h.tableService.Get(tid)
	if err != nil {
		pageError(c, h.log, "table_context", err)
		return nil, nil, false
	}
	if table.RestaurantID != restaurant.ID {
		renderNotFound(c)
		return nil, nil, false
	}
	return restaurant, table, true
}

// PlaceOrder: POST /place_order
func (h *CustomerHandler) PlaceOrder(c *gin.Context) {
	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid data"})
		return
	}

	order, err := h.orderService.Place(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, "place_order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order_id": order.ID})
}

// Confirmation: GET /confirmation?order_id=
func (h *CustomerHandler) Confirmation(c *gin.Context) {
	raw := c.Query("order_id")
	if raw == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}
	id, ok := parseID(raw)
	if !ok {
		renderNotFound(c)
		return
	}

	order, err := h.orderService.Get(id)
	if err != nil {
		pageError(c, h.log, "confirmation", err)
		return
	}
	restaurant, err := h.authService.GetRestaurant(order.RestaurantID)
	if err != nil {
		pageError(c, h.log, "confirmation", err)
		return
	}
	render(c, http.StatusOK, "confirmation.html", gin.H{
		"Title":      "Order confirmed",
		"Order":      order,
		"Restaurant": restaurant,
	})
}
