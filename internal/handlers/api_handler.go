package handlers

import (
	"net/http"
	"time"

	"table_order/internal/auth"
	"table_order/internal/logger"
	"table_order/internal/models"
	"table_order/internal/services"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	orderService services.OrderService
	log          *logger.Logger
}

func NewAPIHandler(orderService services.OrderService, log *logger.Logger) *APIHandler {
	return &APIHandler{orderService: orderService, log: log}
}

type orderItemView struct {
	ID                  uint    `json:"id"`
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	Price               float64 `json:"price"`
	SpecialInstructions string  `json:"special_instructions"`
}

type orderView struct {
	ID          uint               `json:"id"`
	TableNumber string             `json:"table_number"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount float64            `json:"total_amount"`
	CreatedAt   string             `json:"created_at"`
	Items       []orderItemView    `json:"items"`
}

func newOrderView(o models.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemView{
			ID:                  item.ID,
			Name:                item.MenuItem.Name,
			Quantity:            item.Quantity,
			Price:               item.Price,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return orderView{
		ID:          o.ID,
		TableNumber: o.Table.TableNumber,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
		Items:       items,
	}
}

// ListOrders: GET /api/orders?status=<status|all>
func (h *APIHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.List(auth.PrincipalFrom(c), c.DefaultQuery("status", "all"))
	if err != nil {
		respondError(c, h.log, "list_orders", err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	c.JSON(http.StatusOK, views)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus: PUT /api/orders/:id/status
func (h *APIHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), auth.PrincipalFrom(c), id, req.Status)
	if err != nil {
		respondError(c, h.log, "update_order_status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": gin.H{
			"id":           order.ID,
			"status":       order.Status,
			"table_number": order.Table.TableNumber,
		},
	})
}
