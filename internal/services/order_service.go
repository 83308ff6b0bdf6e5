package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"table_order/internal/auth"
	"table_order/internal/logger"
	"table_order/internal/models"
	"table_order/internal/repository"

	"github.com/shopspring/decimal"
)

// Notifier announces order events to connected dashboards.
type Notifier interface {
	PublishEvent(ctx context.Context, event models.OrderEvent) error
}

type CartItem struct {
	ID                  uint    `json:"id"`
	Quantity            int     `json:"quantity"`
	Price               float64 `json:"price"`
	SpecialInstructions string  `json:"specialInstructions"`
}

type Cart struct {
	RestaurantID uint       `json:"restaurantId"`
	TableID      uint       `json:"tableId"`
	Total        float64    `json:"total"`
	Items        []CartItem `json:"items"`
}

type PlaceOrderRequest struct {
	PaymentID string `json:"paymentId"`
	Cart      *Cart  `json:"cart"`
}

type OrderService interface {
	Place(ctx context.Context, req PlaceOrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, p auth.Principal, id uint, status string) (*models.Order, error)
	List(p auth.Principal, statusFilter string) ([]models.Order, error)
	Get(id uint) (*models.Order, error)
}

type orderService struct {
	orderRepo      repository.OrderRepository
	menuRepo       repository.MenuItemRepository
	tableRepo      repository.TableRepository
	restaurantRepo repository.RestaurantRepository
	notifier       Notifier
	verifier       PaymentVerifier
	log            *logger.Logger
}

// NewOrderService wires the order pipeline. verifier may be nil, in which
// case payment references are accepted as given.
func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuItemRepository,
	tableRepo repository.TableRepository,
	restaurantRepo repository.RestaurantRepository,
	notifier Notifier,
	verifier PaymentVerifier,
	log *logger.Logger,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		menuRepo:       menuRepo,
		tableRepo:      tableRepo,
		restaurantRepo: restaurantRepo,
		notifier:       notifier,
		verifier:       verifier,
		log:            log,
	}
}

var totalTolerance = decimal.New(1, -2)

func (s *orderService) Place(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	paymentID := strings.TrimSpace(req.PaymentID)
	if paymentID == "" || req.Cart == nil {
		return nil, ErrInvalidOrder
	}
	cart := req.Cart
	if len(cart.Items) == 0 {
		return nil, ValidationError{Field: "items", Message: "Cart is empty"}
	}

	if _, err := s.restaurantRepo.GetByID(cart.RestaurantID); err != nil {
		return nil, fmt.Errorf("restaurant %d: %w", cart.RestaurantID, err)
	}
	table, err := s.tableRepo.GetByID(cart.TableID)
	if err != nil {
		return nil, fmt.Errorf("table %d: %w", cart.TableID, err)
	}
	if table.RestaurantID != cart.RestaurantID {
		return nil, ValidationError{Field: "tableId", Message: "Table does not belong to this restaurant"}
	}

	items, total, err := s.priceCart(cart)
	if err != nil {
		return nil, err
	}
	if decimal.NewFromFloat(cart.Total).Sub(total).Abs().GreaterThan(totalTolerance) {
		return nil, ValidationError{Field: "total", Message: "total mismatch"}
	}

	if s.verifier != nil {
		used, err := s.orderRepo.PaymentUsed(paymentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check payment: %w", err)
		}
		if used {
			return nil, ConflictError{Message: "Payment has already been used for an order"}
		}
		if err := s.verifier.Verify(ctx, paymentID, total); err != nil {
			return nil, err
		}
	}

	order := &models.Order{
		Status:        models.OrderPending,
		TotalAmount:   total.InexactFloat64(),
		PaymentStatus: models.PaymentCompleted,
		PaymentID:     paymentID,
		TableID:       table.ID,
		RestaurantID:  table.RestaurantID,
		Items:         items,
	}
	if err := s.orderRepo.CreateWithItems(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.Table = *table

	s.publish(ctx, models.EventNewOrder, order)
	return order, nil
}

// priceCart snapshots each line at the current menu price.
func (s *orderService) priceCart(cart *Cart) ([]models.OrderItem, decimal.Decimal, error) {
	ids := make([]uint, 0, len(cart.Items))
	for _, line := range cart.Items {
		if line.Quantity <= 0 {
			return nil, decimal.Zero, ValidationError{Field: "quantity", Message: "Quantity must be at least 1"}
		}
		ids = append(ids, line.ID)
	}

	menu, err := s.menuRepo.GetByIDs(cart.RestaurantID, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load menu items: %w", err)
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		menuItem, ok := menu[line.ID]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("menu item %d: %w", line.ID, ErrNotFound)
		}
		if !menuItem.IsAvailable {
			return nil, decimal.Zero, ValidationError{Field: "items", Message: menuItem.Name + " is not available"}
		}

		price := decimal.NewFromFloat(menuItem.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, models.OrderItem{
			Quantity:            line.Quantity,
			Price:               menuItem.Price,
			SpecialInstructions: strings.TrimSpace(line.SpecialInstructions),
			MenuItemID:          menuItem.ID,
		})
	}
	return items, total.Round(2), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, p auth.Principal, id uint, raw string) (*models.Order, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthenticated
	}
	status, err := models.ParseOrderStatus(raw)
	if err != nil {
		return nil, ValidationError{Field: "status", Message: "Invalid status"}
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(order.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status

	s.publish(ctx, models.EventOrderUpdate, order)
	return order, nil
}

// List returns the principal's orders, newest first. statusFilter is empty,
// "all" or an order status.
func (s *orderService) List(p auth.Principal, statusFilter string) ([]models.Order, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthenticated
	}

	var status *models.OrderStatus
	if statusFilter != "" && statusFilter != "all" {
		parsed, err := models.ParseOrderStatus(statusFilter)
		if err != nil {
			return nil, ValidationError{Field: "status", Message: "Invalid status filter"}
		}
		status = &parsed
	}
	return s.orderRepo.ListByRestaurant(p.RestaurantID, status)
}

func (s *orderService) Get(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// publish never fails the caller; dashboards reconcile through List.
func (s *orderService) publish(ctx context.Context, eventType models.EventType, order *models.Order) {
	event := models.OrderEvent{
		Type:         eventType,
		ID:           order.ID,
		Status:       order.Status,
		TableNumber:  order.Table.TableNumber,
		RestaurantID: order.RestaurantID,
	}
	if err := s.notifier.PublishEvent(ctx, event); err != nil {
		s.log.Error("publish_event", "Failed to publish order event", err,
			slog.String("event", string(eventType)),
			slog.Uint64("order_id", uint64(order.ID)),
		)
	}
}

// IsNotFound reports whether err means a referenced row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
