package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"table_order/internal/auth"
	"table_order/internal/logger"
	"table_order/internal/models"
	"table_order/internal/repository"
	"table_order/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderEnv struct {
	db       *gorm.DB
	svc      OrderService
	notifier *mockNotifier
	logs     *bytes.Buffer
	f        testutil.Fixture
	other    testutil.Fixture
}

func newOrderEnv(t *testing.T, verifier PaymentVerifier) *orderEnv {
	t.Helper()
	db := testutil.NewDB(t)
	env := &orderEnv{
		db:       db,
		notifier: &mockNotifier{},
		logs:     &bytes.Buffer{},
		f:        testutil.Seed(t, db, "r1@example.com", "5", 225),
		other:    testutil.Seed(t, db, "r2@example.com", "5", 99),
	}
	env.svc = NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewMenuItemRepository(db),
		repository.NewTableRepository(db),
		repository.NewRestaurantRepository(db),
		env.notifier,
		verifier,
		logger.New("test", env.logs),
	)
	t.Cleanup(func() { env.notifier.AssertExpectations(t) })
	return env
}

func (e *orderEnv) cart(total float64, items ...CartItem) *Cart {
	return &Cart{RestaurantID: e.f.Restaurant.ID, TableID: e.f.Table.ID, Total: total, Items: items}
}

func (e *orderEnv) counts(t *testing.T) (orders, items int64) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, e.db.Model(&models.OrderItem{}).Count(&items).Error)
	return orders, items
}

func isEvent(eventType models.EventType, rid uint, table string) interface{} {
	return mock.MatchedBy(func(e models.OrderEvent) bool {
		return e.Type == eventType && e.RestaurantID == rid && e.TableNumber == table
	})
}

func TestOrderService_PlaceAndList(t *testing.T) {
	env := newOrderEnv(t, nil)
	ctx := context.Background()
	env.notifier.On("PublishEvent", mock.Anything, isEvent(models.EventNewOrder, env.f.Restaurant.ID, "5")).Return(nil).Once()

	order, err := env.svc.Place(ctx, PlaceOrderRequest{
		PaymentID: "pay_abc",
		Cart:      env.cart(450.0, CartItem{ID: env.f.Item.ID, Quantity: 2, Price: 225.0, SpecialInstructions: "extra spicy"}),
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentCompleted, order.PaymentStatus)

	orders, err := env.svc.List(principalOf(env.f), "all")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 450.0, orders[0].TotalAmount)
	assert.Equal(t, "pay_abc", orders[0].PaymentID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Paneer Tikka", orders[0].Items[0].MenuItem.Name)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
	assert.Equal(t, 225.0, orders[0].Items[0].Price)
	assert.Equal(t, "extra spicy", orders[0].Items[0].SpecialInstructions)

	otherOrders, err := env.svc.List(principalOf(env.other), "")
	require.NoError(t, err)
	assert.Empty(t, otherOrders)
}

func TestOrderService_PlaceUsesMenuPrice(t *testing.T) {
	env := newOrderEnv(t, nil)
	env.notifier.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Once()

	// the client price is ignored, the declared total is within a cent
	order, err := env.svc.Place(context.Background(), PlaceOrderRequest{
		PaymentID: "pay_abc",
		Cart:      env.cart(450.01, CartItem{ID: env.f.Item.ID, Quantity: 2, Price: 1}),
	})
	require.NoError(t, err)
	assert.Equal(t, 450.0, order.TotalAmount)
	assert.Equal(t, 225.0, order.Items[0].Price)
}

func TestOrderService_PlaceRejects(t *testing.T) {
	env := newOrderEnv(t, nil)

	unavailable := &models.MenuItem{Name: "Kulfi", Price: 80, IsAvailable: false, RestaurantID: env.f.Restaurant.ID}
	require.NoError(t, env.db.Create(unavailable).Error)
	item := CartItem{ID: env.f.Item.ID, Quantity: 2, Price: 225}

	tests := []struct {
		name    string
		req     PlaceOrderRequest
		wantErr error
		invalid bool
	}{
		{name: "missing_payment_id", req: PlaceOrderRequest{Cart: env.cart(450, item)}, wantErr: ErrInvalidOrder},
		{name: "missing_cart", req: PlaceOrderRequest{PaymentID: "pay_abc"}, wantErr: ErrInvalidOrder},
		{name: "empty_items", req: PlaceOrderRequest{PaymentID: "pay_abc", Cart: env.cart(0)}, invalid: true},
		{name: "zero_quantity", req: PlaceOrderRequest{PaymentID: "pay_abc", Cart: env.cart(0, CartItem{ID: env.f.Item.ID})}, invalid: true},
		{
			name:    "unknown_restaurant",
			req:     PlaceOrderRequest{PaymentID: "pay_abc", Cart: &Cart{RestaurantID: 999, TableID: env.f.Table.ID, Total: 450, Items: []CartItem{item}}},
			wantErr: ErrNotFound,
		},
		{
			name:    "unknown_table",
			req:     PlaceOrderRequest{PaymentID: "pay_abc", Cart: &Cart{RestaurantID: env.f.Restaurant.ID, TableID: 999, Total: 450, Items: []CartItem{item}}},
			wantErr: ErrNotFound,
		},
		{
			name:    "foreign_table",
			req:     PlaceOrderRequest{PaymentID: "pay_abc", Cart: &Cart{RestaurantID: env.f.Restaurant.ID, TableID: env.other.Table.ID, Total: 450, Items: []CartItem{item}}},
			invalid: true,
		},
		{
			name:    "foreign_item",
			req:     PlaceOrderRequest{PaymentID: "pay_abc", Cart: env.cart(99, CartItem{ID: env.other.Item.ID, Quantity: 1, Price: 99})},
			wantErr: ErrNotFound,
		},
		{
			name:    "unavailable_item",
			req:     PlaceOrderRequest{PaymentID: "pay_abc", Cart: env.cart(80, CartItem{ID: unavailable.ID, Quantity: 1, Price: 80})},
			invalid: true,
		},
		{name: "total_mismatch", req: PlaceOrderRequest{PaymentID: "pay_abc", Cart: env.cart(10, item)}, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Place(context.Background(), tt.req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.invalid {
				assert.True(t, IsValidation(err), "got %v", err)
			}

			orders, items := env.counts(t)
			assert.Zero(t, orders)
			assert.Zero(t, items)
		})
	}
}

func TestOrderService_PlaceTotalMismatchMessage(t *testing.T) {
	env := newOrderEnv(t, nil)

	_, err := env.svc.Place(context.Background(), PlaceOrderRequest{
		PaymentID: "pay_abc",
		Cart:      env.cart(449.0, CartItem{ID: env.f.Item.ID, Quantity: 2, Price: 224.5}),
	})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "total mismatch", verr.Message)
}

func TestOrderService_PlaceSurvivesPublishFailure(t *testing.T) {
	env := newOrderEnv(t, nil)
	env.notifier.On("PublishEvent", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	order, err := env.svc.Place(context.Background(), PlaceOrderRequest{
		PaymentID: "pay_abc",
		Cart:      env.cart(225, CartItem{ID: env.f.Item.ID, Quantity: 1}),
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Contains(t, env.logs.String(), "publish_event")
	assert.Contains(t, env.logs.String(), "redis down")
}

func TestOrderService_PlaceVerifiesPayment(t *testing.T) {
	verifier := &mockVerifier{}
	env := newOrderEnv(t, verifier)
	ctx := context.Background()
	amount := mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(225)) })

	verifier.On("Verify", mock.Anything, "pay_bad", amount).Return(ValidationError{Field: "paymentId", Message: "Payment not completed"}).Once()
	_, err := env.svc.Place(ctx, PlaceOrderRequest{PaymentID: "pay_bad", Cart: env.cart(225, CartItem{ID: env.f.Item.ID, Quantity: 1})})
	assert.True(t, IsValidation(err))
	orders, _ := env.counts(t)
	assert.Zero(t, orders)

	verifier.On("Verify", mock.Anything, "pay_good", amount).Return(nil).Once()
	env.notifier.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Once()
	_, err = env.svc.Place(ctx, PlaceOrderRequest{PaymentID: "pay_good", Cart: env.cart(225, CartItem{ID: env.f.Item.ID, Quantity: 1})})
	require.NoError(t, err)

	// a settled payment pays for one order only
	_, err = env.svc.Place(ctx, PlaceOrderRequest{PaymentID: "pay_good", Cart: env.cart(225, CartItem{ID: env.f.Item.ID, Quantity: 1})})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Payment has already been used for an order", err.Error())
	orders, _ = env.counts(t)
	assert.Equal(t, int64(1), orders)

	verifier.AssertExpectations(t)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	env := newOrderEnv(t, nil)
	ctx := context.Background()
	order := &models.Order{
		Status: models.OrderPending, TotalAmount: 225, PaymentStatus: models.PaymentCompleted, PaymentID: "pay_abc",
		TableID: env.f.Table.ID, RestaurantID: env.f.Restaurant.ID,
		Items: []models.OrderItem{{Quantity: 1, Price: 225, MenuItemID: env.f.Item.ID}},
	}
	require.NoError(t, repository.NewOrderRepository(env.db).CreateWithItems(order))

	_, err := env.svc.UpdateStatus(ctx, auth.Principal{}, order.ID, "ready")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = env.svc.UpdateStatus(ctx, principalOf(env.f), order.ID, "eaten")
	assert.True(t, IsValidation(err))

	_, err = env.svc.UpdateStatus(ctx, principalOf(env.f), 999, "ready")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svc.UpdateStatus(ctx, principalOf(env.other), order.ID, "ready")
	assert.ErrorIs(t, err, ErrUnauthorized)

	stored, err := env.svc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, stored.Status, "rejected updates leave the order untouched")

	env.notifier.On("PublishEvent", mock.Anything, mock.MatchedBy(func(e models.OrderEvent) bool {
		return e.Type == models.EventOrderUpdate && e.ID == order.ID && e.Status == models.OrderReady && e.TableNumber == "5"
	})).Return(nil).Once()

	updated, err := env.svc.UpdateStatus(ctx, principalOf(env.f), order.ID, "ready")
	require.NoError(t, err)
	assert.Equal(t, models.OrderReady, updated.Status)
	assert.Equal(t, "5", updated.Table.TableNumber)

	ready, err := env.svc.List(principalOf(env.f), "ready")
	require.NoError(t, err)
	assert.Len(t, ready, 1)
	pending, err := env.svc.List(principalOf(env.f), "pending")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOrderService_ListRejects(t *testing.T) {
	env := newOrderEnv(t, nil)

	_, err := env.svc.List(auth.Principal{}, "all")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = env.svc.List(principalOf(env.f), "bogus")
	assert.True(t, IsValidation(err))
}
