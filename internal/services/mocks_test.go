package services

import (
	"context"

	"table_order/internal/models"
	"table_order/pkg/razorpay"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) PublishEvent(ctx context.Context, event models.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, paymentID string, amount decimal.Decimal) error {
	args := m.Called(ctx, paymentID, amount)
	return args.Error(0)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error) {
	args := m.Called(ctx, paymentID)
	payment, _ := args.Get(0).(*razorpay.Payment)
	return payment, args.Error(1)
}
