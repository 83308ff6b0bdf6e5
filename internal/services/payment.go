package services

import (
	"context"
	"errors"
	"fmt"

	"table_order/pkg/razorpay"

	"github.com/shopspring/decimal"
)

// PaymentVerifier confirms that a payment reference covers amount.
type PaymentVerifier interface {
	Verify(ctx context.Context, paymentID string, amount decimal.Decimal) error
}

type PaymentFetcher interface {
	FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error)
}

type processorVerifier struct {
	fetcher PaymentFetcher
}

func NewPaymentVerifier(fetcher PaymentFetcher) PaymentVerifier {
	return &processorVerifier{fetcher: fetcher}
}

var minorUnits = decimal.NewFromInt(100)

func (v *processorVerifier) Verify(ctx context.Context, paymentID string, amount decimal.Decimal) error {
	payment, err := v.fetcher.FetchPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, razorpay.ErrPaymentNotFound) {
			return ValidationError{Field: "paymentId", Message: "Unknown payment"}
		}
		return fmt.Errorf("failed to verify payment: %w", err)
	}
	if !payment.Settled() {
		return ValidationError{Field: "paymentId", Message: "Payment not completed"}
	}
	if payment.Amount != amount.Mul(minorUnits).Round(0).IntPart() {
		return ValidationError{Field: "paymentId", Message: "Payment amount does not match order total"}
	}
	return nil
}
