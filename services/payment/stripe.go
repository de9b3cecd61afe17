// Package payment implements the hosted checkout client on Stripe.
package payment

import (
	"context"
	"fmt"

	"haven/config"
	"haven/services/booking"
	"haven/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// StripeCheckoutClient opens Stripe Checkout sessions in payment mode.
type StripeCheckoutClient struct {
	successURL string
	cancelURL  string
}

// NewStripeCheckoutClient configures the global Stripe key and returns a
// client using the redirect URLs from config.
func NewStripeCheckoutClient() *StripeCheckoutClient {
	stripe.Key = config.AppConfig.StripeKey
	return &StripeCheckoutClient{
		successURL: config.AppConfig.CheckoutSuccessURL,
		cancelURL:  config.AppConfig.CheckoutCancelURL,
	}
}

// CreateSession opens a hosted checkout page for the given line items.
// Amounts are already in centavos; currency is PHP throughout.
func (c *StripeCheckoutClient) CreateSession(ctx context.Context, in booking.CheckoutInput) (*booking.CheckoutSession, error) {
	if len(in.LineItems) == 0 {
		return nil, fmt.Errorf("checkout session requires at least one line item")
	}

	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("php"),
				UnitAmount: stripe.Int64(li.AmountCentavos),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(li.Name),
				},
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  items,
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
	}
	params.Context = ctx
	if in.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(in.CustomerEmail)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	utils.GetLogger().Debug("Stripe checkout session created",
		zap.String("sessionID", sess.ID),
		zap.Int64("amountTotal", sess.AmountTotal))
	return &booking.CheckoutSession{
		ID:          sess.ID,
		URL:         sess.URL,
		AmountTotal: sess.AmountTotal,
	}, nil
}
