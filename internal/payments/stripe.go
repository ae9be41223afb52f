package payments

import (
	"fmt"
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// StripeService bridges order checkout to Stripe payment intents. The
// client confirms the intent in the browser with the returned secret; the
// backend only verifies the final status.
type StripeService struct {
	enabled bool
}

func NewStripeService(secretKey string) *StripeService {
	if secretKey == "" {
		return &StripeService{}
	}
	stripe.Key = secretKey
	return &StripeService{enabled: true}
}

func (s *StripeService) Enabled() bool {
	return s.enabled
}

// CreateIntent opens a payment intent for the order total. Amounts are
// converted to the smallest currency unit.
func (s *StripeService) CreateIntent(orderID int, amount float64, email string) (*stripe.PaymentIntent, error) {
	if !s.enabled {
		return nil, fmt.Errorf("stripe is not configured")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		ReceiptEmail: stripe.String(email),
	}
	params.AddMetadata("order_id", strconv.Itoa(orderID))

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent, nil
}

// VerifyIntent fetches the intent and reports whether it succeeded and is
// bound to the given order.
func (s *StripeService) VerifyIntent(paymentIntentID string, orderID int) (bool, error) {
	if !s.enabled {
		return false, fmt.Errorf("stripe is not configured")
	}

	intent, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return false, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	if intent.Metadata["order_id"] != strconv.Itoa(orderID) {
		return false, fmt.Errorf("payment intent does not belong to order %d", orderID)
	}
	return intent.Status == stripe.PaymentIntentStatusSucceeded, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
