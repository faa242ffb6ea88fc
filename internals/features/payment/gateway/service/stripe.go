package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// Call at app bootstrap.
func InitStripe(secretKey string) {
	if secretKey == "" {
		log.Println("⚠️ Stripe secret key empty — payment endpoints will fail")
	}
	stripe.Key = secretKey
}

const CurrencyGBP = "gbp"

// Intent creation is capped; the UI maps a timeout to its own retry message.
const intentTimeout = 30 * time.Second

// intentContext gives provider calls their own deadline. The per-request
// HTTP guard is far shorter than intentTimeout and must not cut a Stripe
// call off mid-flight, so the parent's cancellation is dropped and only its
// values are kept.
func intentContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), intentTimeout)
}

var (
	ErrSetupTimeout          = errors.New("payment setup timed out")
	ErrMalformedClientSecret = errors.New("provider returned a malformed client secret")
)

// CreateIntent creates a provider-side payment intent for amountPence and
// returns its client secret. The metadata bag is the only linkage between
// Stripe's world and our rows, so it is attached verbatim.
func CreateIntent(ctx context.Context, amountPence int64, currency string, metadata map[string]string) (string, error) {
	if amountPence <= 0 {
		return "", errors.New("amount must be a positive number of pence")
	}
	if currency == "" {
		currency = CurrencyGBP
	}

	ctx, cancel := intentContext(ctx)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountPence),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrSetupTimeout
		}
		return "", err
	}

	if !ValidClientSecret(pi.ClientSecret) {
		log.Printf("[ERROR] Stripe returned malformed client secret for intent %s", pi.ID)
		return "", ErrMalformedClientSecret
	}
	return pi.ClientSecret, nil
}

// RetrieveIntent fetches the intent so the confirm path can check its status
// server-side instead of trusting the browser.
func RetrieveIntent(ctx context.Context, intentID string) (*stripe.PaymentIntent, error) {
	ctx, cancel := intentContext(ctx)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	return paymentintent.Get(intentID, params)
}

/* ===================== Client secret shape ===================== */

// ValidClientSecret checks the "pi_..._secret_..." shape before a secret is
// handed to the payment widget. Rejects forged or truncated values.
func ValidClientSecret(s string) bool {
	if !strings.HasPrefix(s, "pi_") {
		return false
	}
	rest := strings.TrimPrefix(s, "pi_")
	id, secret, found := strings.Cut(rest, "_secret_")
	if !found || id == "" || secret == "" {
		return false
	}
	return isAlnum(id) && isAlnum(secret)
}

// IntentIDFromClientSecret recovers the intent id from the
// payment_intent_client_secret query parameter on the redirect return leg.
func IntentIDFromClientSecret(s string) (string, bool) {
	if !ValidClientSecret(s) {
		return "", false
	}
	id, _, _ := strings.Cut(s, "_secret_")
	return id, true
}

func isAlnum(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
