package payment

import (
	"context"
	"errors"
	"strings"

	"nailstore-client/internal/api"
)

var (
	// ErrMissingSecret means the intent response lacked its client secret.
	// Shoppers never see this wording; UserMessage substitutes it.
	ErrMissingSecret = errors.New("payment intent response missing client secret")
)

// GenericFailureMessage replaces any failure wording that would leak
// internal detail.
const GenericFailureMessage = "Payment initialization failed. Please try again later."

// Card is an opaque reference to card details collected elsewhere (the
// processor's hosted input, a stored payment method). Raw card numbers
// never pass through this module.
type Card struct {
	Token string
}

type Confirmation struct {
	PaymentID string
	Status    string
}

// CardConfirmer is the external processor port: confirm a card payment
// against a previously created intent.
type CardConfirmer interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, card Card) (*Confirmation, error)
}

// Service talks to the backend's payment endpoints.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// CreateIntent asks the backend for a payment authorization over amountCents
// and returns the processor client secret needed to confirm it.
func (s *Service) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	var resp struct {
		ClientSecret string `json:"clientSecret"`
	}
	err := s.client.Post(ctx, "/payments/create-payment-intent",
		map[string]int64{"amount": amountCents}, &resp)
	if err != nil {
		return "", err
	}
	if resp.ClientSecret == "" {
		return "", ErrMissingSecret
	}
	return resp.ClientSecret, nil
}

// technicalMarkers flag error wording that describes our plumbing rather
// than the shopper's card. Matching messages are replaced wholesale.
var technicalMarkers = []string{
	"client secret",
	"client_secret",
	"payment intent",
	"payment_intent",
	"api key",
	"api_key",
	"no such",
	"internal server",
}

// UserMessage maps an error from the payment path to wording safe to show
// the shopper: processor messages pass through, internal/technical causes
// collapse to the generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrMissingSecret) {
		return GenericFailureMessage
	}

	msg := err.Error()
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}

	lower := strings.ToLower(msg)
	for _, marker := range technicalMarkers {
		if strings.Contains(lower, marker) {
			return GenericFailureMessage
		}
	}
	return msg
}
