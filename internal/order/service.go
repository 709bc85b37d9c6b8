package order

import (
	"context"
	"net/url"
)

// apiClient is the slice of the base REST client this package needs.
type apiClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
}

// Service is the order API client.
type Service struct {
	client apiClient
}

func NewService(client apiClient) *Service {
	return &Service{client: client}
}

// Create submits a new order record. The submitted order comes back
// enriched with the backend-assigned fields; some backends echo only the
// id, so the local copy stays authoritative for everything else.
func (s *Service) Create(ctx context.Context, o Order) (*Order, error) {
	var created Order
	if err := s.client.Post(ctx, "/orders", o, &created); err != nil {
		return nil, err
	}

	o.ID = created.ID
	if created.Status != "" {
		o.Status = created.Status
	}
	if !created.CreatedAt.IsZero() {
		o.CreatedAt = created.CreatedAt
	}
	return &o, nil
}

// List fetches every order; admin-only on the backend side.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := s.client.Get(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByUser fetches one user's order history.
func (s *Service) ListByUser(ctx context.Context, username string) ([]Order, error) {
	var orders []Order
	if err := s.client.Get(ctx, "/orders/user/"+url.PathEscape(username), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SendInvoice asks the backend to email the invoice for an order. Callers
// treat failures as best-effort.
func (s *Service) SendInvoice(ctx context.Context, orderID string) error {
	return s.client.Post(ctx, "/orders/"+url.PathEscape(orderID)+"/send-invoice", nil, nil)
}
