package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"nailstore-client/internal/api"
	"nailstore-client/internal/logger"

	"go.uber.org/zap"
)

// Service is the product API client.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// List fetches all products. The backend has been seen returning a bare
// array, a {"products": [...]} wrapper, and a single object; all three are
// normalized to a slice.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	var raw json.RawMessage
	if err := s.client.Get(ctx, "/products", &raw); err != nil {
		return nil, err
	}

	products, ok := normalizeList(raw)
	if !ok {
		logger.FromCtx(ctx).Warn("unrecognized product list shape, treating as empty",
			zap.Int("bytes", len(raw)),
		)
	}
	return products, nil
}

func normalizeList(raw json.RawMessage) ([]Product, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, true
	}

	if trimmed[0] == '[' {
		var products []Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, false
		}
		return products, true
	}

	var wrapper struct {
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err == nil && wrapper.Products != nil {
		return wrapper.Products, true
	}

	var single Product
	if err := json.Unmarshal(trimmed, &single); err == nil && single.ID != "" {
		return []Product{single}, true
	}

	return nil, false
}

func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := s.client.Get(ctx, "/products/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(ctx context.Context, p Product) (*Product, error) {
	var created Product
	if err := s.client.Post(ctx, "/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) Update(ctx context.Context, p Product) (*Product, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("update product: missing id")
	}
	var updated Product
	if err := s.client.Put(ctx, "/products/"+url.PathEscape(p.ID), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/products/"+url.PathEscape(id))
}

// UploadImage sends an image file and returns the URL the backend stored
// it under.
func (s *Service) UploadImage(ctx context.Context, filename string, content []byte) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := s.client.Upload(ctx, "/products/upload", "file", filename, content, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// UpdateSold bumps per-product sold counters after checkout. Callers treat
// a failure as best-effort: log it, never fail the order over it.
func (s *Service) UpdateSold(ctx context.Context, items []SoldUpdate) error {
	if len(items) == 0 {
		return nil
	}
	return s.client.Post(ctx, "/products/update-sold", map[string]any{"items": items}, nil)
}
