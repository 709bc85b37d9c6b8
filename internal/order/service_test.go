package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nailstore-client/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "PAID", " shipped ", "completed", "cancelled"} {
		st, err := ParseStatus(valid)
		require.NoError(t, err, valid)
		assert.NotEmpty(t, st)
	}

	_, err := ParseStatus("refunded")
	assert.Error(t, err)
}

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)

		var got Order
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, int64(2599), got.TotalCents)
		assert.Equal(t, StatusPending, got.Status)

		// Backend echoes only the assigned id.
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "ord-42"})
	}))
	defer srv.Close()

	svc := NewService(api.NewClient(api.Options{BaseURL: srv.URL}))

	created, err := svc.Create(context.Background(), Order{
		Email:         "a@b.test",
		Items:         []Item{{ProductID: "p1", Name: "Gel Polish", UnitPriceCents: 2599, Quantity: 1}},
		TotalCents:    2599,
		PaymentMethod: "store",
		Pickup:        true,
		Status:        StatusPending,
	})
	require.NoError(t, err)

	assert.Equal(t, "ord-42", created.ID)
	// Local fields survive a sparse response.
	assert.Equal(t, StatusPending, created.Status)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "Gel Polish", created.Items[0].Name)
}

func TestListByUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/user/alice", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]Order{{ID: "ord-1", Status: StatusPaid}})
	}))
	defer srv.Close()

	svc := NewService(api.NewClient(api.Options{BaseURL: srv.URL}))

	orders, err := svc.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, StatusPaid, orders[0].Status)
}

func TestSendInvoice(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
	}))
	defer srv.Close()

	svc := NewService(api.NewClient(api.Options{BaseURL: srv.URL}))

	require.NoError(t, svc.SendInvoice(context.Background(), "ord-42"))
	assert.Equal(t, "/orders/ord-42/send-invoice", path)
}
