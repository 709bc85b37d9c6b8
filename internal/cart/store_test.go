package cart

import (
	"testing"

	"nailstore-client/internal/event"
	"nailstore-client/internal/localize"
	"nailstore-client/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, price float64) Line {
	return Line{
		ProductID: id,
		Name:      localize.Plain("Product " + id),
		UnitPrice: decimal.NewFromFloat(price),
	}
}

func TestAddToCart(t *testing.T) {
	s := NewStore(storage.NewMemStore(), nil)

	require.NoError(t, s.AddToCart(line("p1", 10), 1))
	require.NoError(t, s.AddToCart(line("p2", 5), 2))
	// Adding an existing product increments its line, no duplicate lines.
	require.NoError(t, s.AddToCart(line("p1", 10), 3))

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, 2, lines[1].Quantity)
	assert.Equal(t, 6, s.TotalItems())

	assert.ErrorIs(t, s.AddToCart(line("p3", 1), 0), ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddToCart(line("p3", 1), -2), ErrInvalidQuantity)
}

func TestUpdateQuantityClampsAtOne(t *testing.T) {
	s := NewStore(storage.NewMemStore(), nil)
	require.NoError(t, s.AddToCart(line("p1", 10), 3))

	s.UpdateQuantity("p1", -1)
	assert.Equal(t, 2, s.TotalItems())

	// Decrementing past zero clamps to 1 and never removes the line.
	s.UpdateQuantity("p1", -10)
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	s.UpdateQuantity("p1", 5)
	assert.Equal(t, 6, s.TotalItems())

	// Unknown product is a no-op.
	s.UpdateQuantity("missing", 1)
	assert.Equal(t, 6, s.TotalItems())
}

func TestTotalItemsMatchesSumOfQuantities(t *testing.T) {
	s := NewStore(storage.NewMemStore(), nil)

	require.NoError(t, s.AddToCart(line("p1", 1), 2))
	require.NoError(t, s.AddToCart(line("p2", 1), 3))
	s.UpdateQuantity("p1", 4)
	s.UpdateQuantity("p2", -1)
	s.RemoveFromCart("p2")
	require.NoError(t, s.AddToCart(line("p3", 1), 1))

	sum := 0
	for _, l := range s.Lines() {
		assert.GreaterOrEqual(t, l.Quantity, 1)
		sum += l.Quantity
	}
	assert.Equal(t, sum, s.TotalItems())
}

func TestRemoveFromCart(t *testing.T) {
	s := NewStore(storage.NewMemStore(), nil)
	require.NoError(t, s.AddToCart(line("p1", 10), 1))
	require.NoError(t, s.AddToCart(line("p2", 5), 1))

	s.RemoveFromCart("p1")
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)

	s.RemoveFromCart("p1") // already gone
	assert.Len(t, s.Lines(), 1)
}

func TestSubtotal(t *testing.T) {
	s := NewStore(storage.NewMemStore(), nil)
	require.NoError(t, s.AddToCart(line("p1", 12.5), 2))
	require.NoError(t, s.AddToCart(line("p2", 0.99), 1))

	assert.True(t, s.Subtotal().Equal(decimal.NewFromFloat(25.99)))
	assert.Equal(t, int64(2599), s.SubtotalCents())
	assert.Equal(t, "$25.99", s.FormatSubtotal(localize.LangEN))
}

func TestClearCart(t *testing.T) {
	st := storage.NewMemStore()
	s := NewStore(st, nil)
	require.NoError(t, s.AddToCart(line("p1", 10), 2))

	s.ClearCart()
	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.TotalItems())

	// The empty state is persisted, not just in memory.
	data, ok, err := st.Get("nail_cart_guest")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(data))
}

func TestCartPersistsAcrossStores(t *testing.T) {
	st := storage.NewMemStore()

	s1 := NewStore(st, nil)
	require.NoError(t, s1.AddToCart(line("p1", 12.5), 2))

	// A fresh store over the same storage sees the same cart (reload).
	s2 := NewStore(st, nil)
	lines := s2.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromFloat(12.5)))
}

func TestSwitchUserLoadsDisjointCarts(t *testing.T) {
	st := storage.NewMemStore()
	s := NewStore(st, nil)

	// Guest fills a cart.
	require.NoError(t, s.AddToCart(line("p1", 10), 1))

	// Alice logs in: her cart is empty, guest lines do not bleed through.
	s.SwitchUser("alice")
	assert.Empty(t, s.Lines())

	require.NoError(t, s.AddToCart(line("p2", 5), 3))

	// Bob sees neither guest's nor alice's lines.
	s.SwitchUser("bob")
	assert.Empty(t, s.Lines())

	// Back to alice: her cart is intact, not merged with anyone's.
	s.SwitchUser("alice")
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)

	// And guest's cart survived too.
	s.SwitchUser("")
	lines = s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
}

func TestCartFollowsAuthChanges(t *testing.T) {
	st := storage.NewMemStore()
	bus := event.NewBus()
	s := NewStore(st, bus)

	require.NoError(t, s.AddToCart(line("p1", 10), 1))

	bus.PublishAuthChange(event.AuthChange{Username: "alice", LoggedIn: true})
	assert.Equal(t, "alice", s.Username())
	assert.Empty(t, s.Lines())

	require.NoError(t, s.AddToCart(line("p2", 5), 1))

	bus.PublishAuthChange(event.AuthChange{LoggedIn: false})
	assert.Equal(t, "", s.Username())
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
}
