package cart

import (
	"encoding/json"
	"errors"
	"sync"

	"nailstore-client/internal/event"
	"nailstore-client/internal/localize"
	"nailstore-client/internal/logger"
	"nailstore-client/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// cartKeyPrefix + username (or "guest") is the durable storage key.
	cartKeyPrefix = "nail_cart_"
	guestUser     = "guest"
)

var ErrInvalidQuantity = errors.New("invalid cart quantity")

// Store holds the current identity's cart in memory and mirrors every
// mutation to durable storage. Carts are keyed per username; switching
// identity loads the new cart and discards the old in-memory lines, never
// merging the two.
type Store struct {
	mu       sync.Mutex
	storage  storage.Store
	username string
	lines    []Line
}

// NewStore loads the guest cart and, when a bus is given, follows identity
// changes.
func NewStore(st storage.Store, bus *event.Bus) *Store {
	s := &Store{storage: st}
	s.mu.Lock()
	s.loadLocked()
	s.mu.Unlock()

	if bus != nil {
		bus.SubscribeAuthChange(func(ev event.AuthChange) {
			if ev.LoggedIn {
				s.SwitchUser(ev.Username)
			} else {
				s.SwitchUser("")
			}
		})
	}
	return s
}

// AddToCart inserts a new line or increments an existing one by qty.
func (s *Store) AddToCart(line Line, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == line.ProductID {
			s.lines[i].Quantity += qty
			s.persistLocked()
			return nil
		}
	}

	line.Quantity = qty
	s.lines = append(s.lines, line)
	s.persistLocked()
	return nil
}

// RemoveFromCart deletes the line entirely; unknown ids are a no-op.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(s.lines) {
		return
	}
	s.lines = kept
	s.persistLocked()
}

// UpdateQuantity adjusts a line's quantity by delta, clamped to a minimum
// of 1. It never removes the line; that is RemoveFromCart's job.
func (s *Store) UpdateQuantity(productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		q := s.lines[i].Quantity + delta
		if q < 1 {
			q = 1
		}
		s.lines[i].Quantity = q
		s.persistLocked()
		return
	}
}

// ClearCart empties the collection, e.g. after an order is placed.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persistLocked()
}

// SwitchUser reloads the cart for a new identity. An empty username means
// guest. The previous identity's in-memory lines are discarded; its durable
// cart stays untouched under its own key.
func (s *Store) SwitchUser(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == s.username {
		return
	}
	s.username = username
	s.loadLocked()
}

// Username returns the identity the cart is keyed by ("" for guest).
func (s *Store) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// Lines returns a copy of the cart contents.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// Subtotal is the sum of all line totals in USD.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// SubtotalCents is the subtotal in integer minor units, the form every
// wire amount uses.
func (s *Store) SubtotalCents() int64 {
	return s.Subtotal().Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FormatSubtotal renders the subtotal for display.
func (s *Store) FormatSubtotal(lang localize.Language) string {
	return localize.FormatPrice(s.Subtotal(), lang)
}

func (s *Store) key() string {
	user := s.username
	if user == "" {
		user = guestUser
	}
	return cartKeyPrefix + user
}

func (s *Store) loadLocked() {
	s.lines = nil

	data, ok, err := s.storage.Get(s.key())
	if err != nil {
		logger.L().Warn("failed loading cart", zap.String("key", s.key()), zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.L().Warn("discarding unreadable cart", zap.String("key", s.key()), zap.Error(err))
		return
	}
	s.lines = lines
}

func (s *Store) persistLocked() {
	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		logger.L().Warn("failed encoding cart", zap.Error(err))
		return
	}
	if err := s.storage.Set(s.key(), data); err != nil {
		logger.L().Warn("failed persisting cart", zap.String("key", s.key()), zap.Error(err))
	}
}
