package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"nailstore-client/internal/cart"
	"nailstore-client/internal/catalog"
	"nailstore-client/internal/localize"
	"nailstore-client/internal/logger"
	"nailstore-client/internal/order"
	"nailstore-client/internal/payment"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrSubmitInFlight = errors.New("a checkout is already in progress")
	ErrValidation     = errors.New("checkout form has validation errors")
	ErrEmptyCart      = errors.New("cart is empty")
)

// Submission steps that can fail the whole checkout.
const (
	StepIntent  = "create-payment-intent"
	StepConfirm = "confirm-card-payment"
)

// SubmitError is a required-step failure. The raw cause is kept for logs;
// UserMessage gives the wording safe to show the shopper.
type SubmitError struct {
	Step string
	Err  error
}

func (e *SubmitError) Error() string { return e.Step + ": " + e.Err.Error() }
func (e *SubmitError) Unwrap() error { return e.Err }

func (e *SubmitError) UserMessage() string {
	return payment.UserMessage(e.Err)
}

// OrderCreator is the slice of the order client the checkout needs.
type OrderCreator interface {
	Create(ctx context.Context, o order.Order) (*order.Order, error)
	SendInvoice(ctx context.Context, orderID string) error
}

// SoldUpdater bumps sold counters; always best-effort here.
type SoldUpdater interface {
	UpdateSold(ctx context.Context, items []catalog.SoldUpdate) error
}

// IntentCreator obtains a payment authorization from the backend.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
}

// Result is what the confirmation view is built from.
type Result struct {
	// OrderID is empty when order creation itself failed and the shopper
	// gets the generic confirmation (Fallback true).
	OrderID  string
	Status   order.Status
	Fallback bool
	// SideErrs collects best-effort failures (sold counters, invoice
	// email). They are logged and never fail the submission; callers may
	// inspect them.
	SideErrs []error
}

// Service runs the checkout submission protocol: a strict linear chain of
// required steps with explicitly best-effort side calls, ending in a
// cleared cart.
type Service struct {
	cart      *cart.Store
	orders    OrderCreator
	products  SoldUpdater
	payments  IntentCreator
	confirmer payment.CardConfirmer
	lang      localize.Language

	// processing mirrors the disabled submit button: one submission at a
	// time per service.
	processing atomic.Bool
}

func NewService(
	cartStore *cart.Store,
	orders OrderCreator,
	products SoldUpdater,
	payments IntentCreator,
	confirmer payment.CardConfirmer,
	lang localize.Language,
) *Service {
	return &Service{
		cart:      cartStore,
		orders:    orders,
		products:  products,
		payments:  payments,
		confirmer: confirmer,
		lang:      lang,
	}
}

// Submit validates the draft and runs the submission protocol for its
// payment method. A failed required step returns a *SubmitError and leaves
// the cart untouched; per-field problems are readable via draft.Errors().
func (s *Service) Submit(ctx context.Context, draft *Draft, card payment.Card) (*Result, error) {
	if !s.processing.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.processing.Store(false)

	if errs := draft.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w (%d fields)", ErrValidation, len(errs))
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	o := s.buildOrder(draft, lines)

	if draft.Payment() == PaymentStore {
		return s.submitStore(ctx, o), nil
	}
	return s.submitCard(ctx, o, card)
}

// buildOrder snapshots the cart into an order: names resolved to the
// shopper's language, prices converted to integer cents.
func (s *Service) buildOrder(draft *Draft, lines []cart.Line) order.Order {
	cents := decimal.NewFromInt(100)

	items := make([]order.Item, 0, len(lines))
	var total int64
	for _, l := range lines {
		unit := l.UnitPrice.Mul(cents).Round(0).IntPart()
		items = append(items, order.Item{
			ProductID:      l.ProductID,
			Name:           l.Name.Resolve(s.lang),
			UnitPriceCents: unit,
			Quantity:       l.Quantity,
		})
		total += unit * int64(l.Quantity)
	}

	o := order.Order{
		Username:      s.cart.Username(),
		Email:         draft.Form.Email,
		Items:         items,
		TotalCents:    total,
		PaymentMethod: string(draft.Payment()),
	}
	if draft.Delivery() == DeliveryShip {
		o.ShippingAddress = &order.Address{
			FirstName: draft.Form.FirstName,
			LastName:  draft.Form.LastName,
			Address:   draft.Form.Address,
			City:      draft.Form.City,
			Zip:       draft.Form.Zip,
		}
	} else {
		o.Pickup = true
	}
	return o
}

// submitStore is the pay-at-store path: the pending order is created before
// any payment exists, by design. Order-creation failure downgrades the
// confirmation to the generic fallback but the chain still runs to the end.
func (s *Service) submitStore(ctx context.Context, o order.Order) *Result {
	log := logger.FromCtx(ctx)

	o.Status = order.StatusPending
	res := &Result{Status: order.StatusPending}

	created, err := s.orders.Create(ctx, o)
	if err != nil {
		log.Error("pay-at-store order creation failed", zap.Error(err))
		res.Fallback = true
	} else {
		res.OrderID = created.ID
		log.Info("pending order created", zap.String("order_id", created.ID))
	}

	s.updateSoldCounters(ctx, res, o.Items)
	s.cart.ClearCart()
	return res
}

// submitCard is the card path: authorize, confirm, then create the paid
// order. A failure before the order exists aborts the submission with the
// cart intact.
func (s *Service) submitCard(ctx context.Context, o order.Order, card payment.Card) (*Result, error) {
	log := logger.FromCtx(ctx)

	secret, err := s.payments.CreateIntent(ctx, o.TotalCents)
	if err != nil {
		log.Error("payment intent creation failed", zap.Error(err))
		return nil, &SubmitError{Step: StepIntent, Err: err}
	}

	conf, err := s.confirmer.ConfirmCardPayment(ctx, secret, card)
	if err != nil {
		log.Warn("card confirmation failed", zap.Error(err))
		return nil, &SubmitError{Step: StepConfirm, Err: err}
	}
	log.Info("card payment confirmed", zap.String("payment_id", conf.PaymentID))

	o.Status = order.StatusPaid
	res := &Result{Status: order.StatusPaid}

	created, err := s.orders.Create(ctx, o)
	if err != nil {
		// The payment already went through; clearing the cart prevents an
		// accidental second charge, the confirmation falls back to generic.
		log.Error("order creation failed after successful payment", zap.Error(err))
		res.Fallback = true
	} else {
		res.OrderID = created.ID
		log.Info("paid order created", zap.String("order_id", created.ID))
	}

	s.updateSoldCounters(ctx, res, o.Items)
	if res.OrderID != "" {
		if err := s.orders.SendInvoice(ctx, res.OrderID); err != nil {
			log.Warn("invoice email request failed", zap.Error(err))
			res.SideErrs = append(res.SideErrs, fmt.Errorf("send invoice: %w", err))
		}
	}

	s.cart.ClearCart()
	return res, nil
}

func (s *Service) updateSoldCounters(ctx context.Context, res *Result, items []order.Item) {
	if s.products == nil {
		return
	}

	updates := make([]catalog.SoldUpdate, 0, len(items))
	for _, it := range items {
		updates = append(updates, catalog.SoldUpdate{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	if err := s.products.UpdateSold(ctx, updates); err != nil {
		logger.FromCtx(ctx).Warn("sold counter update failed", zap.Error(err))
		res.SideErrs = append(res.SideErrs, fmt.Errorf("update sold counters: %w", err))
	}
}
