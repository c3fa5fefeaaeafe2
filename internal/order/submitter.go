package order

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/nikolayk812/storefront-cart/internal/cart"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
)

var (
	ErrCartNotSubmittable = errors.New("cart cannot be submitted")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
)

// SubmissionError is returned when the order service did not accept the
// order. Reason is the message reported by the transport or the service.
type SubmissionError struct {
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	return e.Reason
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

type Submitter struct {
	cart   *cart.Store
	client port.OrderClient
	log    *zap.Logger

	inFlight atomic.Bool
}

func NewSubmitter(store *cart.Store, client port.OrderClient, log *zap.Logger) *Submitter {
	return &Submitter{
		cart:   store,
		client: client,
		log:    log,
	}
}

// InFlight reports whether a submission is waiting for the order service.
func (s *Submitter) InFlight() bool {
	return s.inFlight.Load()
}

// Submit places an order for the current cart. Only one submission runs at a
// time, a call made while another is pending fails with ErrSubmissionInFlight.
// The cart is cleared only after the order service acknowledged the order.
// The clear covers the whole cart, including items added while the request
// was pending, which were not part of the order.
func (s *Submitter) Submit(ctx context.Context) (domain.OrderConfirmation, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.OrderConfirmation{}, ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	c := s.cart.Cart()
	if err := checkSubmittable(c); err != nil {
		s.log.Info("order refused", zap.Error(err))
		return domain.OrderConfirmation{}, err
	}

	items := domain.BuildOrderItems(c)

	conf, err := s.client.PlaceOrder(ctx, items)
	if err != nil {
		s.log.Warn("order failed", zap.Int("items", len(items)), zap.Error(err))
		return domain.OrderConfirmation{}, &SubmissionError{Reason: err.Error(), Err: err}
	}

	s.cart.ClearCart(ctx)
	s.log.Info("order placed", zap.String("order_id", conf.OrderID), zap.Int("items", len(items)))

	return conf, nil
}

func checkSubmittable(c domain.Cart) error {
	if c.IsEmpty() {
		return fmt.Errorf("%w: %w", ErrCartNotSubmittable, ErrEmptyCart)
	}

	for i, item := range c.Items {
		if missing := domain.MissingAttributes(item); len(missing) > 0 {
			return fmt.Errorf("%w: item %d (%s) misses %v: %w",
				ErrCartNotSubmittable, i, item.Name, missing, domain.ErrIncompleteSelection)
		}
	}

	return nil
}
