package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
)

// Store owns the cart state. Every change goes through domain.Reduce and
// every change to the items is written to the repository before the call
// returns. The modal flag is never written.
type Store struct {
	mu    sync.Mutex
	state domain.Cart

	repo port.CartRepository
	log  *zap.Logger
}

// Open rehydrates the cart from repo. A missing or unreadable snapshot
// results in an empty cart.
func Open(ctx context.Context, repo port.CartRepository, log *zap.Logger) *Store {
	s := &Store{
		repo: repo,
		log:  log,
	}

	items, err := repo.Load(ctx)
	switch {
	case errors.Is(err, port.ErrSnapshotNotFound):
		log.Debug("no saved cart, starting empty")
	case err != nil:
		log.Warn("saved cart is unusable, starting empty", zap.Error(err))
	default:
		s.state, _ = domain.Reduce(s.state, domain.Replace{Items: items})
		log.Debug("cart restored", zap.Int("items", len(items)))
	}

	return s
}

func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// AddToCart refuses products with an incomplete selection, returning
// domain.ErrIncompleteSelection and leaving the cart as it was.
func (s *Store) AddToCart(ctx context.Context, p domain.Product, sel domain.Selection) (domain.Cart, error) {
	return s.apply(ctx, domain.AddItem{Product: p, Selection: sel})
}

// QuickAdd adds p with the first option of every attribute selected.
func (s *Store) QuickAdd(ctx context.Context, p domain.Product) (domain.Cart, error) {
	return s.AddToCart(ctx, p, domain.DefaultSelection(p))
}

func (s *Store) RemoveFromCart(ctx context.Context, index int) (domain.Cart, error) {
	return s.apply(ctx, domain.RemoveItem{Index: index})
}

func (s *Store) UpdateQuantity(ctx context.Context, index, quantity int) (domain.Cart, error) {
	return s.apply(ctx, domain.SetQuantity{Index: index, Quantity: quantity})
}

// UpdateAttribute silently ignores names or values the item does not define.
func (s *Store) UpdateAttribute(ctx context.Context, index int, name, value string) domain.Cart {
	c, _ := s.apply(ctx, domain.SetAttribute{Index: index, Name: name, Value: value})
	return c
}

func (s *Store) ClearCart(ctx context.Context) domain.Cart {
	c, _ := s.apply(ctx, domain.Clear{})
	return c
}

func (s *Store) SetModalOpen(open bool) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state, _ = domain.Reduce(s.state, domain.SetModalOpen{Open: open})
	return s.state.Clone()
}

func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.TotalItemCount(s.state)
}

func (s *Store) TotalPrice() domain.Total {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.TotalPrice(s.state)
}

func (s *Store) Submittable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.CartIsSubmittable(s.state)
}

func (s *Store) apply(ctx context.Context, cmd domain.Command) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := domain.Reduce(s.state, cmd)
	if err != nil {
		s.log.Info("cart command rejected", zap.String("command", commandName(cmd)), zap.Error(err))
		return s.state.Clone(), err
	}
	s.state = next

	s.persist(ctx)

	return s.state.Clone(), nil
}

// persist writes the items. The write is not cut short by cancellation of
// ctx: once the in-memory state changed, storage has to follow it. A failed
// write keeps the new in-memory state, the previous snapshot stays on storage
// until the next successful write.
func (s *Store) persist(ctx context.Context) {
	if err := s.repo.Save(context.WithoutCancel(ctx), s.state.Items); err != nil {
		s.log.Error("cart not saved", zap.Int("items", len(s.state.Items)), zap.Error(err))
	}
}

func commandName(cmd domain.Command) string {
	switch cmd.(type) {
	case domain.AddItem:
		return "add"
	case domain.RemoveItem:
		return "remove"
	case domain.SetQuantity:
		return "set_quantity"
	case domain.SetAttribute:
		return "set_attribute"
	case domain.Clear:
		return "clear"
	default:
		return "unknown"
	}
}
