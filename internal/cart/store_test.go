package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/storefront-cart/internal/cart"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type mockRepository struct {
	m       sync.Mutex
	items   []domain.CartItem
	loadErr error
	saveErr error
	saves   int
}

func (m *mockRepository) Load(context.Context) ([]domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items, nil
}

func (m *mockRepository) Save(_ context.Context, items []domain.CartItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = append([]domain.CartItem(nil), items...)
	return nil
}

func (m *mockRepository) saved() ([]domain.CartItem, int) {
	m.m.Lock()
	defer m.m.Unlock()
	return m.items, m.saves
}

func newProduct(price string, attrs ...domain.Attribute) domain.Product {
	return domain.Product{
		ID:      gofakeit.UUID(),
		Name:    gofakeit.ProductName(),
		InStock: true,
		Gallery: []string{gofakeit.URL()},
		Prices: []domain.Money{{
			Amount:   decimal.RequireFromString(price),
			Currency: domain.Currency{Label: "USD", Symbol: "$"},
		}},
		Attributes: attrs,
	}
}

func sizeAttr() domain.Attribute {
	return domain.Attribute{
		ID:   "size",
		Name: "Size",
		Type: "text",
		Items: []domain.AttributeOption{
			{ID: "s", Value: "S", DisplayValue: "Small"},
			{ID: "m", Value: "M", DisplayValue: "Medium"},
			{ID: "l", Value: "L", DisplayValue: "Large"},
		},
	}
}

func newStore(t *testing.T, repo *mockRepository) *cart.Store {
	t.Helper()
	if repo.loadErr == nil && repo.items == nil {
		repo.loadErr = port.ErrSnapshotNotFound
	}
	s := cart.Open(t.Context(), repo, zaptest.NewLogger(t))
	repo.loadErr = nil
	return s
}

func TestStoreScenario(t *testing.T) {
	repo := &mockRepository{}
	s := newStore(t, repo)
	ctx := t.Context()

	productA := newProduct("10.00", sizeAttr())
	sel := domain.Selection{"Size": "M"}

	_, err := s.AddToCart(ctx, productA, sel)
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalItemCount())
	assert.Equal(t, "10.00", s.TotalPrice().Formatted())

	c, err := s.AddToCart(ctx, productA, sel)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, "20.00", s.TotalPrice().Formatted())

	c, err = s.UpdateQuantity(ctx, 0, 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, s.TotalItemCount())
	assert.Equal(t, "0.00", s.TotalPrice().Formatted())

	saved, saves := repo.saved()
	assert.Empty(t, saved)
	assert.Equal(t, 3, saves)
}

func TestStoreAddIncompleteSelection(t *testing.T) {
	repo := &mockRepository{}
	s := newStore(t, repo)

	c, err := s.AddToCart(t.Context(), newProduct("5.00", sizeAttr()), domain.Selection{})
	require.ErrorIs(t, err, domain.ErrIncompleteSelection)
	assert.True(t, c.IsEmpty())

	_, saves := repo.saved()
	assert.Zero(t, saves, "a rejected add must not write")
}

func TestStoreQuickAdd(t *testing.T) {
	s := newStore(t, &mockRepository{})

	c, err := s.QuickAdd(t.Context(), newProduct("5.00", sizeAttr()))
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, domain.Selection{"Size": "S"}, c.Items[0].Selected)
}

func TestStoreRemoveAndIndexErrors(t *testing.T) {
	s := newStore(t, &mockRepository{})
	ctx := t.Context()

	a, b := newProduct("1.00"), newProduct("2.00")
	_, err := s.AddToCart(ctx, a, nil)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, b, nil)
	require.NoError(t, err)

	_, err = s.RemoveFromCart(ctx, 2)
	require.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	_, err = s.UpdateQuantity(ctx, -1, 3)
	require.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.Equal(t, 2, s.TotalItemCount())

	c, err := s.RemoveFromCart(ctx, 0)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, b.ID, c.Items[0].ProductID)
}

func TestStoreUpdateAttribute(t *testing.T) {
	repo := &mockRepository{}
	s := newStore(t, repo)
	ctx := t.Context()

	_, err := s.AddToCart(ctx, newProduct("1.00", sizeAttr()), domain.Selection{"Size": "S"})
	require.NoError(t, err)
	_, err = s.UpdateQuantity(ctx, 0, 3)
	require.NoError(t, err)

	before := s.Cart()

	after := s.UpdateAttribute(ctx, 0, "Size", "XL")
	assert.Empty(t, cmp.Diff(before, after))

	after = s.UpdateAttribute(ctx, 0, "Colour", "M")
	assert.Empty(t, cmp.Diff(before, after))

	after = s.UpdateAttribute(ctx, 0, "Size", "L")
	assert.Equal(t, domain.Selection{"Size": "L"}, after.Items[0].Selected)
	assert.Equal(t, 3, after.Items[0].Quantity)

	saved, _ := repo.saved()
	assert.Equal(t, domain.Selection{"Size": "L"}, saved[0].Selected)
}

func TestStoreModalIsNotPersisted(t *testing.T) {
	repo := &mockRepository{}
	s := newStore(t, repo)

	c := s.SetModalOpen(true)
	assert.True(t, c.ModalOpen)
	assert.True(t, s.Cart().ModalOpen)

	_, saves := repo.saved()
	assert.Zero(t, saves)

	c = s.ClearCart(t.Context())
	assert.True(t, c.ModalOpen)
}

func TestStoreCartReturnsCopy(t *testing.T) {
	s := newStore(t, &mockRepository{})

	_, err := s.AddToCart(t.Context(), newProduct("1.00", sizeAttr()), domain.Selection{"Size": "S"})
	require.NoError(t, err)

	c := s.Cart()
	c.Items[0].Quantity = 50
	c.Items[0].Selected["Size"] = "L"

	fresh := s.Cart()
	assert.Equal(t, 1, fresh.Items[0].Quantity)
	assert.Equal(t, "S", fresh.Items[0].Selected["Size"])
}

func TestStoreSaveFailureKeepsState(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	repo := &mockRepository{}
	repo.loadErr = port.ErrSnapshotNotFound
	s := cart.Open(t.Context(), repo, zap.New(core))
	repo.loadErr = nil
	repo.saveErr = errors.New("disk full")

	c, err := s.AddToCart(t.Context(), newProduct("1.00"), nil)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 1, s.TotalItemCount())

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "cart not saved", logs.All()[0].Message)
}

func TestOpenRestoresSavedItems(t *testing.T) {
	items := []domain.CartItem{
		domain.NewCartItem(newProduct("2.50", sizeAttr()), domain.Selection{"Size": "L"}),
	}
	items[0].Quantity = 4

	s := cart.Open(t.Context(), &mockRepository{items: items}, zaptest.NewLogger(t))

	assert.Empty(t, cmp.Diff(items, s.Cart().Items))
	assert.Equal(t, 4, s.TotalItemCount())
	assert.Equal(t, "10.00", s.TotalPrice().Formatted())
	assert.False(t, s.Cart().ModalOpen)
}

func TestOpenFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name     string
		loadErr  error
		wantWarn bool
	}{
		{name: "no snapshot", loadErr: port.ErrSnapshotNotFound},
		{name: "corrupt snapshot", loadErr: repository.ErrCorruptSnapshot, wantWarn: true},
		{name: "storage down", loadErr: errors.New("connection refused"), wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)

			s := cart.Open(t.Context(), &mockRepository{loadErr: tt.loadErr}, zap.New(core))

			assert.True(t, s.Cart().IsEmpty())
			assert.Equal(t, tt.wantWarn, logs.Len() == 1)
		})
	}
}

func TestStoreSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := t.Context()

	repo, err := repository.NewFileCart(dir, "cart")
	require.NoError(t, err)

	s := cart.Open(ctx, repo, zaptest.NewLogger(t))
	_, err = s.AddToCart(ctx, newProduct("19.99", sizeAttr()), domain.Selection{"Size": "M"})
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, newProduct("5.00", sizeAttr()), domain.Selection{"Size": "S"})
	require.NoError(t, err)
	_, err = s.UpdateQuantity(ctx, 1, 3)
	require.NoError(t, err)
	s.SetModalOpen(true)

	want := s.Cart().Items

	restarted := cart.Open(ctx, repo, zaptest.NewLogger(t))

	got := restarted.Cart()
	assert.Empty(t, cmp.Diff(want, got.Items, cmpopts.EquateEmpty()))
	assert.False(t, got.ModalOpen)
	assert.Equal(t, "34.99", restarted.TotalPrice().Formatted())
}

func TestStoreSavesWithCancelledContext(t *testing.T) {
	dir := t.TempDir()

	repo, err := repository.NewFileCart(dir, "cart")
	require.NoError(t, err)

	s := cart.Open(t.Context(), repo, zaptest.NewLogger(t))
	_, err = s.AddToCart(t.Context(), newProduct("12.50", sizeAttr()), domain.Selection{"Size": "L"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	c := s.ClearCart(ctx)
	assert.True(t, c.IsEmpty())

	restarted := cart.Open(t.Context(), repo, zaptest.NewLogger(t))
	assert.True(t, restarted.Cart().IsEmpty())
}
