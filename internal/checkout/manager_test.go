package checkout

import (
	"context"
	"testing"

	"shop-checkout/internal/cart"
	"shop-checkout/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	factory := func() *Orchestrator {
		provider := new(MockRefDataProvider)
		expectInit(provider)
		return New(Deps{
			RefData:      provider,
			Cart:         cart.NewStore(zerolog.Nop()),
			Orders:       new(MockOrderClient),
			Nav:          &RouteRecorder{},
			CatalogRoute: "/products",
			Logger:       zerolog.Nop(),
			Now:          testClock,
		})
	}
	return NewManager(factory, zerolog.Nop())
}

func TestManager_CreateAndGet(t *testing.T) {
	m := newTestManager()

	id, session := m.Create(context.Background())
	require.NotNil(t, session)
	assert.Equal(t, 1, m.Count())

	// Each session is initialised on creation.
	view := session.View()
	assert.NotEmpty(t, view.Months)
	assert.NotEmpty(t, view.Countries)

	got, err := m.Get(id)
	require.NoError(t, err)
	assert.Same(t, session, got)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	_, first := m.Create(ctx)
	_, second := m.Create(ctx)

	first.AddCartItem(model.CartItem{ProductID: "1", UnitPrice: 10, Quantity: 1})

	assert.Len(t, first.View().Items, 1)
	assert.Empty(t, second.View().Items)
}

func TestManager_GetUnknownSession(t *testing.T) {
	m := newTestManager()

	_, err := m.Get(uuid.New())
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager()

	id, _ := m.Create(context.Background())
	m.Delete(id)

	assert.Zero(t, m.Count())
	_, err := m.Get(id)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	// Deleting again is a no-op.
	m.Delete(id)
}
