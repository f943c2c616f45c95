package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

func product(id int, price string) catalog.Product {
	return catalog.Product{ID: id, Title: "item", Price: decimal.RequireFromString(price), Source: catalog.SourceCommerce}
}

func TestAddDecrementScenario(t *testing.T) {
	s := Initial()
	p := product(1, "100")

	s = Reduce(s, ItemAdded{Product: p})
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 1, s.Lines[0].Quantity)
	assert.True(t, s.Subtotal.Equal(decimal.NewFromInt(100)))

	s = Reduce(s, ItemAdded{Product: p})
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 2, s.Lines[0].Quantity)
	assert.True(t, s.Subtotal.Equal(decimal.NewFromInt(200)))

	s = Reduce(s, QuantityDecremented{ProductID: 1})
	assert.Equal(t, 1, s.Lines[0].Quantity)
	assert.True(t, s.Subtotal.Equal(decimal.NewFromInt(100)))

	s = Reduce(s, QuantityDecremented{ProductID: 1})
	assert.Empty(t, s.Lines)
	assert.True(t, s.Subtotal.IsZero())
}

func TestReduceNoOps(t *testing.T) {
	s := Reduce(Initial(), ItemAdded{Product: product(1, "9.99")})

	for name, a := range map[string]Action{
		"remove absent":    ItemRemoved{ProductID: 2},
		"increment absent": QuantityIncremented{ProductID: 2},
		"decrement absent": QuantityDecremented{ProductID: 2},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, s, Reduce(s, a))
		})
	}
}

func TestRemoveAndIncrement(t *testing.T) {
	s := Initial()
	s = Reduce(s, ItemAdded{Product: product(1, "10.10")})
	s = Reduce(s, ItemAdded{Product: product(2, "0.20")})
	s = Reduce(s, QuantityIncremented{ProductID: 2})
	assert.Equal(t, "10.5", s.Subtotal.String())

	s = Reduce(s, ItemRemoved{ProductID: 1})
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 2, s.Lines[0].ID)
	assert.Equal(t, "0.4", s.Subtotal.String())
}

func TestDecimalSubtotalDoesNotDrift(t *testing.T) {
	s := Initial()
	p := product(1, "0.1")
	for i := 0; i < 10; i++ {
		s = Reduce(s, ItemAdded{Product: p})
	}
	assert.Equal(t, "1", s.Subtotal.String())
}

func TestClearIsIdempotent(t *testing.T) {
	s := Reduce(Initial(), ItemAdded{Product: product(3, "5")})
	once := Reduce(s, Cleared{})
	twice := Reduce(once, Cleared{})

	assert.Empty(t, once.Lines)
	assert.True(t, once.Subtotal.IsZero())
	assert.Equal(t, once, twice)
}

func TestItemsOrderedKeepsLaterAdditions(t *testing.T) {
	s := Initial()
	s = Reduce(s, ItemAdded{Product: product(1, "10")})
	s = Reduce(s, ItemAdded{Product: product(1, "10")})
	s = Reduce(s, ItemAdded{Product: product(2, "5")})
	ordered := map[int]int{1: 2, 2: 1}

	// added after the order was quoted
	s = Reduce(s, ItemAdded{Product: product(1, "10")})
	s = Reduce(s, ItemAdded{Product: product(3, "1.5")})

	s = Reduce(s, ItemsOrdered{Quantities: ordered})
	require.Len(t, s.Lines, 2)
	assert.Equal(t, 1, s.Lines[0].ID)
	assert.Equal(t, 1, s.Lines[0].Quantity)
	assert.Equal(t, 3, s.Lines[1].ID)
	assert.Equal(t, "11.5", s.Subtotal.String())

	assert.Equal(t, s, Reduce(s, ItemsOrdered{}))
}

func TestReduceDoesNotAliasPreviousState(t *testing.T) {
	before := Reduce(Initial(), ItemAdded{Product: product(1, "1")})
	after := Reduce(before, QuantityIncremented{ProductID: 1})

	assert.Equal(t, 1, before.Lines[0].Quantity)
	assert.Equal(t, 2, after.Lines[0].Quantity)
}

func TestRemoteLifecycle(t *testing.T) {
	s := Reduce(Initial(), ItemAdded{Product: product(1, "1")})

	s = Reduce(s, RemoteStarted{RequestID: 5})
	assert.True(t, s.Loading)

	stale := RemoteSynced{RequestID: 4, CartID: 1}
	assert.True(t, Superseded(s, stale))
	assert.Equal(t, s, Reduce(s, stale))

	s = Reduce(s, RemoteSynced{RequestID: 5, CartID: 7, Lines: []Line{
		{Product: product(2, "3"), Quantity: 2},
		{Product: product(3, "4"), Quantity: 0},
		{Product: product(2, "3"), Quantity: 1},
	}})
	assert.False(t, s.Loading)
	assert.Equal(t, 7, s.RemoteCartID)
	require.Len(t, s.Lines, 1, "zero quantity dropped, duplicates merged")
	assert.Equal(t, 3, s.Lines[0].Quantity)
	assert.Equal(t, "9", s.Subtotal.String())

	s = Reduce(s, RemoteStarted{RequestID: 6})
	s = Reduce(s, RemoteFailed{RequestID: 6, Message: "Failed to update cart"})
	assert.False(t, s.Loading)
	assert.Equal(t, "Failed to update cart", s.Error)
	assert.Len(t, s.Lines, 1, "failure leaves lines alone")
}
