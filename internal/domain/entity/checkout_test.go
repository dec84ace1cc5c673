package entity

import (
	"errors"
	"testing"

	"github.com/sangkips/boumia-pos/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addTea(co *Checkout) {
	_, _ = co.Mutate(func(c *Cart) bool {
		c.AddItem(Product{ID: 1, Name: "Tea", Price: dec("10")})
		return true
	})
}

func TestCheckoutStartsBuilding(t *testing.T) {
	co := NewCheckout()

	assert.Equal(t, StateBuilding, co.State())
	assert.False(t, co.CanSubmit())
}

func TestBeginSubmitRequiresCustomer(t *testing.T) {
	co := NewCheckout()
	addTea(co)

	_, err := co.BeginSubmit(1, enum.OrderStatusDone, true)

	assert.ErrorIs(t, err, ErrNoCustomer)
	assert.Equal(t, StateBuilding, co.State())
}

func TestBeginSubmitRequiresItems(t *testing.T) {
	co := NewCheckout()
	require.NoError(t, co.SelectCustomer(Customer{ID: 4}))

	_, err := co.BeginSubmit(1, enum.OrderStatusDone, true)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateCustomerSelected, co.State())
}

func TestSubmitFreezesCart(t *testing.T) {
	co := NewCheckout()
	addTea(co)
	require.NoError(t, co.SelectCustomer(Customer{ID: 4}))

	sub, err := co.BeginSubmit(1, enum.OrderStatusDone, true)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sub.CustomerID)
	assert.Equal(t, StateSubmitting, co.State())

	_, err = co.BeginSubmit(1, enum.OrderStatusDone, true)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	_, err = co.Mutate(func(c *Cart) bool { c.Clear(); return true })
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.ErrorIs(t, co.Cancel(), ErrSubmissionInFlight)
	assert.ErrorIs(t, co.SelectCustomer(Customer{ID: 5}), ErrSubmissionInFlight)
	assert.Equal(t, 1, co.Cart().Len())
}

func TestCompleteSubmitClearsCartAndCustomer(t *testing.T) {
	co := NewCheckout()
	addTea(co)
	require.NoError(t, co.SelectCustomer(Customer{ID: 4}))
	_, err := co.BeginSubmit(1, enum.OrderStatusDone, true)
	require.NoError(t, err)

	require.NoError(t, co.CompleteSubmit(PersistedOrder{ID: 77}))

	assert.Equal(t, StateCompleted, co.State())
	assert.True(t, co.Cart().IsEmpty())
	_, ok := co.Customer()
	assert.False(t, ok)
	assert.Equal(t, int64(77), co.LastOrder().ID)

	addTea(co)
	assert.Equal(t, StateBuilding, co.State())
}

func TestFailSubmitRetainsCartForRetry(t *testing.T) {
	co := NewCheckout()
	addTea(co)
	require.NoError(t, co.SelectCustomer(Customer{ID: 4}))
	_, err := co.BeginSubmit(1, enum.OrderStatusDone, true)
	require.NoError(t, err)

	require.NoError(t, co.FailSubmit(errors.New("backend down")))

	assert.Equal(t, StateCustomerSelected, co.State())
	assert.Equal(t, "backend down", co.LastError())
	assert.Equal(t, 1, co.Cart().Len())
	assert.True(t, co.CanSubmit())

	_, err = co.BeginSubmit(1, enum.OrderStatusDone, true)
	assert.NoError(t, err)
}

func TestSaveForLaterPayloadDropsComments(t *testing.T) {
	co := NewCheckout()
	addTea(co)
	_, _ = co.Mutate(func(c *Cart) bool { return c.Apply(1, SetComment{Comment: "hot"}) })
	require.NoError(t, co.SelectCustomer(Customer{ID: 4}))

	sub, err := co.BeginSubmit(1, enum.OrderStatusPending, false)

	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, sub.Status)
	assert.Equal(t, "", sub.Items[0].Comment)
	it, _ := co.Cart().Item(1)
	assert.Equal(t, "hot", it.Comment)
}

func TestCancelKeepsCustomer(t *testing.T) {
	co := NewCheckout()
	addTea(co)
	require.NoError(t, co.SelectCustomer(Customer{ID: 4}))
	co.Cart().SetOrderDiscount(dec("3"), enum.DiscountFixed)

	require.NoError(t, co.Cancel())

	assert.True(t, co.Cart().IsEmpty())
	assert.True(t, co.Cart().GrandTotal().IsZero())
	assert.Equal(t, StateCustomerSelected, co.State())
	assert.False(t, co.CanSubmit())
}

func TestClearCustomerReturnsToBuilding(t *testing.T) {
	co := NewCheckout()
	require.NoError(t, co.SelectCustomer(Customer{ID: 4}))

	require.NoError(t, co.ClearCustomer())

	assert.Equal(t, StateBuilding, co.State())
}

func TestTransitionTable(t *testing.T) {
	assert.True(t, StateBuilding.CanTransition(StateCustomerSelected))
	assert.False(t, StateBuilding.CanTransition(StateSubmitting))
	assert.True(t, StateSubmitting.CanTransition(StateFailed))
	assert.False(t, StateSubmitting.CanTransition(StateBuilding))
	assert.True(t, StateFailed.CanTransition(StateCustomerSelected))
	assert.False(t, StateFailed.CanTransition(StateCompleted))
}
