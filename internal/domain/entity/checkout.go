package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sangkips/boumia-pos/internal/domain/enum"
)

// CheckoutState is where a terminal is in building and submitting a sale.
type CheckoutState int

const (
	// StateBuilding: items may be in the cart, no customer chosen.
	StateBuilding CheckoutState = iota
	// StateCustomerSelected enables confirm and save-for-later.
	StateCustomerSelected
	// StateSubmitting: an order request is in flight and the cart is frozen.
	StateSubmitting
	// StateCompleted: the order persisted and the cart was cleared.
	StateCompleted
	// StateFailed is transient; the checkout falls back to StateCustomerSelected.
	StateFailed
)

var checkoutStateNames = [...]string{"BUILDING", "CUSTOMER_SELECTED", "SUBMITTING", "COMPLETED", "FAILED"}

func (s CheckoutState) String() string {
	if int(s) < 0 || int(s) >= len(checkoutStateNames) {
		return fmt.Sprintf("CheckoutState(%d)", int(s))
	}
	return checkoutStateNames[s]
}

func (s CheckoutState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *CheckoutState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range checkoutStateNames {
		if n == name {
			*s = CheckoutState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown checkout state %q", name)
}

var checkoutTransitions = map[CheckoutState][]CheckoutState{
	StateBuilding:         {StateCustomerSelected},
	StateCustomerSelected: {StateSubmitting, StateBuilding},
	StateSubmitting:       {StateCompleted, StateFailed},
	StateFailed:           {StateCustomerSelected},
	StateCompleted:        {StateBuilding, StateCustomerSelected},
}

// CanTransition reports whether the state machine allows s -> to.
func (s CheckoutState) CanTransition(to CheckoutState) bool {
	for _, next := range checkoutTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

var (
	ErrSubmissionInFlight = errors.New("an order submission is already in flight")
	ErrNoCustomer         = errors.New("a customer must be selected first")
	ErrEmptyCart          = errors.New("the cart is empty")
	ErrInvalidTransition  = errors.New("invalid checkout transition")
)

// Checkout is the cart plus everything needed to turn it into an order.
// It is not safe for concurrent use; TerminalSession serialises access.
type Checkout struct {
	cart      *Cart
	customer  *Customer
	state     CheckoutState
	lastOrder *PersistedOrder
	lastError string
}

// NewCheckout starts in StateBuilding with an empty cart.
func NewCheckout() *Checkout {
	return &Checkout{cart: NewCart(), state: StateBuilding}
}

func (co *Checkout) transition(to CheckoutState) error {
	if co.state == to {
		return nil
	}
	if !co.state.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, co.state, to)
	}
	co.state = to
	return nil
}

func (co *Checkout) State() CheckoutState       { return co.state }
func (co *Checkout) Cart() *Cart                { return co.cart }
func (co *Checkout) LastOrder() *PersistedOrder { return co.lastOrder }
func (co *Checkout) LastError() string          { return co.lastError }

// Customer returns a copy of the selected customer, if any.
func (co *Checkout) Customer() (Customer, bool) {
	if co.customer == nil {
		return Customer{}, false
	}
	return *co.customer, true
}

// CanSubmit is the interface-level guard for confirm and save-for-later.
func (co *Checkout) CanSubmit() bool {
	return co.state == StateCustomerSelected && !co.cart.IsEmpty()
}

// Mutate runs fn against the cart unless a submission is in flight. Touching
// the cart after a completed sale starts a new one.
func (co *Checkout) Mutate(fn func(*Cart) bool) (bool, error) {
	if co.state == StateSubmitting {
		return false, ErrSubmissionInFlight
	}
	changed := fn(co.cart)
	if changed && co.state == StateCompleted {
		co.lastError = ""
		if err := co.transition(StateBuilding); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// SelectCustomer binds a customer to the sale.
func (co *Checkout) SelectCustomer(c Customer) error {
	if co.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	co.customer = &c
	return co.transition(StateCustomerSelected)
}

// ClearCustomer unbinds the customer and returns to StateBuilding.
func (co *Checkout) ClearCustomer() error {
	if co.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	co.customer = nil
	if co.state == StateCustomerSelected || co.state == StateCompleted {
		return co.transition(StateBuilding)
	}
	return nil
}

// BeginSubmit freezes the cart and builds the payload. withComments=false
// blanks every item comment.
func (co *Checkout) BeginSubmit(userID int64, status enum.OrderStatus, withComments bool) (OrderSubmission, error) {
	switch {
	case co.state == StateSubmitting:
		return OrderSubmission{}, ErrSubmissionInFlight
	case co.customer == nil || co.state != StateCustomerSelected:
		return OrderSubmission{}, ErrNoCustomer
	case co.cart.IsEmpty():
		return OrderSubmission{}, ErrEmptyCart
	}

	sub := NewOrderSubmission(co.cart, co.customer.ID, userID, status)
	if !withComments {
		sub = sub.WithoutComments()
	}
	if err := co.transition(StateSubmitting); err != nil {
		return OrderSubmission{}, err
	}
	co.lastError = ""
	return sub, nil
}

// CompleteSubmit records the persisted order, clears the cart and releases
// the customer.
func (co *Checkout) CompleteSubmit(order PersistedOrder) error {
	if err := co.transition(StateCompleted); err != nil {
		return err
	}
	co.lastOrder = &order
	co.cart.Clear()
	co.customer = nil
	return nil
}

// FailSubmit keeps the cart and the customer so the cashier can retry.
func (co *Checkout) FailSubmit(cause error) error {
	if err := co.transition(StateFailed); err != nil {
		return err
	}
	if cause != nil {
		co.lastError = cause.Error()
	}
	return co.transition(StateCustomerSelected)
}

// Cancel discards every line and discount. The customer stays selected.
func (co *Checkout) Cancel() error {
	if co.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	co.cart.Clear()
	co.lastError = ""
	if co.state == StateCompleted {
		return co.transition(StateBuilding)
	}
	return nil
}
