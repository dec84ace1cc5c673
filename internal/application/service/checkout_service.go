package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/domain/enum"
	"github.com/sangkips/boumia-pos/internal/domain/repository"
	"github.com/sangkips/boumia-pos/pkg/apperror"
	"github.com/sangkips/boumia-pos/pkg/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartLine is a line item with its computed total.
type CartLine struct {
	entity.LineItem
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartView is the checkout screen's state.
type CartView struct {
	State              entity.CheckoutState   `json:"state"`
	Items              []CartLine             `json:"items"`
	OrderDiscountValue decimal.Decimal        `json:"order_discount_value"`
	OrderDiscountKind  enum.DiscountKind      `json:"order_discount_kind"`
	Subtotal           decimal.Decimal        `json:"subtotal"`
	GrandTotal         decimal.Decimal        `json:"grand_total"`
	Customer           *entity.Customer       `json:"customer"`
	CanSubmit          bool                   `json:"can_submit"`
	LastError          string                 `json:"last_error,omitempty"`
	LastOrder          *entity.PersistedOrder `json:"last_order,omitempty"`
}

func newCartView(co *entity.Checkout) *CartView {
	cart := co.Cart()
	items := cart.Items()
	lines := make([]CartLine, len(items))
	for i, it := range items {
		lines[i] = CartLine{LineItem: it, LineTotal: it.Total()}
	}
	value, kind := cart.OrderDiscount()

	v := &CartView{
		State:              co.State(),
		Items:              lines,
		OrderDiscountValue: value,
		OrderDiscountKind:  kind,
		Subtotal:           cart.Subtotal(),
		GrandTotal:         cart.GrandTotal(),
		CanSubmit:          co.CanSubmit(),
		LastError:          co.LastError(),
		LastOrder:          co.LastOrder(),
	}
	if c, ok := co.Customer(); ok {
		v.Customer = &c
	}
	return v
}

// UpdateResult reports whether an item update changed the cart.
type UpdateResult struct {
	Cart    *CartView `json:"cart"`
	Changed bool      `json:"changed"`
}

// CheckoutService drives the cart and the order submission for a terminal
// session.
type CheckoutService struct {
	catalog repository.CatalogRepository
	orders  repository.OrderGateway
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	catalog repository.CatalogRepository,
	orders repository.OrderGateway,
	m *metrics.Metrics,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		catalog: catalog,
		orders:  orders,
		metrics: m,
		log:     log.Named("checkout"),
	}
}

// checkoutError maps checkout state machine errors onto HTTP-facing errors.
func checkoutError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrSubmissionInFlight):
		return apperror.NewConflictError("An order submission is already in progress")
	case errors.Is(err, entity.ErrNoCustomer):
		return apperror.NewValidationError("Select a customer first",
			apperror.FieldError{Field: "customer_id", Message: "a customer must be selected"})
	case errors.Is(err, entity.ErrEmptyCart):
		return apperror.NewValidationError("The cart is empty")
	case errors.Is(err, entity.ErrInvalidTransition):
		return apperror.NewConflictError(err.Error())
	}
	return err
}

// View returns the current cart.
func (s *CheckoutService) View(session *entity.TerminalSession) *CartView {
	var v *CartView
	_ = session.Do(func(co *entity.Checkout) error {
		v = newCartView(co)
		return nil
	})
	return v
}

func (s *CheckoutService) mutate(session *entity.TerminalSession, fn func(*entity.Cart) bool) (*CartView, bool, error) {
	var (
		v       *CartView
		changed bool
	)
	err := session.Do(func(co *entity.Checkout) error {
		var err error
		changed, err = co.Mutate(fn)
		if err != nil {
			return err
		}
		v = newCartView(co)
		return nil
	})
	return v, changed, checkoutError(err)
}

// AddItem fetches the product and adds one unit of it to the cart.
func (s *CheckoutService) AddItem(ctx context.Context, session *entity.TerminalSession, productID int64) (*CartView, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return s.addProduct(session, *product)
}

// AddByBarcode resolves a scanned barcode and adds the product.
func (s *CheckoutService) AddByBarcode(ctx context.Context, session *entity.TerminalSession, barcode string) (*CartView, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, apperror.NewValidationError("Barcode is required")
	}
	product, err := s.catalog.GetProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product with barcode " + barcode)
	}
	return s.addProduct(session, *product)
}

func (s *CheckoutService) addProduct(session *entity.TerminalSession, p entity.Product) (*CartView, error) {
	v, _, err := s.mutate(session, func(c *entity.Cart) bool {
		c.AddItem(p)
		return true
	})
	return v, err
}

// RemoveItem removes a product's line. Removing an absent product is not
// an error.
func (s *CheckoutService) RemoveItem(session *entity.TerminalSession, productID int64) (*CartView, error) {
	v, _, err := s.mutate(session, func(c *entity.Cart) bool {
		return c.RemoveItem(productID)
	})
	return v, err
}

// UpdateItem applies one cashier edit to a line. A value that does not
// parse leaves the line unchanged. Price edits are refused for products
// that do not allow them.
func (s *CheckoutService) UpdateItem(session *entity.TerminalSession, productID int64, op, value string) (*UpdateResult, error) {
	update, err := entity.ParseItemUpdate(op, value)
	switch {
	case errors.Is(err, entity.ErrUnknownUpdate):
		return nil, apperror.NewBadRequestError("Unknown item update " + op)
	case errors.Is(err, entity.ErrUnparseableValue):
		s.log.Debug("ignoring unparseable item update", zap.String("op", op), zap.String("value", value))
		return &UpdateResult{Cart: s.View(session)}, nil
	case err != nil:
		return nil, err
	}

	var (
		v       *CartView
		changed bool
	)
	err = session.Do(func(co *entity.Checkout) error {
		line, ok := co.Cart().Item(productID)
		if !ok {
			return apperror.NewNotFoundError("Cart item")
		}
		if _, isPrice := update.(entity.SetPrice); isPrice && !line.PriceEditable {
			return apperror.NewForbiddenError("The price of this product cannot be changed")
		}
		var err error
		changed, err = co.Mutate(func(c *entity.Cart) bool {
			return c.Apply(productID, update)
		})
		if err != nil {
			return err
		}
		v = newCartView(co)
		return nil
	})
	if err != nil {
		return nil, checkoutError(err)
	}
	return &UpdateResult{Cart: v, Changed: changed}, nil
}

// SetOrderDiscount sets the discount applied to the discounted subtotal.
func (s *CheckoutService) SetOrderDiscount(session *entity.TerminalSession, value decimal.Decimal, kind enum.DiscountKind) (*CartView, error) {
	if value.IsNegative() {
		return nil, apperror.NewValidationError("Discount cannot be negative",
			apperror.FieldError{Field: "value", Message: "must be zero or greater"})
	}
	if !kind.Valid() {
		return nil, apperror.NewValidationError("Unknown discount kind",
			apperror.FieldError{Field: "kind", Message: "must be FIXED or PERCENT"})
	}
	v, _, err := s.mutate(session, func(c *entity.Cart) bool {
		return c.SetOrderDiscount(value, kind)
	})
	return v, err
}

// SelectCustomer binds a backend customer to the sale.
func (s *CheckoutService) SelectCustomer(ctx context.Context, session *entity.TerminalSession, customerID int64) (*CartView, error) {
	customer, err := s.catalog.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	var v *CartView
	err = session.Do(func(co *entity.Checkout) error {
		if err := co.SelectCustomer(*customer); err != nil {
			return err
		}
		v = newCartView(co)
		return nil
	})
	return v, checkoutError(err)
}

// ClearCustomer unbinds the selected customer.
func (s *CheckoutService) ClearCustomer(session *entity.TerminalSession) (*CartView, error) {
	var v *CartView
	err := session.Do(func(co *entity.Checkout) error {
		if err := co.ClearCustomer(); err != nil {
			return err
		}
		v = newCartView(co)
		return nil
	})
	return v, checkoutError(err)
}

// Confirm submits the cart as a finished sale.
func (s *CheckoutService) Confirm(ctx context.Context, session *entity.TerminalSession, customerID *int64) (*entity.PersistedOrder, error) {
	return s.submit(ctx, session, customerID, enum.OrderStatusDone, true)
}

// SaveForLater submits the cart as a pending order. Item comments are not
// sent.
func (s *CheckoutService) SaveForLater(ctx context.Context, session *entity.TerminalSession, customerID *int64) (*entity.PersistedOrder, error) {
	return s.submit(ctx, session, customerID, enum.OrderStatusPending, false)
}

func (s *CheckoutService) submit(ctx context.Context, session *entity.TerminalSession, customerID *int64, status enum.OrderStatus, withComments bool) (*entity.PersistedOrder, error) {
	if customerID != nil && !s.hasCustomer(session, *customerID) {
		if _, err := s.SelectCustomer(ctx, session, *customerID); err != nil {
			return nil, err
		}
	}

	var sub entity.OrderSubmission
	err := session.Do(func(co *entity.Checkout) error {
		var err error
		sub, err = co.BeginSubmit(session.Cashier.ID, status, withComments)
		return err
	})
	if err != nil {
		return nil, checkoutError(err)
	}

	// The session lock is released while the request is in flight; the
	// Submitting state keeps the cart frozen. A submission runs to completion
	// even if the caller goes away, bounded only by the backend client
	// timeout; the backend token rides along on the context values.
	order, err := s.orders.Create(context.WithoutCancel(ctx), sub)
	if err != nil {
		_ = session.Do(func(co *entity.Checkout) error {
			return co.FailSubmit(err)
		})
		s.metrics.CheckoutSubmitted(string(status), "failure")
		s.log.Error("order submission failed",
			zap.String("session_id", session.ID.String()),
			zap.String("status", string(status)),
			zap.Int64("customer_id", sub.CustomerID),
			zap.Int("items", len(sub.Items)),
			zap.Error(err),
		)
		return nil, err
	}

	if err := session.Do(func(co *entity.Checkout) error {
		return co.CompleteSubmit(*order)
	}); err != nil {
		return nil, checkoutError(err)
	}

	s.metrics.CheckoutSubmitted(string(status), "success")
	s.log.Info("order submitted",
		zap.String("session_id", session.ID.String()),
		zap.Int64("order_id", order.ID),
		zap.String("order_number", order.Number),
		zap.String("status", string(status)),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

func (s *CheckoutService) hasCustomer(session *entity.TerminalSession, customerID int64) bool {
	var same bool
	_ = session.Do(func(co *entity.Checkout) error {
		c, ok := co.Customer()
		same = ok && c.ID == customerID
		return nil
	})
	return same
}

// Cancel discards the cart. The selected customer is kept.
func (s *CheckoutService) Cancel(session *entity.TerminalSession) (*CartView, error) {
	var v *CartView
	err := session.Do(func(co *entity.Checkout) error {
		if err := co.Cancel(); err != nil {
			return err
		}
		v = newCartView(co)
		return nil
	})
	return v, checkoutError(err)
}
