package service

import (
	"time"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptOptions is the store-specific text printed on every receipt.
type ReceiptOptions struct {
	StoreName string
	Title     string
	Footer    string
	Currency  string
}

// DefaultReceiptOptions matches the store's printed stationery.
func DefaultReceiptOptions() ReceiptOptions {
	return ReceiptOptions{
		StoreName: "BOUMIA",
		Title:     "Order Receipt",
		Footer:    "Thank you for shopping!",
		Currency:  "DH",
	}
}

const noDiscount = "-"

// FormatMoney renders an amount with two decimals and the currency suffix.
func FormatMoney(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatDiscount is the one discount display rule shared by every print
// channel: a fixed discount is money, a percent discount is its shortest
// decimal form followed by "%". A zero discount renders as "-".
func FormatDiscount(value decimal.Decimal, kind enum.DiscountKind, currency string) string {
	if value.IsZero() {
		return noDiscount
	}
	if kind == enum.DiscountPercent {
		return value.String() + "%"
	}
	return FormatMoney(value, currency)
}

func discountLabel(kind enum.DiscountKind) string {
	if kind == enum.DiscountPercent {
		return "Percentage"
	}
	return "Fixed"
}

func decodeKind(code enum.DiscountCode) enum.DiscountKind {
	kind, err := enum.DecodeDiscountCode(code)
	if err != nil {
		return enum.DiscountFixed
	}
	return kind
}

// BuildReceipt turns a persisted order into the channel-independent receipt
// document. Line totals and the subtotal are recomputed from price, quantity
// and discount; the order's own total is shown as the grand total.
func BuildReceipt(order entity.PersistedOrder, opts ReceiptOptions) *entity.Receipt {
	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: opts.StoreName,
			Title:     opts.Title,
			Footer:    opts.Footer,
		},
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Status:      order.Status.String(),
		CashierName: order.UserName,
		Timestamp:   order.DateCreated.Time,
		Currency:    opts.Currency,
		Lines:       make([]entity.ReceiptLine, 0, len(order.Items)),
		Subtotal:    decimal.Zero,
		GrandTotal:  order.Total,
	}

	if c := order.Customer; c != nil {
		r.Customer = entity.ReceiptCustomer{
			Name:  c.Name,
			Code:  c.Code,
			Phone: c.PhoneNumber,
			Email: c.Email,
		}
	}

	for _, it := range order.Items {
		kind := decodeKind(it.DiscountType)
		gross := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total := entity.LineTotal(it.Price, it.Quantity, it.Discount, kind)

		r.Lines = append(r.Lines, entity.ReceiptLine{
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			UnitPrice:       it.Price,
			Gross:           gross,
			HasDiscount:     it.Discount.IsPositive(),
			DiscountDisplay: FormatDiscount(it.Discount, kind, opts.Currency),
			DiscountAmount:  gross.Sub(total),
			LineTotal:       total,
			Comment:         it.Comment,
		})
		r.Subtotal = r.Subtotal.Add(total)
	}

	orderKind := decodeKind(order.DiscountType)
	r.ComputedTotal = entity.ApplyDiscount(r.Subtotal, order.Discount, orderKind)
	r.OrderDiscountDisplay = FormatDiscount(order.Discount, orderKind, opts.Currency)
	r.OrderDiscountAmount = r.Subtotal.Sub(r.ComputedTotal)
	if order.Discount.IsPositive() {
		r.HasOrderDiscount = true
		r.OrderDiscountLabel = discountLabel(orderKind)
	}
	r.Consistent = r.ComputedTotal.Round(2).Equal(order.Total.Round(2))

	return r
}

// ReceiptService builds receipts with the configured store options and
// reports totals that disagree with the backend.
type ReceiptService struct {
	opts ReceiptOptions
	log  *zap.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(opts ReceiptOptions, log *zap.Logger) *ReceiptService {
	return &ReceiptService{opts: opts, log: log.Named("receipt")}
}

// Options returns the store text used on receipts.
func (s *ReceiptService) Options() ReceiptOptions {
	return s.opts
}

// Build composes the receipt for an order.
func (s *ReceiptService) Build(order entity.PersistedOrder) *entity.Receipt {
	r := BuildReceipt(order, s.opts)
	if !r.Consistent {
		s.log.Warn("order total differs from recomputed total",
			zap.Int64("order_id", order.ID),
			zap.String("order_number", order.Number),
			zap.String("backend_total", order.Total.StringFixed(2)),
			zap.String("computed_total", r.ComputedTotal.StringFixed(2)),
		)
	}
	return r
}

// TestReceipt is the printer test page.
func (s *ReceiptService) TestReceipt(cashierName string) *entity.Receipt {
	price := decimal.NewFromInt(10)
	order := entity.PersistedOrder{
		Number:   "TEST-001",
		UserName: cashierName,
		Status:   enum.OrderStatusDone,
		Total:    decimal.NewFromInt(29),
		Items: []entity.PersistedOrderItem{
			{ProductName: "Test Item 1", Quantity: 1, Price: price},
			{ProductName: "Test Item 2", Quantity: 2, Price: price, Discount: decimal.NewFromInt(10), DiscountType: enum.DiscountCodePercent},
			{ProductName: "Test Item 3", Quantity: 1, Price: decimal.NewFromInt(1), Comment: "print check"},
		},
	}
	order.DateCreated = entity.Timestamp{Time: time.Now()}

	opts := s.opts
	opts.StoreName = "PRINTER TEST"
	return BuildReceipt(order, opts)
}
