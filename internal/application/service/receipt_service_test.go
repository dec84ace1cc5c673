package service

import (
	"strings"
	"testing"
	"time"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleOrder() entity.PersistedOrder {
	return entity.PersistedOrder{
		ID:           41,
		Number:       "POS-41",
		UserName:     "Amina B",
		Discount:     d("10"),
		DiscountType: enum.DiscountCodePercent,
		Total:        d("94.5"),
		Status:       enum.OrderStatusDone,
		DateCreated:  entity.Timestamp{Time: time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)},
		Customer:     &entity.Customer{ID: 5, Code: "C-5", Name: "Hassan", PhoneNumber: "0600000000"},
		Items: []entity.PersistedOrderItem{
			{ProductName: "Mint tea", Quantity: 3, Price: d("20"), Discount: d("5"), DiscountType: enum.DiscountCodeFixed, Comment: "no sugar"},
			{ProductName: "Bread", Quantity: 2, Price: d("25"), Discount: d("10"), DiscountType: enum.DiscountCodePercent},
		},
	}
}

func TestBuildReceiptRecomputesTotals(t *testing.T) {
	r := BuildReceipt(sampleOrder(), DefaultReceiptOptions())

	require.Len(t, r.Lines, 2)
	// 3 x 20 - 5, the fixed discount is taken once per line
	assert.True(t, d("55").Equal(r.Lines[0].LineTotal))
	assert.True(t, d("5").Equal(r.Lines[0].DiscountAmount))
	assert.Equal(t, "5.00 DH", r.Lines[0].DiscountDisplay)
	assert.True(t, d("45").Equal(r.Lines[1].LineTotal))
	assert.Equal(t, "10%", r.Lines[1].DiscountDisplay)

	assert.True(t, d("100").Equal(r.Subtotal))
	assert.True(t, r.HasOrderDiscount)
	assert.Equal(t, "Percentage", r.OrderDiscountLabel)
	assert.Equal(t, "10%", r.OrderDiscountDisplay)
	assert.True(t, d("90").Equal(r.ComputedTotal))
	assert.True(t, d("94.5").Equal(r.GrandTotal))
	assert.False(t, r.Consistent)

	assert.Equal(t, "Hassan", r.Customer.Name)
	assert.Equal(t, "0600000000", r.Customer.Phone)
	assert.Equal(t, "BOUMIA", r.Header.StoreName)
}

func TestBuildReceiptConsistentTotal(t *testing.T) {
	order := sampleOrder()
	order.Total = d("90.001")

	r := BuildReceipt(order, DefaultReceiptOptions())

	assert.True(t, r.Consistent)
}

func TestBuildReceiptWithoutDiscountsOrCustomer(t *testing.T) {
	order := entity.PersistedOrder{
		Number: "POS-1",
		Total:  d("4"),
		Items:  []entity.PersistedOrderItem{{ProductName: "Water", Quantity: 2, Price: d("2")}},
	}

	r := BuildReceipt(order, DefaultReceiptOptions())

	assert.False(t, r.HasOrderDiscount)
	assert.Equal(t, "-", r.OrderDiscountDisplay)
	assert.False(t, r.Lines[0].HasDiscount)
	assert.Equal(t, "-", r.Lines[0].DiscountDisplay)
	assert.True(t, r.Customer.IsEmpty())
	assert.True(t, r.Consistent)
}

func TestFormatDiscount(t *testing.T) {
	tests := []struct {
		name  string
		value string
		kind  enum.DiscountKind
		want  string
	}{
		{"zero", "0", enum.DiscountPercent, "-"},
		{"fixed", "2.5", enum.DiscountFixed, "2.50 DH"},
		{"whole percent", "15", enum.DiscountPercent, "15%"},
		{"fractional percent", "12.5", enum.DiscountPercent, "12.5%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDiscount(d(tt.value), tt.kind, "DH"))
		})
	}
}

func TestFormatMoneyWithoutCurrency(t *testing.T) {
	assert.Equal(t, "-3.10", FormatMoney(d("-3.1"), ""))
}

func TestTestReceipt(t *testing.T) {
	svc := NewReceiptService(DefaultReceiptOptions(), zap.NewNop())

	r := svc.TestReceipt("Amina B")

	assert.Equal(t, "PRINTER TEST", r.Header.StoreName)
	assert.Equal(t, "TEST-001", r.OrderNumber)
	assert.Equal(t, "Amina B", r.CashierName)
	assert.Len(t, r.Lines, 3)
	assert.True(t, r.Consistent, "computed %s", r.ComputedTotal)
	// the store options on the service are untouched
	assert.Equal(t, "BOUMIA", svc.Options().StoreName)
}

func TestRenderPreview(t *testing.T) {
	r := BuildReceipt(sampleOrder(), DefaultReceiptOptions())

	html, err := RenderPreview(r)

	require.NoError(t, err)
	assert.Contains(t, html, "POS-41")
	assert.Contains(t, html, "Note: no sugar")
	assert.Contains(t, html, "Order Discount (Percentage): -10%")
	assert.Contains(t, html, "Total: 94.50 DH")
	assert.Contains(t, html, "2024-05-01 09:30")
}

func TestRenderA4(t *testing.T) {
	order := sampleOrder()
	order.Items[0].Comment = "<script>alert(1)</script>"
	r := BuildReceipt(order, DefaultReceiptOptions())

	html, err := RenderA4(r, A4Options{FontURL: "https://fonts.example/barcode.css", AutoPrint: true})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<link href="https://fonts.example/barcode.css" rel="stylesheet">`)
	assert.Contains(t, html, "*POS-41*")
	assert.Contains(t, html, "window.print()")
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderA4WithoutAutoPrint(t *testing.T) {
	r := BuildReceipt(sampleOrder(), DefaultReceiptOptions())

	html, err := RenderA4(r, A4Options{})

	require.NoError(t, err)
	assert.NotContains(t, html, "window.print()")
	assert.NotContains(t, html, "<link href=")
}
