package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
)

const receiptTimeLayout = "2006-01-02 15:04"

var receiptFuncs = template.FuncMap{
	"money": FormatMoney,
	"when": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format(receiptTimeLayout)
	},
	"orNA": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
}

const previewTemplate = `<div class="receipt-preview">
  <div class="receipt-header">
    <h2>{{.Header.StoreName}}</h2>
    <p>{{.Header.Title}}</p>
    <p>{{when .Timestamp}}</p>
  </div>
  <div class="receipt-info">
    <p><strong>Order #:</strong> {{.OrderNumber}}</p>
    <p><strong>Status:</strong> {{.Status}}</p>
    <p><strong>Cashier:</strong> {{.CashierName}}</p>
    {{- if not .Customer.IsEmpty}}
    <p><strong>Customer:</strong> {{orNA .Customer.Name}}</p>
    <p><strong>Code:</strong> {{orNA .Customer.Code}}</p>
    {{- if .Customer.Phone}}
    <p><strong>Phone:</strong> {{.Customer.Phone}}</p>
    {{- end}}
    {{- if .Customer.Email}}
    <p><strong>Email:</strong> {{.Customer.Email}}</p>
    {{- end}}
    {{- end}}
  </div>
  <table class="receipt-lines">
    <thead>
      <tr><th>Product</th><th>Qty</th><th>Price</th><th>Discount</th><th>Total</th></tr>
    </thead>
    <tbody>
      {{- range .Lines}}
      <tr>
        <td>{{.ProductName}}{{if .Comment}}<br><small>Note: {{.Comment}}</small>{{end}}</td>
        <td>{{.Quantity}}</td>
        <td>{{money .UnitPrice $.Currency}}</td>
        <td>{{.DiscountDisplay}}</td>
        <td>{{money .LineTotal $.Currency}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>
  <div class="receipt-summary">
    <p>Subtotal: {{money .Subtotal .Currency}}</p>
    {{- if .HasOrderDiscount}}
    <p>Order Discount ({{.OrderDiscountLabel}}): -{{.OrderDiscountDisplay}}</p>
    {{- end}}
    <p><strong>Total: {{money .GrandTotal .Currency}}</strong></p>
  </div>
</div>
`

const a4Template = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.R.Header.Title}} {{.R.OrderNumber}}</title>
  <style>
    @page { size: A4; margin: 15mm; }
    body { font-family: Arial, Helvetica, sans-serif; color: #1e293b; margin: 0; padding: 1rem; }
    .header { text-align: center; border-bottom: 2px solid #1e40af; padding-bottom: 1rem; margin-bottom: 1.5rem; }
    .company-name { font-size: 28px; font-weight: 700; color: #1e40af; margin-bottom: 0.5rem; }
    .document-title { font-size: 18px; color: #4b5563; margin-bottom: 1rem; }
    .order-info { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; margin-bottom: 1.5rem; }
    .info-card { background-color: #f8fafc; border: 1px solid #e2e8f0; border-radius: 8px; padding: 12px; }
    .info-card h3 { font-size: 14px; color: #64748b; margin: 0 0 6px; }
    .info-card p { font-size: 15px; font-weight: 500; margin: 0; }
    table { width: 100%; border-collapse: collapse; margin: 1.5rem 0; }
    thead { background-color: #1e40af; color: white; }
    th { padding: 12px 15px; text-align: left; font-weight: 600; }
    td { padding: 10px 15px; border-bottom: 1px solid #e2e8f0; vertical-align: top; }
    tr:nth-child(even) { background-color: #f8fafc; }
    .product-name { font-weight: 500; }
    .product-note { font-size: 12px; color: #64748b; font-style: italic; margin-top: 4px; }
    .text-right { text-align: right; }
    .discount { color: #dc2626; font-weight: 500; }
    .summary { background-color: #f8fafc; border: 1px solid #e2e8f0; border-radius: 8px; padding: 1.5rem; margin-top: 1.5rem; }
    .summary-row { display: flex; justify-content: space-between; margin-bottom: 8px; }
    .total-row { font-size: 18px; font-weight: 700; color: #1e40af; padding-top: 12px; border-top: 2px solid #e2e8f0; margin-top: 12px; }
    .footer { text-align: center; margin-top: 2rem; padding-top: 1rem; border-top: 1px solid #e2e8f0; color: #64748b; font-size: 13px; }
    .barcode { margin-top: 1rem; text-align: center; font-family: 'Libre Barcode 128', cursive; font-size: 36px; }
  </style>
  {{- if .FontURL}}
  <link href="{{.FontURL}}" rel="stylesheet">
  {{- end}}
</head>
<body>
  <div class="header">
    <div class="company-name">{{.R.Header.StoreName}}</div>
    <div class="document-title">{{.R.Header.Title}}</div>
    <div>{{when .R.Timestamp}}</div>
  </div>

  <div class="order-info">
    <div class="info-card">
      <h3>ORDER INFORMATION</h3>
      <p><strong>Order #:</strong> {{.R.OrderNumber}}</p>
      <p><strong>Status:</strong> {{.R.Status}}</p>
      <p><strong>Cashier:</strong> {{.R.CashierName}}</p>
    </div>
    <div class="info-card">
      <h3>CUSTOMER INFORMATION</h3>
      <p><strong>Name:</strong> {{orNA .R.Customer.Name}}</p>
      <p><strong>Code:</strong> {{orNA .R.Customer.Code}}</p>
      {{- if .R.Customer.Phone}}
      <p><strong>Phone:</strong> {{.R.Customer.Phone}}</p>
      {{- end}}
    </div>
  </div>

  <table>
    <thead>
      <tr>
        <th>Product</th>
        <th class="text-right">Qty</th>
        <th class="text-right">Unit Price</th>
        <th class="text-right">Discount</th>
        <th class="text-right">Total</th>
      </tr>
    </thead>
    <tbody>
      {{- range .R.Lines}}
      <tr>
        <td>
          <div class="product-name">{{.ProductName}}</div>
          {{- if .Comment}}
          <div class="product-note">Note: {{.Comment}}</div>
          {{- end}}
        </td>
        <td class="text-right">{{.Quantity}}</td>
        <td class="text-right">{{money .UnitPrice $.R.Currency}}</td>
        <td class="text-right discount">{{if .HasDiscount}}-{{end}}{{.DiscountDisplay}}</td>
        <td class="text-right">{{money .LineTotal $.R.Currency}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>

  <div class="summary">
    <div class="summary-row">
      <span>Subtotal:</span>
      <span>{{money .R.Subtotal .R.Currency}}</span>
    </div>
    {{- if .R.HasOrderDiscount}}
    <div class="summary-row discount">
      <span>Order Discount ({{.R.OrderDiscountLabel}}):</span>
      <span>-{{.R.OrderDiscountDisplay}}</span>
    </div>
    {{- end}}
    <div class="summary-row total-row">
      <span>TOTAL:</span>
      <span>{{money .R.GrandTotal .R.Currency}}</span>
    </div>
  </div>

  <div class="footer">
    {{- if .R.Header.Footer}}
    <div>{{.R.Header.Footer}}</div>
    {{- end}}
    <div>{{.R.Header.StoreName}}</div>
    <div class="barcode">*{{.R.OrderNumber}}*</div>
  </div>
  {{- if .AutoPrint}}

  <script>
    setTimeout(function () {
      window.print();
      setTimeout(function () { window.close(); }, 500);
    }, 200);
  </script>
  {{- end}}
</body>
</html>
`

var (
	previewTmpl = template.Must(template.New("preview").Funcs(receiptFuncs).Parse(previewTemplate))
	a4Tmpl      = template.Must(template.New("a4").Funcs(receiptFuncs).Parse(a4Template))
)

// A4Options controls the standalone A4 document.
type A4Options struct {
	// FontURL is the stylesheet for the barcode web font. Empty omits it.
	FontURL string
	// AutoPrint opens the print dialog on load and closes the window after.
	AutoPrint bool
}

// RenderPreview renders the on-screen receipt fragment.
func RenderPreview(r *entity.Receipt) (string, error) {
	var buf bytes.Buffer
	if err := previewTmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render receipt preview: %w", err)
	}
	return buf.String(), nil
}

// RenderA4 renders a self-contained A4 document for the browser's print
// dialog.
func RenderA4(r *entity.Receipt, opts A4Options) (string, error) {
	data := struct {
		R         *entity.Receipt
		FontURL   string
		AutoPrint bool
	}{r, opts.FontURL, opts.AutoPrint}

	var buf bytes.Buffer
	if err := a4Tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render A4 receipt: %w", err)
	}
	return buf.String(), nil
}
