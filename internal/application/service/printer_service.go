package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/domain/repository"
	"github.com/sangkips/boumia-pos/pkg/apperror"
	"github.com/sangkips/boumia-pos/pkg/metrics"
	"github.com/sangkips/boumia-pos/pkg/pagination"
	"github.com/sangkips/boumia-pos/pkg/printer"
	"go.uber.org/zap"
)

var printerStates = []string{
	printer.StateUnsupported.String(),
	printer.StateDisconnected.String(),
	printer.StateConnecting.String(),
	printer.StateConnected.String(),
}

// PrinterService renders receipts through the three print channels and
// journals every attempt.
type PrinterService struct {
	printer   printer.Printer
	orders    *OrderService
	receipts  *ReceiptService
	jobs      repository.PrintJobRepository
	charWidth int
	fontURL   string
	metrics   *metrics.Metrics
	log       *zap.Logger
}

// PrinterServiceConfig groups the rendering settings.
type PrinterServiceConfig struct {
	CharWidth      int
	BarcodeFontURL string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	orders *OrderService,
	receipts *ReceiptService,
	jobs repository.PrintJobRepository,
	cfg PrinterServiceConfig,
	m *metrics.Metrics,
	log *zap.Logger,
) *PrinterService {
	width := cfg.CharWidth
	if width <= 0 {
		width = printer.Width58mm
	}
	s := &PrinterService{
		printer:   p,
		orders:    orders,
		receipts:  receipts,
		jobs:      jobs,
		charWidth: width,
		fontURL:   cfg.BarcodeFontURL,
		metrics:   m,
		log:       log.Named("printer"),
	}
	s.publishState()
	return s
}

// GetStatus returns the thermal channel status.
func (s *PrinterService) GetStatus() printer.Status {
	return s.printer.Status()
}

func (s *PrinterService) publishState() {
	s.metrics.PrinterState(s.printer.Status().State.String(), printerStates...)
}

// Probe pairs at startup when a device is already attached.
func (s *PrinterService) Probe(ctx context.Context) bool {
	ok := s.printer.Probe(ctx)
	s.publishState()
	st := s.printer.Status()
	s.log.Info("printer probe",
		zap.Bool("connected", ok),
		zap.String("state", st.State.String()),
		zap.String("transport", st.Transport),
		zap.String("target", st.Target),
	)
	return ok
}

// Connect pairs with the thermal printer on an explicit user request.
func (s *PrinterService) Connect(ctx context.Context) (printer.Status, error) {
	err := s.printer.Connect(ctx)
	s.publishState()
	if err != nil {
		s.log.Warn("printer pairing failed", zap.Error(err))
		return s.printer.Status(), deviceError(err)
	}
	return s.printer.Status(), nil
}

// deviceError maps channel failures onto the cashier-facing taxonomy.
func deviceError(err error) error {
	switch {
	case errors.Is(err, printer.ErrUnsupported):
		return apperror.NewUnsupportedError("Thermal printing is not supported on this terminal")
	case errors.Is(err, printer.ErrBusy):
		return apperror.NewConflictError("Printer is busy")
	case errors.Is(err, printer.ErrNotConnected):
		return apperror.NewPairingRequiredError("No printer paired", err)
	case errors.Is(err, printer.ErrConnectionLost):
		return apperror.NewDeviceError("Printer connection lost, pair it again", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperror.NewDeviceError("Printing was interrupted", err)
	}
	return apperror.NewDeviceError("Printer error", err)
}

// PrintOrderReceipt prints an order on the thermal printer. With pair set
// a disconnected channel is paired first and the same job is then printed;
// without it a disconnected channel answers with a pairing-required error so
// the terminal can pair and resend the request.
// The receipt is returned even when printing fails; the order itself is
// never touched.
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, session *entity.TerminalSession, orderID int64, pair bool) (*entity.Receipt, error) {
	order, err := s.orders.GetOrder(ctx, session, orderID)
	if err != nil {
		return nil, err
	}
	receipt := s.receipts.Build(*order)
	return receipt, s.printThermal(ctx, session, receipt, entity.PrintChannelThermal, pair)
}

// TestPrint sends the test page.
func (s *PrinterService) TestPrint(ctx context.Context, session *entity.TerminalSession, pair bool) (*entity.Receipt, error) {
	receipt := s.receipts.TestReceipt(session.Cashier.DisplayName())
	return receipt, s.printThermal(ctx, session, receipt, entity.PrintChannelTest, pair)
}

func (s *PrinterService) printThermal(ctx context.Context, session *entity.TerminalSession, r *entity.Receipt, channel entity.PrintChannel, pair bool) error {
	if pair && s.printer.Status().State == printer.StateDisconnected {
		if err := s.printer.Connect(ctx); err != nil {
			s.publishState()
			s.journal(ctx, session, r, channel, 0, err)
			return deviceError(err)
		}
		s.publishState()
	}

	data := FormatReceipt(r, s.charWidth)
	n, err := s.printer.Print(ctx, data)
	s.publishState()
	s.journal(ctx, session, r, channel, n, err)
	if err != nil {
		s.log.Warn("thermal print failed",
			zap.String("order_number", r.OrderNumber),
			zap.Int("bytes_written", n),
			zap.Error(err),
		)
		return deviceError(err)
	}
	return nil
}

// Preview renders the on-screen receipt for an order.
func (s *PrinterService) Preview(ctx context.Context, session *entity.TerminalSession, orderID int64) (string, *entity.Receipt, error) {
	order, err := s.orders.GetOrder(ctx, session, orderID)
	if err != nil {
		return "", nil, err
	}
	receipt := s.receipts.Build(*order)
	html, err := RenderPreview(receipt)
	s.journal(ctx, session, receipt, entity.PrintChannelPreview, len(html), err)
	if err != nil {
		return "", nil, err
	}
	return html, receipt, nil
}

// A4 renders the standalone document for the browser print dialog.
func (s *PrinterService) A4(ctx context.Context, session *entity.TerminalSession, orderID int64, autoPrint bool) (string, error) {
	order, err := s.orders.GetOrder(ctx, session, orderID)
	if err != nil {
		return "", err
	}
	receipt := s.receipts.Build(*order)
	html, err := RenderA4(receipt, A4Options{FontURL: s.fontURL, AutoPrint: autoPrint})
	s.journal(ctx, session, receipt, entity.PrintChannelA4, len(html), err)
	return html, err
}

// ListJobs returns the print journal, newest first.
func (s *PrinterService) ListJobs(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.PrintJob], error) {
	params.Validate()
	jobs, total, err := s.jobs.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(jobs, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// journal records one print attempt. A journal failure is logged and never
// fails the print.
func (s *PrinterService) journal(ctx context.Context, session *entity.TerminalSession, r *entity.Receipt, channel entity.PrintChannel, n int, printErr error) {
	job := &entity.PrintJob{
		OrderID:      r.OrderID,
		OrderNumber:  r.OrderNumber,
		Channel:      channel,
		Status:       entity.PrintJobPrinted,
		BytesWritten: n,
	}
	if session != nil {
		job.CashierID = session.Cashier.ID
	}
	if printErr != nil {
		job.Status = entity.PrintJobFailed
		job.Error = printErr.Error()
	}

	s.metrics.PrintAttempted(string(channel), string(job.Status))
	if err := s.jobs.Create(ctx, job); err != nil {
		s.log.Error("failed to journal print job",
			zap.String("channel", string(channel)),
			zap.Int64("order_id", r.OrderID),
			zap.Error(err),
		)
	}
}

// FormatReceipt encodes a receipt as ESC/POS bytes for a printer with the
// given character width.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		Separator('-').
		SetAlign(printer.AlignLeft)

	// Order info
	doc.KeyValue("Order:", r.OrderNumber)
	if !r.Timestamp.IsZero() {
		doc.KeyValue("Date:", r.Timestamp.Local().Format(receiptTimeLayout))
	}
	doc.KeyValue("Cashier:", r.CashierName).
		Separator('-')

	if !r.Customer.IsEmpty() {
		name := r.Customer.Name
		if name == "" {
			name = "N/A"
		}
		doc.KeyValue("Customer:", name)
		if r.Customer.Code != "" {
			doc.KeyValue("Code:", r.Customer.Code)
		}
		if r.Customer.Phone != "" {
			doc.KeyValue("Phone:", r.Customer.Phone)
		}
		doc.Separator('-')
	}

	// Items
	doc.SetBold(true).Text("ITEMS:").SetBold(false)
	for _, line := range r.Lines {
		doc.Text(line.ProductName)
		qty := strconv.Itoa(line.Quantity) + " x " + FormatMoney(line.UnitPrice, r.Currency)
		if line.HasDiscount {
			qty += " (Disc: " + line.DiscountDisplay + ")"
		}
		doc.Text(qty).
			RightText("= " + FormatMoney(line.LineTotal, r.Currency))
		if line.Comment != "" {
			doc.Text("Note: " + line.Comment)
		}
		doc.Separator('-')
	}

	// Totals
	doc.KeyValue("Subtotal:", FormatMoney(r.Subtotal, r.Currency))
	if r.HasOrderDiscount {
		doc.KeyValue("Order Disc:", "-"+r.OrderDiscountDisplay)
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", FormatMoney(r.GrandTotal, r.Currency)).
		SetBold(false)

	// Footer
	if r.Header.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			LineFeed().
			Text(r.Header.Footer).
			SetAlign(printer.AlignLeft)
	}

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}
