package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boumia-pos/internal/application/service"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/boumia-pos/pkg/apperror"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// Connect pairs the thermal printer on an explicit cashier action.
func (h *PrinterHandler) Connect(c *gin.Context) {
	status, err := h.printerService.Connect(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Printer connected", status)
}

// PrintReceipt prints the receipt of an order.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	receipt, err := h.printerService.PrintOrderReceipt(c.Request.Context(), session, req.OrderID, req.Pair)
	h.respond(c, receipt, err, "Order receipt printed successfully")
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	var req request.TestPrintRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	receipt, err := h.printerService.TestPrint(c.Request.Context(), session, req.Pair)
	h.respond(c, receipt, err, "Test page sent to printer")
}

// respond returns the receipt with a warning when only the device failed,
// so the cashier can still hand over an A4 copy.
func (h *PrinterHandler) respond(c *gin.Context, receipt *entity.Receipt, err error, message string) {
	if err != nil {
		if receipt != nil && apperror.IsKind(err, apperror.KindDevice) {
			response.Warning(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
			}, err)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, message, gin.H{"receipt": receipt})
}

// ListJobs returns the print journal, newest first.
func (h *PrinterHandler) ListJobs(c *gin.Context) {
	result, err := h.printerService.ListJobs(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Print jobs retrieved successfully", result)
}
