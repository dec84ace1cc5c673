package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boumia-pos/internal/application/service"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/response"
)

// OrderHandler serves persisted POS orders and their receipts
type OrderHandler struct {
	orderService   *service.OrderService
	receiptService *service.ReceiptService
	printerService *service.PrinterService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, receiptService *service.ReceiptService, printerService *service.PrinterService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		receiptService: receiptService,
		printerService: printerService,
	}
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	result, err := h.orderService.ListOrders(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Receipt returns the receipt document of an order
func (h *OrderHandler) Receipt(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), session, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved successfully", h.receiptService.Build(*order))
}

// Preview renders the on-screen receipt fragment
func (h *OrderHandler) Preview(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	html, _, err := h.printerService.Preview(c.Request.Context(), session, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, html)
}

// A4 renders the printable A4 document. It asks the browser to print and
// close itself unless autoprint=false.
func (h *OrderHandler) A4(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	autoPrint, err := strconv.ParseBool(c.DefaultQuery("autoprint", "true"))
	if err != nil {
		response.BadRequest(c, "autoprint must be true or false")
		return
	}

	html, err := h.printerService.A4(c.Request.Context(), session, id, autoPrint)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.HTML(c, html)
}
