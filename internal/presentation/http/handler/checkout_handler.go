package handler

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boumia-pos/internal/application/service"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/boumia-pos/pkg/apperror"
)

// CheckoutHandler handles the cart and order submission of a terminal
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Get returns the current cart
func (h *CheckoutHandler) Get(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	response.OK(c, "Cart retrieved successfully", h.checkoutService.View(session))
}

// AddItem adds a product by id or barcode
func (h *CheckoutHandler) AddItem(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var (
		view *service.CartView
		err  error
	)
	switch {
	case req.ProductID != nil:
		view, err = h.checkoutService.AddItem(c.Request.Context(), session, *req.ProductID)
	case req.Barcode != "":
		view, err = h.checkoutService.AddByBarcode(c.Request.Context(), session, req.Barcode)
	default:
		response.ValidationError(c, []apperror.FieldError{
			{Field: "product_id", Message: "product_id or barcode is required"},
		})
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", view)
}

// UpdateItem edits one field of a cart line
func (h *CheckoutHandler) UpdateItem(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.checkoutService.UpdateItem(session, productID, req.Op, string(req.Value))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Item updated"
	if !result.Changed {
		message = "Item unchanged"
	}
	response.OK(c, message, result)
}

// RemoveItem drops a line from the cart
func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	productID, ok := paramID(c, "product_id")
	if !ok {
		return
	}

	view, err := h.checkoutService.RemoveItem(session, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", view)
}

// SetDiscount sets the order-level discount
func (h *CheckoutHandler) SetDiscount(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	var req request.OrderDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.checkoutService.SetOrderDiscount(session, req.Value, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount applied", view)
}

// SelectCustomer attaches a customer to the sale
func (h *CheckoutHandler) SelectCustomer(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	var req request.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.checkoutService.SelectCustomer(c.Request.Context(), session, req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer selected", view)
}

// ClearCustomer releases the selected customer
func (h *CheckoutHandler) ClearCustomer(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	view, err := h.checkoutService.ClearCustomer(session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer cleared", view)
}

// Confirm submits the sale as completed
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	h.submit(c, h.checkoutService.Confirm, "Order confirmed")
}

// Save submits the sale as pending, to be finished later
func (h *CheckoutHandler) Save(c *gin.Context) {
	h.submit(c, h.checkoutService.SaveForLater, "Order saved for later")
}

type submitFunc func(ctx context.Context, session *entity.TerminalSession, customerID *int64) (*entity.PersistedOrder, error)

func (h *CheckoutHandler) submit(c *gin.Context, fn submitFunc, message string) {
	session := GetSession(c)
	if session == nil {
		return
	}

	var req request.SubmitRequest
	// the body is optional
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := fn(c.Request.Context(), session, req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, message, gin.H{
		"order": order,
		"cart":  h.checkoutService.View(session),
	})
}

// Cancel empties the cart
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}

	view, err := h.checkoutService.Cancel(session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale cancelled", view)
}
