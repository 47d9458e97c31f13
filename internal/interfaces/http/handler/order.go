package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apporder "github.com/jaysam/backend/internal/application/order"
	"github.com/jaysam/backend/internal/domain/identity"
	"github.com/jaysam/backend/internal/domain/order"
	"github.com/jaysam/backend/internal/interfaces/http/dto"
	"github.com/jaysam/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order management endpoints
type OrderHandler struct {
	BaseHandler
	checkoutService *apporder.CheckoutService
	orderService    *apporder.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkoutService *apporder.CheckoutService, orderService *apporder.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// CheckoutRequest represents the checkout request body
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required,max=255"`
	ShippingCity    string `json:"shipping_city" binding:"required,max=100"`
	ShippingState   string `json:"shipping_state" binding:"required,max=100"`
	ShippingZip     string `json:"shipping_zip" binding:"max=20"`
	ShippingPhone   string `json:"shipping_phone" binding:"max=30"`
	CustomerNotes   string `json:"customer_notes" binding:"max=1000"`
}

// ListOrdersRequest represents order list query parameters
type ListOrdersRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status"`
}

// UpdateOrderStatusRequest represents the status update request body
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// currentRole returns the caller's role from JWT claims
func currentRole(c *gin.Context) identity.Role {
	return identity.Role(middleware.GetJWTRole(c))
}

// Checkout converts the caller's cart into an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.checkoutService.CreateOrderFromCart(c.Request.Context(), userID, apporder.CheckoutRequest{
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZip:     req.ShippingZip,
		ShippingPhone:   req.ShippingPhone,
		CustomerNotes:   req.CustomerNotes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListMine returns the caller's order history
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	orders, total, err := h.orderService.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// ListAll returns all orders for staff review
func (h *OrderHandler) ListAll(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	orders, total, err := h.orderService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Get returns a single order. Staff can read any order, customers
// only their own.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), uuid.MustParse(idReq.ID), userID, currentRole(c).IsStaff())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel cancels a pending order and restores its stock. Customers can
// cancel their own orders, elevated roles can cancel anyone's.
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	err = h.checkoutService.CancelOrder(c.Request.Context(), uuid.MustParse(idReq.ID), userID, currentRole(c).IsElevated())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Order cancelled"})
}

// UpdateStatus advances an order through its fulfillment states
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	target := order.Status(req.Status)
	if !target.IsValid() {
		h.BadRequest(c, "Unknown status: "+req.Status)
		return
	}

	result, err := h.orderService.UpdateStatus(c.Request.Context(), uuid.MustParse(idReq.ID), target)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *OrderHandler) bindListFilter(c *gin.Context) (apporder.ListFilter, bool) {
	req := ListOrdersRequest{Page: 1, PageSize: 20}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return apporder.ListFilter{}, false
	}

	filter := apporder.ListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != "" {
		status := order.Status(req.Status)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown status: "+req.Status)
			return apporder.ListFilter{}, false
		}
		filter.Status = &status
	}
	return filter, true
}
