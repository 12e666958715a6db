package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/teestore/backend/internal/application/order"
	"github.com/teestore/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// RegisterRoutes registers the customer order routes. The group must require
// authentication.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("/checkout", h.Checkout)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

// RegisterAdminRoutes registers the back-office order routes
func (h *OrderHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.ListAll)
		orders.POST("/:id/pay", h.MarkPaid)
	}
}

// Checkout turns the shopper's cart into an order
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List returns the shopper's own orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	orders, total, err := h.orderService.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetByID returns one order, visible to its owner or an admin
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID, userID, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel cancels a pending order
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), orderID, userID, middleware.IsAdmin(c), req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListAll returns every order for the back office
func (h *OrderHandler) ListAll(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	orders, total, err := h.orderService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// MarkPaid records payment for a pending order
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.MarkPaid(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

func pageOrDefault(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func pageSizeOrDefault(size int) int {
	if size <= 0 {
		return 20
	}
	return size
}
