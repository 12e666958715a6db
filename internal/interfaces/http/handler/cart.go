package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/teestore/backend/internal/application/cart"
	"github.com/teestore/backend/internal/interfaces/http/middleware"
)

// CartHandler handles shopping cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers the cart routes. The group must carry the
// OptionalAuth and SessionKey middleware so anonymous shoppers get a key.
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.DELETE("", h.Clear)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:key", h.UpdateQuantity)
		cart.DELETE("/items/:key", h.RemoveItem)
	}
}

// Get returns the current cart
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.Get(c.Request.Context(), middleware.GetOwnerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem puts a product variant into the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), middleware.GetOwnerKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// UpdateQuantity sets the quantity of a cart line
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req cartapp.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), middleware.GetOwnerKey(c), c.Param("key"), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem deletes a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.cartService.RemoveItem(c.Request.Context(), middleware.GetOwnerKey(c), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	cart, err := h.cartService.Clear(c.Request.Context(), middleware.GetOwnerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}
