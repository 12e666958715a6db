package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	wishlistapp "github.com/teestore/backend/internal/application/wishlist"
	"github.com/teestore/backend/internal/interfaces/http/middleware"
)

// WishlistHandler handles wishlist API endpoints
type WishlistHandler struct {
	BaseHandler
	wishlistService *wishlistapp.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService *wishlistapp.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

// RegisterRoutes registers the wishlist routes. The group must carry the
// OptionalAuth and SessionKey middleware so anonymous shoppers get a key.
func (h *WishlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", h.Get)
		wishlist.DELETE("", h.Clear)
		wishlist.POST("/items", h.Add)
		wishlist.DELETE("/items/:productId", h.Remove)
	}
}

// Get returns the current wishlist
func (h *WishlistHandler) Get(c *gin.Context) {
	wishlist, err := h.wishlistService.Get(c.Request.Context(), middleware.GetOwnerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, wishlist)
}

// Add saves a product to the wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
	var req wishlistapp.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	wishlist, err := h.wishlistService.Add(c.Request.Context(), middleware.GetOwnerKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, wishlist)
}

// Remove drops a product from the wishlist
func (h *WishlistHandler) Remove(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	wishlist, err := h.wishlistService.Remove(c.Request.Context(), middleware.GetOwnerKey(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, wishlist)
}

// Clear empties the wishlist
func (h *WishlistHandler) Clear(c *gin.Context) {
	wishlist, err := h.wishlistService.Clear(c.Request.Context(), middleware.GetOwnerKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, wishlist)
}
