package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type cartLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

func (a *api) getCart(c *gin.Context) {
	cart, err := a.deps.CartSvc.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, cart)
}

func (a *api) cartSummary(c *gin.Context) {
	summary, err := a.deps.CartSvc.Summary(c.Request.Context(), currentUser(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, summary)
}

func (a *api) addToCart(c *gin.Context) {
	var req cartLineRequest
	if !bindJSON(c, &req) {
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	cart, err := a.deps.CartSvc.AddItem(c.Request.Context(), currentUser(c), req.ProductID, qty)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Product added to cart", cart)
}

func (a *api) updateCart(c *gin.Context) {
	var req cartLineRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ProductID == "" || req.Quantity == nil {
		fail(c, http.StatusBadRequest, "Product ID and quantity are required")
		return
	}
	cart, err := a.deps.CartSvc.UpdateQuantity(c.Request.Context(), currentUser(c), req.ProductID, *req.Quantity)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Cart updated", cart)
}

// removeFromCart takes productId from the JSON body, or from the query
// string for clients that cannot send a body with DELETE.
func (a *api) removeFromCart(c *gin.Context) {
	var req cartLineRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}
	if req.ProductID == "" {
		req.ProductID = c.Query("productId")
	}
	cart, err := a.deps.CartSvc.RemoveItem(c.Request.Context(), currentUser(c), req.ProductID)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Product removed from cart", cart)
}

func (a *api) clearCart(c *gin.Context) {
	cart, err := a.deps.CartSvc.Clear(c.Request.Context(), currentUser(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Cart cleared", cart)
}
