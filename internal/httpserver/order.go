package httpserver

import (
	"net/http"

	ordersvc "storefront/internal/service/order"
	paymentsvc "storefront/internal/service/payment"

	"github.com/gin-gonic/gin"
)

// createOrderRequest also accepts stripePaymentIntentId, the name older
// checkout clients send.
type createOrderRequest struct {
	AddressID             string `json:"addressId"`
	PaymentMethod         string `json:"paymentMethod"`
	PaymentIntentID       string `json:"paymentIntentId"`
	StripePaymentIntentID string `json:"stripePaymentIntentId"`
}

func (a *api) createOrder(c *gin.Context) {
	var req createOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	intentID := req.PaymentIntentID
	if intentID == "" {
		intentID = req.StripePaymentIntentID
	}
	order, err := a.deps.OrderSvc.Place(c.Request.Context(), currentUser(c), ordersvc.PlaceInput{
		AddressID:       req.AddressID,
		PaymentMethod:   req.PaymentMethod,
		PaymentIntentID: intentID,
	})
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Order created successfully", order)
}

func (a *api) listOrders(c *gin.Context) {
	orders, err := a.deps.OrderSvc.List(c.Request.Context(), currentUser(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, orders)
}

func (a *api) getOrder(c *gin.Context) {
	id, ok := pathID(c, "Order")
	if !ok {
		return
	}
	order, err := a.deps.OrderSvc.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, order)
}

type clientSecretResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (a *api) createPaymentIntent(c *gin.Context) {
	var in paymentsvc.CreateIntentInput
	if !bindJSON(c, &in) {
		return
	}
	secret, err := a.deps.PaymentSvc.CreateIntent(c.Request.Context(), currentUser(c), in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, clientSecretResponse{ClientSecret: secret})
}
