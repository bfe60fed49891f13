package httpserver

import (
	"net/http"

	addresssvc "storefront/internal/service/address"

	"github.com/gin-gonic/gin"
)

func (a *api) listAddresses(c *gin.Context) {
	addresses, err := a.deps.AddressSvc.List(c.Request.Context(), currentUser(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, addresses)
}

func (a *api) getAddress(c *gin.Context) {
	id, ok := pathID(c, "Address")
	if !ok {
		return
	}
	address, err := a.deps.AddressSvc.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, address)
}

func (a *api) createAddress(c *gin.Context) {
	var in addresssvc.Input
	if !bindJSON(c, &in) {
		return
	}
	address, err := a.deps.AddressSvc.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, address)
}

func (a *api) updateAddress(c *gin.Context) {
	id, ok := pathID(c, "Address")
	if !ok {
		return
	}
	var in addresssvc.Input
	if !bindJSON(c, &in) {
		return
	}
	address, err := a.deps.AddressSvc.Update(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, address)
}

func (a *api) deleteAddress(c *gin.Context) {
	id, ok := pathID(c, "Address")
	if !ok {
		return
	}
	if err := a.deps.AddressSvc.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		a.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Address deleted successfully", nil)
}
