package httpserver

import (
	"net/http"

	"storefront/internal/chat"

	"github.com/gin-gonic/gin"
)

func (a *api) analytics(c *gin.Context) {
	snapshot, err := a.deps.AnalyticsSvc.Snapshot(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, snapshot)
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (a *api) chat(c *gin.Context) {
	var req chatRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := a.deps.ChatSvc.Respond(c.Request.Context(), chat.Request{Message: req.Message, UserID: currentUser(c)})
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, reply)
}
