package httpserver

import (
	"net/http"
	"strings"

	usersvc "storefront/internal/service/user"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

type tokenVerifier interface {
	Authenticate(token string) (string, error)
}

// authMiddleware resolves the bearer token to a user id. When required is
// false a missing token is allowed, but an invalid one is still rejected.
func authMiddleware(tokens tokenVerifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if required {
				fail(c, http.StatusUnauthorized, "Access token required")
				return
			}
			c.Next()
			return
		}
		userID, err := tokens.Authenticate(token)
		if err != nil {
			fail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// currentUser is empty on routes with optional auth and no token.
func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *api) register(c *gin.Context) {
	var req usersvc.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	session, err := a.deps.UserSvc.Register(c.Request.Context(), req)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "User registered successfully", session)
}

func (a *api) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := a.deps.UserSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Login successful", session)
}

func (a *api) me(c *gin.Context) {
	user, err := a.deps.UserSvc.Me(c.Request.Context(), currentUser(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user)
}
