package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"storefront/internal/domain"
	paymentsvc "storefront/internal/service/payment"
	usersvc "storefront/internal/service/user"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type successResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, successResponse{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, successResponse{Success: true, Data: data, Message: msg})
}

func fail(c *gin.Context, status int, msg string, fields ...string) {
	c.AbortWithStatusJSON(status, errorResponse{Success: false, Message: msg, Errors: fields})
}

// respondError maps service errors onto status codes. Unknown errors are
// logged and answered with 500; the detail is only exposed outside production.
func (a *api) respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &verr):
		fail(c, http.StatusBadRequest, verr.Message, verr.Fields...)
	case errors.Is(err, usersvc.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.As(err, &nf):
		fail(c, http.StatusNotFound, nf.Error())
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		fail(c, http.StatusConflict, "Already exists")
	case errors.Is(err, paymentsvc.ErrNotConfigured):
		fail(c, http.StatusServiceUnavailable, "Payment processing is not configured")
	default:
		a.logger.Printf("http: %s %s error=%v", c.Request.Method, c.FullPath(), err)
		resp := errorResponse{Success: false, Message: "Internal server error"}
		if !a.production {
			resp.Error = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	}
}

// bindJSON decodes the body into dst and answers 400 itself when that fails.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldMessage(fe))
		}
		fail(c, http.StatusBadRequest, "Validation failed", fields...)
		return false
	}
	fail(c, http.StatusBadRequest, "Invalid request body")
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}
