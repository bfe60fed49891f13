package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// productFilterFromQuery reads listing parameters. Unparseable paging values
// fall back to the defaults; unparseable prices are rejected.
func productFilterFromQuery(c *gin.Context) (domain.ProductFilter, error) {
	f := domain.ProductFilter{
		Category:   domain.Category(strings.TrimSpace(c.Query("category"))),
		Search:     c.Query("search"),
		Sort:       c.DefaultQuery("sort", domain.SortCreatedAt),
		Ascending:  strings.EqualFold(c.Query("order"), "asc"),
		IsFeatured: c.Query("isFeatured") == "true",
		IsOnSale:   c.Query("isOnSale") == "true",
	}
	f.Page, _ = strconv.Atoi(c.Query("page"))
	f.Limit, _ = strconv.Atoi(c.Query("limit"))

	var fields []string
	parsePrice := func(key string) *decimal.Decimal {
		raw := strings.TrimSpace(c.Query(key))
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fields = append(fields, key+" must be a number")
			return nil
		}
		return &d
	}
	f.MinPrice = parsePrice("minPrice")
	f.MaxPrice = parsePrice("maxPrice")
	if len(fields) > 0 {
		return f, domain.Invalid("Invalid query parameters", fields...)
	}
	return f, nil
}

func (a *api) listProducts(c *gin.Context) {
	filter, err := productFilterFromQuery(c)
	if err != nil {
		a.respondError(c, err)
		return
	}
	page, err := a.deps.ProductSvc.List(c.Request.Context(), filter)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, page)
}

func (a *api) getProduct(c *gin.Context) {
	id, ok := pathID(c, "Product")
	if !ok {
		return
	}
	p, err := a.deps.ProductSvc.Get(c.Request.Context(), id)
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, p)
}

func (a *api) listCategories(c *gin.Context) {
	categories, err := a.deps.CategorySvc.List(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	respond(c, http.StatusOK, categories)
}

// pathID returns the :id parameter, answering 404 for anything that is not a
// UUID since no such record can exist.
func pathID(c *gin.Context, resource string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusNotFound, resource+" not found")
		return "", false
	}
	return id, true
}
