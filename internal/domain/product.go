package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is the closed set of catalog categories.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryAccessories Category = "Accessories"
	CategorySports      Category = "Sports"
	CategoryHome        Category = "Home"
	CategoryBeauty      Category = "Beauty"
	CategoryBooks       Category = "Books"
)

// Categories lists every valid Category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryFashion,
	CategoryAccessories,
	CategorySports,
	CategoryHome,
	CategoryBeauty,
	CategoryBooks,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// PlaceholderImage is used when a product carries no images.
const PlaceholderImage = "/placeholder-product.jpg"

type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Product struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Price          decimal.Decimal        `json:"price"`
	OriginalPrice  *decimal.Decimal       `json:"originalPrice,omitempty"`
	Images         []string               `json:"images"`
	Category       Category               `json:"category"`
	Subcategory    string                 `json:"subcategory,omitempty"`
	Brand          string                 `json:"brand,omitempty"`
	SKU            string                 `json:"sku"`
	Stock          int                    `json:"stock"`
	IsActive       bool                   `json:"isActive"`
	IsFeatured     bool                   `json:"isFeatured"`
	IsOnSale       bool                   `json:"isOnSale"`
	Tags           []string               `json:"tags,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	Rating         float64                `json:"rating"`
	ReviewCount    int                    `json:"reviewCount"`
	Weight         *float64               `json:"weight,omitempty"`
	Dimensions     *Dimensions            `json:"dimensions,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// PrimaryImage returns the first image or the placeholder.
func (p Product) PrimaryImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return PlaceholderImage
}

// Summary is the subset of product fields embedded in cart lines.
func (p Product) Summary() *ProductSummary {
	return &ProductSummary{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Images:        p.Images,
		Stock:         p.Stock,
	}
}

type ProductSummary struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Images        []string         `json:"images"`
	Stock         int              `json:"stock"`
}

// Sort keys accepted by product listing.
const (
	SortCreatedAt = "createdAt"
	SortPrice     = "price"
	SortRating    = "rating"
	SortName      = "name"
)

// ProductFilter describes a catalog listing request after normalization.
type ProductFilter struct {
	Category   Category
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	IsFeatured bool
	IsOnSale   bool
	Sort       string
	Ascending  bool
	Page       int
	Limit      int
}

// Offset is the number of rows skipped for the requested page.
func (f ProductFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalProducts int  `json:"totalProducts"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
	Limit         int  `json:"limit"`
}

type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination derives page counts and navigation flags.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProducts: total,
		HasNextPage:   page < totalPages,
		HasPrevPage:   page > 1,
		Limit:         limit,
	}
}
