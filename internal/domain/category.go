package domain

import "time"

// CatalogCategory is a browsable category record.
type CatalogCategory struct {
	ID          string    `json:"id"`
	Name        Category  `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}
