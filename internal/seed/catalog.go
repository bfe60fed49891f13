package seed

import (
	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func Categories() []domain.CatalogCategory {
	descriptions := map[domain.Category]string{
		domain.CategoryElectronics: "Electronic devices and gadgets",
		domain.CategoryFashion:     "Clothing and fashion accessories",
		domain.CategoryAccessories: "Various accessories and lifestyle products",
		domain.CategorySports:      "Sports and fitness equipment",
		domain.CategoryHome:        "Home and kitchen products",
		domain.CategoryBeauty:      "Beauty and personal care products",
		domain.CategoryBooks:       "Books and educational materials",
	}
	out := make([]domain.CatalogCategory, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, domain.CatalogCategory{Name: c, Description: descriptions[c], IsActive: true})
	}
	return out
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func grams(w float64) *float64 {
	return &w
}

func unsplash(id string) []string {
	return []string{"https://images.unsplash.com/photo-" + id + "?w=400&h=400&fit=crop"}
}

// Products is the demo catalog.
func Products() []domain.Product {
	return []domain.Product{
		{
			Name:          "Premium Wireless Headphones",
			Description:   "High-quality wireless headphones with noise cancellation and premium sound quality.",
			Price:         money("199.99"),
			OriginalPrice: moneyPtr("249.99"),
			Images:        unsplash("1505740420928-5e560c06d30e"),
			Category:      domain.CategoryElectronics,
			Subcategory:   "Audio",
			Brand:         "SoundMax",
			SKU:           "WH-001",
			Stock:         50,
			IsActive:      true,
			IsFeatured:    true,
			IsOnSale:      true,
			Tags:          []string{"wireless", "noise-cancellation", "premium"},
			Specifications: map[string]interface{}{
				"Battery Life": "30 hours", "Connectivity": "Bluetooth 5.0", "Weight": "250g", "Color": "Black",
			},
			Rating:      4.8,
			ReviewCount: 124,
			Weight:      grams(250),
			Dimensions:  &domain.Dimensions{Length: 20, Width: 18, Height: 8},
		},
		{
			Name:        "Smart Fitness Watch",
			Description: "Advanced fitness tracking with heart rate monitoring, GPS, and water resistance.",
			Price:       money("299.99"),
			Images:      unsplash("1523275335684-37898b6baf30"),
			Category:    domain.CategoryElectronics,
			Subcategory: "Wearables",
			Brand:       "FitTech",
			SKU:         "SW-002",
			Stock:       30,
			IsActive:    true,
			IsFeatured:  true,
			Tags:        []string{"fitness", "smartwatch", "health"},
			Specifications: map[string]interface{}{
				"Display": "1.4\" AMOLED", "Battery Life": "7 days", "Water Resistance": "50m", "Sensors": "Heart Rate, GPS, Accelerometer",
			},
			Rating:      4.6,
			ReviewCount: 89,
			Weight:      grams(45),
			Dimensions:  &domain.Dimensions{Length: 4, Width: 4, Height: 1},
		},
		{
			Name:        "Organic Cotton T-Shirt",
			Description: "Comfortable and sustainable organic cotton t-shirt made from 100% organic materials.",
			Price:       money("29.99"),
			Images:      unsplash("1521572163474-6864f9cf17ab"),
			Category:    domain.CategoryFashion,
			Subcategory: "Tops",
			Brand:       "EcoWear",
			SKU:         "TS-003",
			Stock:       100,
			IsActive:    true,
			Tags:        []string{"organic", "cotton", "sustainable"},
			Specifications: map[string]interface{}{
				"Material": "100% Organic Cotton", "Care Instructions": "Machine wash cold", "Sizes": "S, M, L, XL", "Color": "White",
			},
			Rating:      4.7,
			ReviewCount: 203,
			Weight:      grams(150),
			Dimensions:  &domain.Dimensions{Length: 30, Width: 25, Height: 1},
		},
		{
			Name:          "Minimalist Backpack",
			Description:   "Stylish and functional backpack for everyday use with multiple compartments.",
			Price:         money("79.99"),
			OriginalPrice: moneyPtr("99.99"),
			Images:        unsplash("1553062407-98eeb64c6a62"),
			Category:      domain.CategoryAccessories,
			Subcategory:   "Bags",
			Brand:         "UrbanGear",
			SKU:           "BP-004",
			Stock:         25,
			IsActive:      true,
			IsFeatured:    true,
			IsOnSale:      true,
			Tags:          []string{"backpack", "minimalist", "urban"},
			Specifications: map[string]interface{}{
				"Capacity": "25L", "Material": "Nylon", "Compartments": "3", "Laptop Sleeve": "Yes",
			},
			Rating:      4.9,
			ReviewCount: 156,
			Weight:      grams(800),
			Dimensions:  &domain.Dimensions{Length: 45, Width: 30, Height: 15},
		},
		{
			Name:        "Bluetooth Speaker",
			Description: "Portable speaker with excellent sound quality and long battery life.",
			Price:       money("89.99"),
			Images:      unsplash("1608043152269-423dbba4e7e1"),
			Category:    domain.CategoryElectronics,
			Subcategory: "Audio",
			Brand:       "SoundWave",
			SKU:         "BS-005",
			Stock:       40,
			IsActive:    true,
			Tags:        []string{"bluetooth", "portable", "speaker"},
			Specifications: map[string]interface{}{
				"Battery Life": "12 hours", "Connectivity": "Bluetooth 5.0", "Water Resistance": "IPX7", "Power": "20W",
			},
			Rating:      4.5,
			ReviewCount: 78,
			Weight:      grams(600),
			Dimensions:  &domain.Dimensions{Length: 20, Width: 8, Height: 8},
		},
		{
			Name:          "Gaming Mechanical Keyboard",
			Description:   "RGB backlit mechanical keyboard with tactile switches for gaming and typing.",
			Price:         money("149.99"),
			OriginalPrice: moneyPtr("179.99"),
			Images:        unsplash("1541140532154-b024d705b90a"),
			Category:      domain.CategoryElectronics,
			Subcategory:   "Gaming",
			Brand:         "GameTech",
			SKU:           "KB-006",
			Stock:         35,
			IsActive:      true,
			IsFeatured:    true,
			IsOnSale:      true,
			Tags:          []string{"gaming", "mechanical", "rgb"},
			Specifications: map[string]interface{}{
				"Switch Type": "Cherry MX Blue", "Backlight": "RGB", "Connectivity": "USB-C", "Layout": "Full Size",
			},
			Rating:      4.7,
			ReviewCount: 92,
			Weight:      grams(1200),
			Dimensions:  &domain.Dimensions{Length: 45, Width: 15, Height: 3},
		},
		{
			Name:        "Yoga Mat Premium",
			Description: "Non-slip yoga mat with excellent grip and cushioning for all yoga practices.",
			Price:       money("49.99"),
			Images:      unsplash("1544367567-0f2fcb009e0b"),
			Category:    domain.CategorySports,
			Subcategory: "Fitness",
			Brand:       "ZenFit",
			SKU:         "YM-007",
			Stock:       60,
			IsActive:    true,
			Tags:        []string{"yoga", "fitness", "non-slip"},
			Specifications: map[string]interface{}{
				"Material": "TPE", "Thickness": "6mm", "Size": "72\" x 24\"", "Weight": "2.5 lbs",
			},
			Rating:      4.8,
			ReviewCount: 167,
			Weight:      grams(1134),
			Dimensions:  &domain.Dimensions{Length: 72, Width: 24, Height: 0.6},
		},
		{
			Name:        "Ceramic Coffee Mug Set",
			Description: "Handcrafted ceramic coffee mugs perfect for your morning brew.",
			Price:       money("24.99"),
			Images:      unsplash("1514228742587-6b1558fcf93a"),
			Category:    domain.CategoryHome,
			Subcategory: "Kitchen",
			Brand:       "Artisan",
			SKU:         "CM-008",
			Stock:       80,
			IsActive:    true,
			Tags:        []string{"ceramic", "coffee", "handcrafted"},
			Specifications: map[string]interface{}{
				"Material": "Ceramic", "Capacity": "12 oz", "Dishwasher Safe": "Yes", "Microwave Safe": "Yes",
			},
			Rating:      4.6,
			ReviewCount: 134,
			Weight:      grams(300),
			Dimensions:  &domain.Dimensions{Length: 10, Width: 8, Height: 10},
		},
		{
			Name:          "Wireless Phone Charger",
			Description:   "Fast wireless charging pad compatible with all Qi-enabled devices.",
			Price:         money("39.99"),
			OriginalPrice: moneyPtr("49.99"),
			Images:        unsplash("1583394838336-acd977736f90"),
			Category:      domain.CategoryElectronics,
			Subcategory:   "Accessories",
			Brand:         "ChargeMax",
			SKU:           "WC-009",
			Stock:         45,
			IsActive:      true,
			IsFeatured:    true,
			IsOnSale:      true,
			Tags:          []string{"wireless", "charging", "fast"},
			Specifications: map[string]interface{}{
				"Power": "15W", "Compatibility": "Qi Standard", "LED Indicator": "Yes", "Cable Length": "3ft",
			},
			Rating:      4.4,
			ReviewCount: 89,
			Weight:      grams(200),
			Dimensions:  &domain.Dimensions{Length: 10, Width: 10, Height: 1},
		},
		{
			Name:        "Organic Face Serum",
			Description: "Natural anti-aging face serum with vitamin C and hyaluronic acid.",
			Price:       money("34.99"),
			Images:      unsplash("1556228720-195a672e8a03"),
			Category:    domain.CategoryBeauty,
			Subcategory: "Skincare",
			Brand:       "NaturalGlow",
			SKU:         "FS-010",
			Stock:       70,
			IsActive:    true,
			Tags:        []string{"organic", "skincare", "anti-aging"},
			Specifications: map[string]interface{}{
				"Volume": "30ml", "Ingredients": "Vitamin C, Hyaluronic Acid", "Skin Type": "All Types", "Cruelty Free": "Yes",
			},
			Rating:      4.9,
			ReviewCount: 203,
			Weight:      grams(50),
			Dimensions:  &domain.Dimensions{Length: 6, Width: 3, Height: 12},
		},
	}
}
