// Package importer loads catalog CSV files into the store. A file holds
// either products (it has a sku column) or categories.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, category domain.CatalogCategory) (*domain.CatalogCategory, error)
}

type Kind string

const (
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
)

var ErrUnknownKind = errors.New("importer: cannot tell products from categories")

// DetectKind reads the header line and reports which kind of file it is.
func DetectKind(r io.Reader) (Kind, error) {
	headers, err := csv.NewReader(r).Read()
	if err != nil {
		return "", fmt.Errorf("read headers: %w", err)
	}
	return kindOf(headerIndex(headers))
}

func kindOf(index map[string]int) (Kind, error) {
	if _, ok := index["sku"]; ok {
		return KindProducts, nil
	}
	if _, ok := index["name"]; ok {
		return KindCategories, nil
	}
	return "", ErrUnknownKind
}

// CSVImporter upserts products by SKU or categories by name.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryWriter
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		products:   products,
		categories: categories,
	}
}

// Run imports every record and returns how many entities were written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	kind, err := kindOf(index)
	if err != nil {
		return 0, err
	}
	if kind == KindCategories {
		if i.categories == nil {
			return 0, errors.New("importer: no category writer configured")
		}
		return i.runCategories(ctx, index)
	}
	if i.products == nil {
		return 0, errors.New("importer: no product writer configured")
	}
	return i.runProducts(ctx, index)
}

func (i *CSVImporter) runProducts(ctx context.Context, index map[string]int) (int, error) {
	var (
		current  *domain.Product
		imported int
		line     = 1
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		sku := pick(record, index, "sku")
		image := pick(record, index, "image")
		if sku == "" {
			// Continuation rows carry extra images for the current product.
			if current != nil && image != "" {
				current.Images = append(current.Images, image)
			}
			continue
		}

		if current != nil {
			if err := i.saveProduct(ctx, current); err != nil {
				return imported, err
			}
			imported++
		}
		current, err = parseProduct(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if current != nil {
		if err := i.saveProduct(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) saveProduct(ctx context.Context, p *domain.Product) error {
	if _, err := i.products.Upsert(ctx, *p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.SKU, err)
	}
	return nil
}

func parseProduct(record []string, index map[string]int) (*domain.Product, error) {
	p := &domain.Product{
		SKU:         pick(record, index, "sku"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Category:    domain.Category(pick(record, index, "category")),
		Subcategory: pick(record, index, "subcategory"),
		Brand:       pick(record, index, "brand"),
		IsActive:    true,
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("sku %s: invalid price", p.SKU)
	}
	p.Price = price
	if raw := pick(record, index, "originalPrice"); raw != "" {
		original, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("sku %s: invalid originalPrice", p.SKU)
		}
		p.OriginalPrice = &original
	}
	if raw := pick(record, index, "stock"); raw != "" {
		if p.Stock, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("sku %s: invalid stock", p.SKU)
		}
	}
	if p.IsFeatured, err = parseFlag(pick(record, index, "isFeatured"), false); err != nil {
		return nil, fmt.Errorf("sku %s: invalid isFeatured", p.SKU)
	}
	if p.IsOnSale, err = parseFlag(pick(record, index, "isOnSale"), false); err != nil {
		return nil, fmt.Errorf("sku %s: invalid isOnSale", p.SKU)
	}
	if p.IsActive, err = parseFlag(pick(record, index, "isActive"), true); err != nil {
		return nil, fmt.Errorf("sku %s: invalid isActive", p.SKU)
	}
	if image := pick(record, index, "image"); image != "" {
		p.Images = []string{image}
	}
	p.Tags = splitList(pick(record, index, "tags"))
	return p, nil
}

func (i *CSVImporter) runCategories(ctx context.Context, index map[string]int) (int, error) {
	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		name := pick(record, index, "name")
		if name == "" {
			continue
		}
		active, err := parseFlag(pick(record, index, "isActive"), true)
		if err != nil {
			return imported, fmt.Errorf("category %s: invalid isActive", name)
		}
		c := domain.CatalogCategory{
			Name:        domain.Category(name),
			Description: pick(record, index, "description"),
			IsActive:    active,
		}
		if _, err := i.categories.Upsert(ctx, c); err != nil {
			return imported, fmt.Errorf("upsert category %q: %w", name, err)
		}
		imported++
	}
	return imported, nil
}

func parseFlag(raw string, fallback bool) (bool, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseBool(raw)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
