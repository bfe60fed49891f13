// Package chat answers storefront questions with keyword rules. The first
// rule whose predicate matches the normalized message produces the reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
)

type Kind string

const (
	KindProducts  Kind = "products"
	KindOrders    Kind = "orders"
	KindAnalytics Kind = "analytics"
	KindFAQ       Kind = "faq"
	KindCart      Kind = "cart"
	KindContact   Kind = "contact"
	KindGreeting  Kind = "greeting"
	KindFallback  Kind = "fallback"
)

// Request is one user message. UserID is empty for anonymous callers.
type Request struct {
	Message string
	UserID  string
}

type Reply struct {
	Text string `json:"reply"`
	Kind Kind   `json:"kind"`
	Data any    `json:"data,omitempty"`
}

// Rule pairs a predicate over normalized text with its handler.
type Rule struct {
	Kind    Kind
	Match   func(text string) bool
	Respond func(ctx context.Context, req Request, text string) Reply
}

type Catalog interface {
	List(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error)
}

type Orders interface {
	Recent(ctx context.Context, userID string, n int) ([]domain.Order, error)
}

type Analytics interface {
	Snapshot(ctx context.Context) (*domain.Analytics, error)
}

type Carts interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
}

// Responder evaluates its rules in order.
type Responder struct {
	catalog   Catalog
	orders    Orders
	analytics Analytics
	carts     Carts
	logger    *log.Logger
	rules     []Rule
}

func New(catalog Catalog, orders Orders, analytics Analytics, carts Carts, logger *log.Logger) *Responder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Responder{catalog: catalog, orders: orders, analytics: analytics, carts: carts, logger: logger}
	r.rules = []Rule{
		{KindProducts, keywords("recommend", "suggest", "product"), r.products},
		{KindOrders, keywords("order", "track", "status"), r.recentOrders},
		{KindAnalytics, keywords("analytics", "stats", "revenue", "sales"), r.businessAnalytics},
		{KindFAQ, keywords("help", "faq", "support"), static(KindFAQ, faqText)},
		{KindCart, keywords("cart", "basket"), r.cart},
		{KindContact, keywords("contact", "phone", "email"), static(KindContact, contactText)},
		{KindGreeting, keywords("hello", "hi", "hey"), static(KindGreeting, greetingText)},
	}
	return r
}

// Rules returns the rule list in evaluation order.
func (r *Responder) Rules() []Rule {
	return r.rules
}

// Respond answers a message. Blank messages are rejected.
func (r *Responder) Respond(ctx context.Context, req Request) (Reply, error) {
	text := Normalize(req.Message)
	if text == "" {
		return Reply{}, domain.Invalid("Message is required")
	}
	for _, rule := range r.rules {
		if rule.Match(text) {
			return rule.Respond(ctx, req, text), nil
		}
	}
	return Reply{Text: fallbackText, Kind: KindFallback}, nil
}

func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func keywords(words ...string) func(string) bool {
	return func(text string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

func static(kind Kind, text string) func(context.Context, Request, string) Reply {
	return func(context.Context, Request, string) Reply {
		return Reply{Text: text, Kind: kind}
	}
}

var categoryKeywords = []struct {
	category domain.Category
	words    []string
}{
	{domain.CategoryElectronics, []string{"electronics", "phone", "laptop"}},
	{domain.CategoryFashion, []string{"fashion", "clothes", "shirt"}},
	{domain.CategoryAccessories, []string{"accessories", "watch", "bag"}},
	{domain.CategorySports, []string{"sports", "fitness", "gym"}},
	{domain.CategoryHome, []string{"home", "furniture", "decor"}},
	{domain.CategoryBeauty, []string{"beauty", "skincare", "makeup"}},
	{domain.CategoryBooks, []string{"books", "novel", "reading"}},
}

var stopWords = map[string]bool{
	"recommend": true, "suggest": true, "product": true, "products": true, "show": true, "find": true,
	"search": true, "for": true, "me": true, "a": true, "an": true, "the": true, "some": true,
}

// RecommendationFilter maps a message onto a catalog query: a category when
// a category keyword appears, otherwise the message minus stop words as a
// name search.
func RecommendationFilter(text string) (domain.ProductFilter, string) {
	filter := domain.ProductFilter{Page: 1, Limit: 3, Sort: domain.SortRating}
	for _, c := range categoryKeywords {
		if keywords(c.words...)(text) {
			filter.Category = c.category
			return filter, string(c.category)
		}
	}
	var words []string
	for _, w := range strings.Fields(text) {
		if !stopWords[w] {
			words = append(words, w)
		}
	}
	filter.Search = strings.Join(words, " ")
	return filter, filter.Search
}

func (r *Responder) products(ctx context.Context, _ Request, text string) Reply {
	filter, label := RecommendationFilter(text)
	page, err := r.catalog.List(ctx, filter)
	if err != nil {
		r.logger.Printf("chat: recommendations error=%v", err)
		return Reply{Kind: KindProducts, Text: "I'm having trouble fetching product recommendations right now. Please try again later or browse our products page directly."}
	}
	if len(page.Products) == 0 {
		return Reply{Kind: KindProducts, Text: "I'd be happy to recommend products! Could you tell me what type of products you're interested in? For example, electronics, fashion, accessories, sports, or home items?"}
	}
	if label == "" {
		label = "product"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Here are some great %s recommendations for you:\n\n", label)
	for i, p := range page.Products {
		fmt.Fprintf(&b, "%d. %s\n   Price: $%s\n   Category: %s\n   Rating: %.1f/5\n\n", i+1, p.Name, p.Price.StringFixed(2), p.Category, p.Rating)
	}
	b.WriteString("Would you like to see more products or need help with anything else?")
	return Reply{Kind: KindProducts, Text: b.String(), Data: page.Products}
}

func (r *Responder) recentOrders(ctx context.Context, req Request, _ string) Reply {
	if req.UserID == "" {
		return Reply{Kind: KindOrders, Text: "To track your orders, please log in to your account first. You can then view all your orders and their current status."}
	}
	orders, err := r.orders.Recent(ctx, req.UserID, 3)
	if err != nil {
		r.logger.Printf("chat: orders user_id=%s error=%v", req.UserID, err)
		return Reply{Kind: KindOrders, Text: "I'm having trouble accessing your orders right now. Please try again later or contact support if the issue persists."}
	}
	if len(orders) == 0 {
		return Reply{Kind: KindOrders, Text: "You don't have any orders yet. Start shopping to place your first order!"}
	}
	var b strings.Builder
	b.WriteString("Here are your recent orders:\n\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "Order #%s\nStatus: %s\nPayment: %s\nTotal: $%s\nDate: %s\n\n",
			o.OrderNumber, o.OrderStatus, o.PaymentStatus, o.Total.StringFixed(2), o.CreatedAt.Format("2006-01-02"))
	}
	b.WriteString("You can view all your orders in the Orders section. Is there anything specific about your orders you'd like to know?")
	return Reply{Kind: KindOrders, Text: b.String(), Data: orders}
}

func (r *Responder) businessAnalytics(ctx context.Context, req Request, _ string) Reply {
	if req.UserID == "" {
		return Reply{Kind: KindAnalytics, Text: "Please log in to view business analytics."}
	}
	a, err := r.analytics.Snapshot(ctx)
	if err != nil {
		r.logger.Printf("chat: analytics error=%v", err)
		return Reply{Kind: KindAnalytics, Text: "I'm having trouble fetching analytics data right now. Please try again later."}
	}
	var b strings.Builder
	o := a.Overview
	fmt.Fprintf(&b, "Here are the current business analytics:\n\nKey Metrics:\n• Total Orders: %d\n• Total Revenue: $%s\n• Total Users: %d\n• Total Products: %d\n• Average Order Value: $%s\n\nTop Categories:\n",
		o.TotalOrders, o.TotalRevenue.StringFixed(2), o.TotalUsers, o.TotalProducts, o.AverageOrderValue.StringFixed(2))
	for _, c := range a.Categories {
		fmt.Fprintf(&b, "• %s: %d orders ($%s)\n", c.Name, c.Orders, c.Revenue.StringFixed(2))
	}
	b.WriteString("\nWould you like to see more detailed analytics?")
	return Reply{Kind: KindAnalytics, Text: b.String(), Data: a}
}

func (r *Responder) cart(ctx context.Context, req Request, _ string) Reply {
	count := 0
	if req.UserID != "" {
		c, err := r.carts.Get(ctx, req.UserID)
		switch {
		case err == nil:
			count = c.TotalItems
		case !errors.Is(err, domain.ErrNotFound):
			r.logger.Printf("chat: cart user_id=%s error=%v", req.UserID, err)
		}
	}
	if count == 0 {
		return Reply{Kind: KindCart, Text: "Your cart is currently empty. Would you like me to recommend some products for you?"}
	}
	plural := ""
	if count > 1 {
		plural = "s"
	}
	return Reply{
		Kind: KindCart,
		Text: fmt.Sprintf("You have %d item%s in your cart. You can view your cart by clicking the cart icon in the header. Would you like me to help you with anything related to your cart?", count, plural),
		Data: map[string]int{"totalItems": count},
	}
}

const greetingText = "Hello! How can I help you today? I can assist with product recommendations, order tracking, or answer any questions you might have."

const fallbackText = "I understand you're looking for help. I can assist you with:\n\n• Product recommendations\n• Order tracking\n• Business analytics\n• General questions\n\nCould you be more specific about what you need?"

const faqText = `Frequently Asked Questions:

Q: How do I track my order?
A: You can track your order by going to the Orders section or asking me!

Q: What payment methods do you accept?
A: We accept credit/debit cards and cash on delivery.

Q: How long does shipping take?
A: Standard shipping takes 3-5 business days. Express shipping is available.

Q: Can I return items?
A: Yes, we offer a 30-day return policy for most items.

Q: Do you offer free shipping?
A: Yes, free shipping on orders over $50!

Is there anything else you'd like to know?`

const contactText = `Contact Information:

Phone: +1 (555) 123-4567
Email: support@storefront.example
Address: 123 Commerce Street, Business City, BC 12345

Business Hours:
Monday - Friday: 9:00 AM - 6:00 PM
Saturday: 10:00 AM - 4:00 PM
Sunday: Closed

Is there anything specific you'd like to contact us about?`
