package cartclient

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

// DefaultDebounce is how long quantity edits to one line are coalesced.
const DefaultDebounce = 500 * time.Millisecond

// Summary mirrors the server's checkout preview for the local cart.
type Summary struct {
	TotalItems int `json:"totalItems"`
	pricing.Breakdown
}

type Option func(*Controller)

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSyncErrorHandler is called when a debounced quantity sync fails,
// after the mirror has been reloaded from the server.
func WithSyncErrorHandler(fn func(productID string, err error)) Option {
	return func(c *Controller) { c.onSyncError = fn }
}

// pendingUpdate is one scheduled quantity sync. seq tells a superseded
// timer callback apart from the live one.
type pendingUpdate struct {
	qty   int
	seq   uint64
	timer *time.Timer
}

// Controller keeps a local cart mirror. Removals and quantity edits are
// applied locally before the server answers; when the server rejects one the
// mirror is replaced by a fresh fetch.
type Controller struct {
	api         API
	delay       time.Duration
	logger      *log.Logger
	onSyncError func(string, error)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	cart    *domain.Cart
	pending map[string]*pendingUpdate
	seq     uint64
	closed  bool
}

func NewController(api API, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		api:     api,
		delay:   DefaultDebounce,
		logger:  log.New(io.Discard, "", 0),
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[string]*pendingUpdate),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cart returns a copy of the mirror, or nil when the user has no cart.
func (c *Controller) Cart() *domain.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Clone()
}

func (c *Controller) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cart == nil {
		return 0
	}
	return c.cart.TotalItems
}

func (c *Controller) Quantity(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cart == nil {
		return 0
	}
	return c.cart.Quantity(productID)
}

// Summary prices the mirror with the same policy the server uses. A missing
// cart has an all-zero summary.
func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cart == nil {
		return Summary{}
	}
	return Summary{TotalItems: c.cart.TotalItems, Breakdown: pricing.Quote(c.cart.TotalPrice)}
}

// Fetch replaces the mirror with the server cart. A 404 leaves no cart.
func (c *Controller) Fetch(ctx context.Context) error {
	cart, err := c.api.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		c.mu.Lock()
		c.cart = nil
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		return err
	}
	c.accept(cart)
	return nil
}

// Add is not optimistic: the server prices the line and checks stock.
func (c *Controller) Add(ctx context.Context, productID string, qty int) error {
	cart, err := c.api.Add(ctx, productID, qty)
	if err != nil {
		return err
	}
	c.accept(cart)
	return nil
}

// Remove drops the line locally, then on the server.
func (c *Controller) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	c.cancelPendingLocked(productID)
	if c.cart != nil {
		c.cart.RemoveItem(productID)
	}
	c.mu.Unlock()

	cart, err := c.api.Remove(ctx, productID)
	if err != nil {
		c.reload(ctx)
		return err
	}
	c.accept(cart)
	return nil
}

// SetQuantity updates the line locally on every call and schedules one
// server update per line, fired after the debounce delay elapses without a
// newer edit. A quantity of zero or less removes the line immediately.
func (c *Controller) SetQuantity(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return c.Remove(ctx, productID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClosed
	}
	setLocal(c.cart, productID, qty)

	c.cancelPendingLocked(productID)
	c.seq++
	p := &pendingUpdate{qty: qty, seq: c.seq}
	c.wg.Add(1)
	p.timer = time.AfterFunc(c.delay, func() {
		defer c.wg.Done()
		c.fire(productID, p.seq)
	})
	c.pending[productID] = p
	return nil
}

// Flush sends every scheduled quantity update now and waits for them.
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.Lock()
	due := make(map[string]int, len(c.pending))
	for id, p := range c.pending {
		due[id] = p.qty
		c.cancelPendingLocked(id)
	}
	c.mu.Unlock()

	var errs []error
	for id, qty := range due {
		if err := c.sync(ctx, id, qty); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear drops scheduled updates and empties the cart on the server.
func (c *Controller) Clear(ctx context.Context) error {
	c.mu.Lock()
	for id := range c.pending {
		c.cancelPendingLocked(id)
	}
	c.mu.Unlock()

	if err := c.api.Clear(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	c.cart = nil
	c.mu.Unlock()
	return nil
}

// Close discards scheduled updates and waits for in-flight ones to return.
// Call Flush first to keep them.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	for id := range c.pending {
		c.cancelPendingLocked(id)
	}
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
}

var errClosed = errors.New("cartclient: controller closed")

// cancelPendingLocked stops the scheduled update for productID. A timer that
// already fired sees its entry gone and does nothing.
func (c *Controller) cancelPendingLocked(productID string) {
	p, ok := c.pending[productID]
	if !ok {
		return
	}
	delete(c.pending, productID)
	if p.timer != nil && p.timer.Stop() {
		c.wg.Done()
	}
}

func (c *Controller) fire(productID string, seq uint64) {
	c.mu.Lock()
	p, ok := c.pending[productID]
	if !ok || p.seq != seq {
		c.mu.Unlock()
		return
	}
	delete(c.pending, productID)
	c.mu.Unlock()

	if err := c.sync(c.ctx, productID, p.qty); err != nil && c.onSyncError != nil {
		c.onSyncError(productID, err)
	}
}

func (c *Controller) sync(ctx context.Context, productID string, qty int) error {
	cart, err := c.api.Update(ctx, productID, qty)
	if err != nil {
		c.logger.Printf("cartclient: update product_id=%s qty=%d error=%v", productID, qty, err)
		c.reload(ctx)
		return err
	}
	c.accept(cart)
	return nil
}

// accept installs a server cart and replays quantity edits that have not
// been sent yet, so a response for one line does not undo another.
func (c *Controller) accept(cart *domain.Cart) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart = cart.Clone()
	for id, p := range c.pending {
		setLocal(c.cart, id, p.qty)
	}
}

// reload overwrites the mirror from the server after a failed write.
func (c *Controller) reload(ctx context.Context) {
	if ctx.Err() != nil {
		ctx = c.ctx
	}
	if err := c.Fetch(ctx); err != nil {
		c.logger.Printf("cartclient: reload error=%v", err)
	}
}

// setLocal edits a line quantity without stock checks; the server has the
// final word.
func setLocal(cart *domain.Cart, productID string, qty int) {
	if cart == nil {
		return
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = qty
			cart.Recalculate()
			return
		}
	}
}
