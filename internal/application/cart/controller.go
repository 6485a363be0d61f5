package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/techstore/storefront/internal/domain/storefront"
	"github.com/techstore/storefront/internal/infrastructure/logger"
	"github.com/techstore/storefront/internal/infrastructure/telemetry"
)

// State is the lifecycle state of one cart page
type State string

const (
	StateLoading     State = "loading"
	StateReady       State = "ready"
	StateEmpty       State = "empty"
	StateError       State = "error"
	StateOrderPlaced State = "order_placed"
)

// Action is a quantity change requested from the cart page
type Action string

const (
	AddOne      Action = "add"
	SubtractOne Action = "subtract"
)

// Error messages shown on the cart page
const (
	MsgLoadFailed     = "Failed to load cart"
	MsgAddFailed      = "Failed to add item to cart"
	MsgSubtractFailed = "Failed to remove item from cart"
	MsgOrderFailed    = "Failed to place order"
)

// ErrUnknownAction is returned by Adjust for an action it cannot perform
var ErrUnknownAction = errors.New("cart: unknown action")

// Gateway is the part of the commerce API a cart page needs
type Gateway interface {
	storefront.CartReader
	storefront.CartMutator
}

// View is an immutable snapshot of a cart page
type View struct {
	ID        string
	State     State
	Cart      *storefront.Cart
	Error     string
	UpdatedAt time.Time
}

// ReconcileOutcome summarizes the two refreshes that follow a mutation
type ReconcileOutcome string

const (
	ReconcileSucceeded ReconcileOutcome = "succeeded"
	ReconcilePartial   ReconcileOutcome = "partial"
	ReconcileFailed    ReconcileOutcome = "failed"
)

// Reconciliation reports how the detail refetch and the store refresh ended
type Reconciliation struct {
	Outcome   ReconcileOutcome
	DetailErr error
	CountErr  error
}

// Err joins the errors of both sides, nil when both succeeded
func (r Reconciliation) Err() error {
	return errors.Join(r.DetailErr, r.CountErr)
}

func newReconciliation(detailErr, countErr error) Reconciliation {
	r := Reconciliation{DetailErr: detailErr, CountErr: countErr}
	switch {
	case detailErr == nil && countErr == nil:
		r.Outcome = ReconcileSucceeded
	case detailErr != nil && countErr != nil:
		r.Outcome = ReconcileFailed
	default:
		r.Outcome = ReconcilePartial
	}
	return r
}

// Controller drives one cart page: it loads the cart detail, applies
// quantity changes and reconciles itself and the shared Store afterwards.
// Actions are not deduplicated; concurrent actions race and the last one to
// complete determines the view.
type Controller struct {
	id      string
	gateway Gateway
	store   *Store
	logger  *zap.Logger
	metrics *telemetry.CartMetrics
	now     func() time.Time

	mu        sync.Mutex
	state     State
	cart      *storefront.Cart
	errMsg    string
	updatedAt time.Time
	reload    *time.Timer
	closed    bool
}

// NewController creates a cart page in the Loading state. Call Load to fetch.
func NewController(id string, gateway Gateway, store *Store, log *zap.Logger, metrics *telemetry.CartMetrics) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		id:      id,
		gateway: gateway,
		store:   store,
		logger:  log.Named("cart_view").With(zap.String("view_id", id)),
		metrics: metrics,
		now:     time.Now,
		state:   StateLoading,
	}
	c.updatedAt = c.now()
	return c
}

// ID returns the view identifier
func (c *Controller) ID() string {
	return c.id
}

// Snapshot returns the current view
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() View {
	v := View{
		ID:        c.id,
		State:     c.state,
		Error:     c.errMsg,
		UpdatedAt: c.updatedAt,
	}
	if c.cart != nil {
		cp := *c.cart
		cp.Items = append([]storefront.CartItem(nil), c.cart.Items...)
		v.Cart = &cp
	}
	return v
}

// Load fetches the cart detail. A failed fetch moves the view to Error and
// keeps the previously displayed cart.
func (c *Controller) Load(ctx context.Context) View {
	c.mu.Lock()
	c.state = StateLoading
	c.touchLocked()
	c.mu.Unlock()

	if err := c.fetch(ctx); err != nil {
		c.fail(ctx, MsgLoadFailed, err, true)
	}
	return c.Snapshot()
}

// Retry re-attempts the cart fetch
func (c *Controller) Retry(ctx context.Context) View {
	return c.Load(ctx)
}

// AddOne adds one unit of productID
func (c *Controller) AddOne(ctx context.Context, productID string) (Reconciliation, error) {
	return c.Adjust(ctx, productID, AddOne)
}

// SubtractOne removes one unit of productID. Whether the line disappears is
// decided by the commerce API.
func (c *Controller) SubtractOne(ctx context.Context, productID string) (Reconciliation, error) {
	return c.Adjust(ctx, productID, SubtractOne)
}

// Adjust applies action to productID, then refetches the cart detail and
// refreshes the shared Store concurrently. A mutation failure is returned
// as an error and leaves the view untouched apart from the error message.
func (c *Controller) Adjust(ctx context.Context, productID string, action Action) (Reconciliation, error) {
	var (
		mutate func(context.Context, string) (storefront.Envelope[storefront.Cart], error)
		msg    string
	)
	switch action {
	case AddOne:
		mutate, msg = c.gateway.AddItem, MsgAddFailed
	case SubtractOne:
		mutate, msg = c.gateway.RemoveItem, MsgSubtractFailed
	default:
		return Reconciliation{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	ctx, span := telemetry.StartSpan(ctx, "cart.adjust",
		telemetry.WithAttribute(telemetry.SpanAttrViewID, c.id),
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID),
		telemetry.WithAttribute(telemetry.SpanAttrOperation, string(action)),
	)
	defer span.End()

	env, err := mutate(ctx, productID)
	if err == nil && !env.OK() {
		err = fmt.Errorf("%s returned status %q", action, env.Status)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		c.fail(ctx, msg, err, false)
		c.metrics.RecordReconciliation(ctx, string(action), "mutation_failed")
		return Reconciliation{}, err
	}

	rec := c.reconcile(ctx)
	if rec.Outcome != ReconcileSucceeded {
		telemetry.RecordError(span, rec.Err())
		c.fail(ctx, msg, rec.Err(), rec.DetailErr != nil)
	} else {
		telemetry.SetOK(span)
	}
	c.metrics.RecordReconciliation(ctx, string(action), string(rec.Outcome))
	return rec, nil
}

// reconcile runs the detail refetch and the store refresh in parallel and
// waits for both.
func (c *Controller) reconcile(ctx context.Context) Reconciliation {
	var detailErr, countErr error
	var g errgroup.Group
	g.Go(func() error {
		detailErr = c.fetch(ctx)
		return nil
	})
	g.Go(func() error {
		if c.store != nil {
			countErr = c.store.Refresh(ctx)
		}
		return nil
	})
	_ = g.Wait()
	return newReconciliation(detailErr, countErr)
}

// fetch reads the cart and applies it to the view
func (c *Controller) fetch(ctx context.Context) error {
	env, err := c.gateway.Cart(ctx)
	if err == nil && !env.OK() {
		err = fmt.Errorf("cart fetch returned status %q", env.Status)
	}
	if err != nil {
		return err
	}

	cart := env.Data
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart = &cart
	c.errMsg = ""
	if cart.IsEmpty() {
		c.state = StateEmpty
	} else {
		c.state = StateReady
	}
	c.touchLocked()
	return nil
}

// fail records a user-visible error. The displayed cart is kept; toError
// moves the view to the Error state.
func (c *Controller) fail(ctx context.Context, msg string, err error, toError bool) {
	logger.WithLogger(ctx, c.logger).Warn(msg, zap.Error(err))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = msg
	if toError {
		c.state = StateError
	}
	c.touchLocked()
}

// markOrderPlaced shows the confirmation and schedules a reload after delay
func (c *Controller) markOrderPlaced(ctx context.Context, delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateOrderPlaced
	c.errMsg = ""
	c.touchLocked()

	if c.reload != nil {
		c.reload.Stop()
	}
	if c.closed {
		return
	}
	detached := context.WithoutCancel(ctx)
	c.reload = time.AfterFunc(delay, func() {
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if !closed {
			c.Load(detached)
		}
	})
}

// Close stops a pending reload. The view is not used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.reload != nil {
		c.reload.Stop()
	}
}

func (c *Controller) touchLocked() {
	c.updatedAt = c.now()
}
