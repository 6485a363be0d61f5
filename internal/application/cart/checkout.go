package cart

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/techstore/storefront/internal/domain/storefront"
	"github.com/techstore/storefront/internal/infrastructure/logger"
	"github.com/techstore/storefront/internal/infrastructure/telemetry"
)

// DefaultConfirmationDelay is how long the order confirmation stays on screen
const DefaultConfirmationDelay = 2 * time.Second

// CheckoutResult describes how far order placement got
type CheckoutResult struct {
	// OrderCreated is true once the commerce API accepted the order, even if
	// a later step failed.
	OrderCreated bool
	// CartStillPopulated is set when the cart read after the order was not
	// empty.
	CartStillPopulated bool
}

// CheckoutSequencer places orders as a fixed sequence: create the order,
// confirm the cart was cleared, refresh the Store, show the confirmation,
// then reload the cart page. No step is retried.
type CheckoutSequencer struct {
	gateway storefront.CartMutator
	store   *Store
	delay   time.Duration
	logger  *zap.Logger
	metrics *telemetry.CartMetrics
}

// NewCheckoutSequencer creates a sequencer. A non-positive delay uses
// DefaultConfirmationDelay.
func NewCheckoutSequencer(gateway storefront.CartMutator, store *Store, delay time.Duration, log *zap.Logger, metrics *telemetry.CartMetrics) *CheckoutSequencer {
	if delay <= 0 {
		delay = DefaultConfirmationDelay
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutSequencer{
		gateway: gateway,
		store:   store,
		delay:   delay,
		logger:  log.Named("checkout"),
		metrics: metrics,
	}
}

// Delay returns how long the confirmation is shown before the reload
func (s *CheckoutSequencer) Delay() time.Duration {
	return s.delay
}

// PlaceOrder runs the order sequence for view. Any failing step aborts the
// sequence and sets "Failed to place order" on the view.
func (s *CheckoutSequencer) PlaceOrder(ctx context.Context, view *Controller) (CheckoutResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "cart.checkout",
		telemetry.WithAttribute(telemetry.SpanAttrViewID, view.ID()),
	)
	defer span.End()
	log := logger.WithLogger(ctx, s.logger).With(zap.String("view_id", view.ID()))

	var result CheckoutResult

	order, err := s.gateway.CreateOrder(ctx)
	if err == nil && !order.OK() {
		err = fmt.Errorf("create order returned status %q", order.Status)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		view.fail(ctx, MsgOrderFailed, err, false)
		s.metrics.RecordCheckout(ctx, "order_failed")
		return result, err
	}
	result.OrderCreated = true
	telemetry.AddEvent(span, "order.created")

	cleared, err := s.gateway.ConfirmCartCleared(ctx)
	if err == nil && !cleared.OK() {
		err = fmt.Errorf("cart confirmation returned status %q", cleared.Status)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Order created but cart confirmation failed", zap.Error(err))
		view.fail(ctx, MsgOrderFailed, err, false)
		s.metrics.RecordCheckout(ctx, "confirmation_failed")
		return result, err
	}
	if !cleared.Data.IsEmpty() {
		result.CartStillPopulated = true
		log.Warn("Cart still populated after order creation",
			zap.Int("units", cleared.Data.UnitCount()),
		)
	}

	if s.store != nil {
		if err := s.store.Refresh(ctx); err != nil {
			log.Warn("Cart store refresh after order failed", zap.Error(err))
		}
	}

	view.markOrderPlaced(ctx, s.delay)
	telemetry.SetOK(span)
	s.metrics.RecordCheckout(ctx, "placed")
	log.Info("Order placed", zap.Bool("cart_still_populated", result.CartStillPopulated))
	return result, nil
}
