// Package cart implements the cart workflow of the storefront: the shared
// cart count, the per-page cart view and the order placement sequence.
package cart

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/techstore/storefront/internal/domain/shared"
	"github.com/techstore/storefront/internal/domain/storefront"
	"github.com/techstore/storefront/internal/infrastructure/logger"
	"github.com/techstore/storefront/internal/infrastructure/telemetry"
)

type storeState int

const (
	storeUninitialized storeState = iota
	storeActive
	storeTornDown
)

// Store holds the number of units in the server-held cart. One Store is
// shared by every component that shows the cart badge.
type Store struct {
	gateway storefront.CartReader
	logger  *zap.Logger
	metrics *telemetry.CartMetrics

	mu      sync.RWMutex
	state   storeState
	count   int
	loading bool
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithStoreMetrics records the unit count after each refresh
func WithStoreMetrics(m *telemetry.CartMetrics) StoreOption {
	return func(s *Store) { s.metrics = m }
}

// NewStore creates an uninitialized Store. Call Init before reading the count.
func NewStore(gateway storefront.CartReader, log *zap.Logger, opts ...StoreOption) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		gateway: gateway,
		logger:  log.Named("cart_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init activates the store and performs the first cart fetch. The store is
// usable even when that fetch fails; the count then stays at zero.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.state == storeActive {
		s.mu.Unlock()
		return nil
	}
	s.state = storeActive
	s.count = 0
	s.loading = true
	s.mu.Unlock()

	err := s.Refresh(ctx)

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	return err
}

// Refresh re-fetches the cart and recomputes the count. On failure the
// previous count is kept. Concurrent refreshes race; the last one to
// complete determines the count.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	if state != storeActive {
		return shared.ErrCartStoreNotInitialized
	}

	env, err := s.gateway.Cart(ctx)
	if err == nil && !env.OK() {
		err = fmt.Errorf("cart fetch returned status %q", env.Status)
	}
	if err != nil {
		logger.WithLogger(ctx, s.logger).Warn("Cart refresh failed, keeping previous count", zap.Error(err))
		return err
	}

	count := env.Data.UnitCount()
	s.mu.Lock()
	if s.state == storeActive {
		s.count = count
	}
	s.mu.Unlock()

	s.metrics.RecordUnitCount(ctx, count)
	return nil
}

// Count returns the number of units in the cart. Reading the count before
// Init or after Teardown returns ErrCartStoreNotInitialized.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != storeActive {
		return 0, shared.ErrCartStoreNotInitialized
	}
	return s.count, nil
}

// MustCount is like Count but panics on misuse.
func (s *Store) MustCount() int {
	n, err := s.Count()
	if err != nil {
		panic(err)
	}
	return n
}

// Loading reports whether the first fetch is still in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Teardown ends the store's lifecycle. Later reads fail.
func (s *Store) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = storeTornDown
	s.count = 0
	s.loading = false
}
