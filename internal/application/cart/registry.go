package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techstore/storefront/internal/domain/shared"
	"github.com/techstore/storefront/internal/infrastructure/telemetry"
)

// RegistryConfig bounds the number and lifetime of cart views
type RegistryConfig struct {
	TTL      time.Duration
	MaxViews int
}

type registryEntry struct {
	controller *Controller
	lastSeen   time.Time
}

// ViewRegistry keeps the live cart pages. Each page load gets its own
// Controller; later actions find it by ID.
type ViewRegistry struct {
	gateway Gateway
	store   *Store
	config  RegistryConfig
	logger  *zap.Logger
	metrics *telemetry.CartMetrics
	now     func() time.Time

	mu    sync.Mutex
	views map[string]*registryEntry
}

// NewViewRegistry creates an empty registry. Zero TTL or MaxViews disable
// the respective bound.
func NewViewRegistry(gateway Gateway, store *Store, cfg RegistryConfig, log *zap.Logger, metrics *telemetry.CartMetrics) *ViewRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &ViewRegistry{
		gateway: gateway,
		store:   store,
		config:  cfg,
		logger:  log,
		metrics: metrics,
		now:     time.Now,
		views:   make(map[string]*registryEntry),
	}
}

// Open creates a new cart page and loads it
func (r *ViewRegistry) Open(ctx context.Context) (*Controller, View) {
	c := NewController(uuid.NewString(), r.gateway, r.store, r.logger, r.metrics)

	r.mu.Lock()
	r.evictExpiredLocked()
	if r.config.MaxViews > 0 && len(r.views) >= r.config.MaxViews {
		r.evictOldestLocked()
	}
	r.views[c.ID()] = &registryEntry{controller: c, lastSeen: r.now()}
	n := len(r.views)
	r.mu.Unlock()

	r.metrics.RecordActiveViews(ctx, n)
	return c, c.Load(ctx)
}

// Get returns the cart page with id. Unknown or expired ids return
// ErrViewNotFound.
func (r *ViewRegistry) Get(id string) (*Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.views[id]
	if !ok {
		return nil, shared.ErrViewNotFound
	}
	if r.expiredLocked(e) {
		e.controller.Close()
		delete(r.views, id)
		return nil, shared.ErrViewNotFound
	}
	e.lastSeen = r.now()
	return e.controller, nil
}

// Len returns the number of live views
func (r *ViewRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Close stops every view
func (r *ViewRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.views {
		e.controller.Close()
		delete(r.views, id)
	}
}

func (r *ViewRegistry) expiredLocked(e *registryEntry) bool {
	return r.config.TTL > 0 && r.now().Sub(e.lastSeen) > r.config.TTL
}

func (r *ViewRegistry) evictExpiredLocked() {
	for id, e := range r.views {
		if r.expiredLocked(e) {
			e.controller.Close()
			delete(r.views, id)
		}
	}
}

func (r *ViewRegistry) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range r.views {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		r.views[oldestID].controller.Close()
		delete(r.views, oldestID)
	}
}
