package template

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jmanhype/RealmForge/types"
)

// Store resolves templates through a TTL cache. Inheritance chains are
// flattened at load time, so cached entries are fully merged documents.
// Concurrent lookups for the same template share one source load.
type Store struct {
	source Source
	ttl    time.Duration
	logger *zap.Logger
	clock  func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry

	group singleflight.Group
}

type cacheEntry struct {
	tpl      *types.SceneTemplateDefinition
	loadedAt time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL bounds cache entry lifetime. Zero means entries never expire
// (invalidation still works).
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

func WithStoreLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// withClock is a test hook for expiry checks.
func withClock(clock func() time.Time) StoreOption {
	return func(s *Store) { s.clock = clock }
}

func NewStore(source Source, opts ...StoreOption) *Store {
	s := &Store{
		source:  source,
		logger:  zap.NewNop(),
		clock:   time.Now,
		entries: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the fully resolved template for templateType. The result
// is shared with the cache; callers must Clone before mutating.
// Failed loads are never cached, so a fixed template file is picked up
// on the next request.
func (s *Store) Get(ctx context.Context, templateType string) (*types.SceneTemplateDefinition, bool, error) {
	if tpl, ok := s.cached(templateType); ok {
		return tpl, true, nil
	}

	v, err, _ := s.group.Do(templateType, func() (any, error) {
		// Another caller may have filled the cache while we queued.
		if tpl, ok := s.cached(templateType); ok {
			return tpl, nil
		}
		tpl, err := s.resolve(ctx, templateType, nil)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.entries[templateType] = cacheEntry{tpl: tpl, loadedAt: s.clock()}
		s.mu.Unlock()
		return tpl, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*types.SceneTemplateDefinition), false, nil
}

// resolve loads a template and merges in its inheritance chain. The
// chain slice carries the types already being resolved for cycle
// detection.
func (s *Store) resolve(ctx context.Context, templateType string, chain []string) (*types.SceneTemplateDefinition, error) {
	for _, seen := range chain {
		if seen == templateType {
			return nil, types.NewError(types.ErrTemplateCycle,
				fmt.Sprintf("template inheritance cycle: %v -> %s", chain, templateType)).
				WithHTTPStatus(http.StatusInternalServerError)
		}
	}

	tpl, err := s.source.Load(ctx, templateType)
	if err != nil {
		return nil, err
	}
	if tpl.BaseTemplate == "" {
		return tpl, nil
	}

	base, err := s.resolve(ctx, tpl.BaseTemplate, append(chain, templateType))
	if err != nil {
		return nil, err
	}
	merged := tpl.Merge(base)
	merged.BaseTemplate = ""
	return merged, nil
}

func (s *Store) cached(templateType string) (*types.SceneTemplateDefinition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[templateType]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && s.clock().Sub(entry.loadedAt) > s.ttl {
		return nil, false
	}
	return entry.tpl, true
}

// Invalidate drops one cache entry.
func (s *Store) Invalidate(templateType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, templateType)
}

// InvalidateAll drops every cache entry.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]cacheEntry)
}

// CachedTypes lists the currently cached template types, sorted.
func (s *Store) CachedTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List proxies to the source; it does not consult the cache.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.source.List(ctx)
}

// Customize clones tpl and overwrites its variables with params. Values
// are replaced wholesale per key; nested maps are not merged.
func Customize(tpl *types.SceneTemplateDefinition, params map[string]any) *types.SceneTemplateDefinition {
	out := tpl.Clone()
	if len(params) == 0 {
		return out
	}
	if out.Variables == nil {
		out.Variables = make(map[string]any, len(params))
	}
	for k, v := range params {
		out.Variables[k] = v
	}
	return out
}
