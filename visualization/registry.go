package visualization

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jmanhype/RealmForge/internal/metrics"
	"github.com/jmanhype/RealmForge/types"
)

// SceneRegistry tracks generated scenes so later updates can address
// them by ID, and fans scene updates out to stream subscribers. All
// methods are safe for concurrent use.
type SceneRegistry struct {
	mu        sync.RWMutex
	scenes    map[string]*types.SceneDefinition
	subs      map[string]map[chan types.SceneUpdate]struct{}
	maxScenes int
	logger    *zap.Logger
	metrics   *metrics.Collector
}

// NewSceneRegistry builds a registry bounded to maxScenes entries; zero
// or negative means unbounded. The metrics collector may be nil.
func NewSceneRegistry(maxScenes int, logger *zap.Logger, collector *metrics.Collector) *SceneRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SceneRegistry{
		scenes:    make(map[string]*types.SceneDefinition),
		subs:      make(map[string]map[chan types.SceneUpdate]struct{}),
		maxScenes: maxScenes,
		logger:    logger,
		metrics:   collector,
	}
}

// Register stores a scene. When the registry is full the oldest entries
// are not evicted; the caller gets a service unavailable error instead.
func (r *SceneRegistry) Register(scene *types.SceneDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenes[scene.SceneID]; !exists && r.maxScenes > 0 && len(r.scenes) >= r.maxScenes {
		return types.NewError(types.ErrServiceUnavailable,
			fmt.Sprintf("active scene limit %d reached", r.maxScenes)).
			WithHTTPStatus(http.StatusServiceUnavailable).
			WithRetryable(true)
	}
	r.scenes[scene.SceneID] = scene
	r.recordCount()
	return nil
}

// Get returns the scene for id, or a scene not found error.
func (r *SceneRegistry) Get(id string) (*types.SceneDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	scene, ok := r.scenes[id]
	if !ok {
		return nil, types.NewError(types.ErrSceneNotFound,
			fmt.Sprintf("scene %q not found", id)).
			WithHTTPStatus(http.StatusNotFound)
	}
	return scene, nil
}

// Update applies a shallow key merge onto the stored scene and notifies
// subscribers. Unknown scene IDs return a scene not found error.
func (r *SceneRegistry) Update(id string, updates map[string]any) (*types.SceneDefinition, error) {
	r.mu.Lock()
	scene, ok := r.scenes[id]
	if !ok {
		r.mu.Unlock()
		return nil, types.NewError(types.ErrSceneNotFound,
			fmt.Sprintf("scene %q not found", id)).
			WithHTTPStatus(http.StatusNotFound)
	}

	updated, err := applyUpdates(scene, updates)
	if err != nil {
		r.mu.Unlock()
		return nil, types.NewError(types.ErrInvalidRequest, "scene updates could not be applied").
			WithHTTPStatus(http.StatusBadRequest).
			WithCause(err)
	}
	updated.SceneID = id
	r.scenes[id] = updated
	r.mu.Unlock()

	r.publish(types.SceneUpdate{
		SceneID:   id,
		Scene:     updated,
		UpdatedAt: time.Now().UTC(),
	})
	return updated, nil
}

// Remove drops a scene and closes its subscriber channels.
func (r *SceneRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scenes, id)
	for ch := range r.subs[id] {
		close(ch)
	}
	delete(r.subs, id)
	r.recordCount()
}

// Count returns the number of registered scenes.
func (r *SceneRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scenes)
}

// Subscribe returns a channel receiving updates for the scene, plus a
// cancel function that must be called when the subscriber is done.
// Slow subscribers miss updates rather than block publishers.
func (r *SceneRegistry) Subscribe(sceneID string) (<-chan types.SceneUpdate, func()) {
	ch := make(chan types.SceneUpdate, 16)

	r.mu.Lock()
	if r.subs[sceneID] == nil {
		r.subs[sceneID] = make(map[chan types.SceneUpdate]struct{})
	}
	r.subs[sceneID][ch] = struct{}{}
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.subs[sceneID][ch]; ok {
			delete(r.subs[sceneID], ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (r *SceneRegistry) publish(update types.SceneUpdate) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sent := 0
	for ch := range r.subs[update.SceneID] {
		select {
		case ch <- update:
			sent++
		default:
			r.logger.Warn("Dropping scene update, subscriber too slow",
				zap.String("scene_id", update.SceneID))
		}
	}
	if sent > 0 && r.metrics != nil {
		r.metrics.RecordStreamUpdate(sent)
	}
}

func (r *SceneRegistry) recordCount() {
	if r.metrics != nil {
		r.metrics.SetActiveScenes(len(r.scenes))
	}
}

// applyUpdates merges updates into the scene via its JSON form, so
// update keys use the same names clients see in responses.
func applyUpdates(scene *types.SceneDefinition, updates map[string]any) (*types.SceneDefinition, error) {
	raw, err := json.Marshal(scene)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	for k, v := range updates {
		m[k] = v
	}
	merged, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out types.SceneDefinition
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
