// Package visualization generates Three.js scene, character and
// template payloads. Service is the single entry point the API layer
// talks to; it owns quality preset resolution, default scene assembly,
// template composition and the active scene registry.
package visualization

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jmanhype/RealmForge/assets"
	"github.com/jmanhype/RealmForge/config"
	"github.com/jmanhype/RealmForge/internal/cache"
	"github.com/jmanhype/RealmForge/internal/metrics"
	"github.com/jmanhype/RealmForge/types"
	"github.com/jmanhype/RealmForge/visualization/animation"
	"github.com/jmanhype/RealmForge/visualization/codegen"
	"github.com/jmanhype/RealmForge/visualization/template"
)

// Service generates visualization payloads. Construct with NewService;
// the zero value is not usable.
type Service struct {
	cfg       config.VisualizationConfig
	logger    *zap.Logger
	metrics   *metrics.Collector
	respCache *cache.Manager
	cacheTTL  time.Duration
	templates *template.Store
	registry  *SceneRegistry
	generator *codegen.Generator
	anims     *animation.System
	resolver  assets.Resolver
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches a collector; without it the service records
// nothing.
func WithMetrics(collector *metrics.Collector) ServiceOption {
	return func(s *Service) { s.metrics = collector }
}

// WithResponseCache enables the Redis-backed template response cache.
func WithResponseCache(manager *cache.Manager, ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.respCache = manager
		s.cacheTTL = ttl
	}
}

func WithAssetResolver(resolver assets.Resolver) ServiceOption {
	return func(s *Service) { s.resolver = resolver }
}

// NewService builds a Service over the given template store.
func NewService(cfg config.VisualizationConfig, templates *template.Store, opts ...ServiceOption) *Service {
	s := &Service{
		cfg:       cfg,
		logger:    zap.NewNop(),
		templates: templates,
		generator: codegen.NewGenerator(),
		anims:     animation.NewSystem(),
		resolver:  assets.NopResolver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, seq := range animation.StandardCharacterSequences() {
		s.anims.RegisterSequence(seq)
	}
	s.registry = NewSceneRegistry(cfg.MaxActiveScenes, s.logger, s.metrics)
	return s
}

// Registry exposes the active scene registry for the streaming layer.
func (s *Service) Registry() *SceneRegistry { return s.registry }

// Templates exposes the template store, mainly for cache invalidation
// wiring.
func (s *Service) Templates() *template.Store { return s.templates }

// QualityPresets returns a copy of the configured presets.
func (s *Service) QualityPresets() map[string]types.QualityPreset {
	out := make(map[string]types.QualityPreset, len(s.cfg.QualityPresets))
	for k, v := range s.cfg.QualityPresets {
		out[k] = v
	}
	return out
}

// PresetFor resolves a quality level name. Unknown levels are a client
// error naming the accepted values.
func (s *Service) PresetFor(level string) (types.QualityPreset, error) {
	preset, ok := s.cfg.QualityPresets[level]
	if !ok {
		known := make([]string, 0, len(s.cfg.QualityPresets))
		for k := range s.cfg.QualityPresets {
			known = append(known, k)
		}
		sort.Strings(known)
		return types.QualityPreset{}, types.NewError(types.ErrInvalidQualityLevel,
			fmt.Sprintf("unknown quality level %q, expected one of: %s", level, strings.Join(known, ", "))).
			WithHTTPStatus(http.StatusBadRequest).
			WithComponent("visualization")
	}
	return preset, nil
}

// GenerateScene builds a new scene for a player at a location. The
// scene is registered for later updates and streaming.
func (s *Service) GenerateScene(ctx context.Context, req *types.SceneRequest) (_ *types.SceneResponse, err error) {
	start := time.Now()
	defer func() { s.observe("scene", req.QualityLevel, start, err) }()
	defer s.recoverOp("generate_scene", &err)

	if req.QualityLevel == "" && s.cfg.DefaultQuality != "" {
		req.QualityLevel = s.cfg.DefaultQuality
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.rethrow("generate_scene", err)
	}
	preset, err := s.PresetFor(req.QualityLevel)
	if err != nil {
		return nil, s.rethrow("generate_scene", err)
	}

	sceneID := "scene_" + uuid.NewString()
	scene := NewDefaultScene(sceneID, req.PlayerID, req.LocationID)
	scene.RendererSettings = mergeSettings(req.RendererSettings, preset.Settings())
	scene.PostProcessing = presetEffects(preset)

	if err := s.registry.Register(scene); err != nil {
		return nil, s.rethrow("generate_scene", err)
	}

	assetURLs := map[string]string{}
	if req.IncludeAssets {
		if url := s.resolver.Resolve(assets.KindSkybox, req.LocationID); url != "" {
			assetURLs["skybox"] = url
		}
	}

	s.logger.Info("Scene generated",
		zap.String("scene_id", sceneID),
		zap.String("player_id", req.PlayerID),
		zap.String("location_id", req.LocationID),
		zap.String("quality_level", req.QualityLevel))

	return &types.SceneResponse{
		RequestID:       uuid.NewString(),
		SceneID:         sceneID,
		PlayerID:        req.PlayerID,
		LocationID:      req.LocationID,
		SceneDefinition: scene,
		GeneratedCode:   s.generator.GenerateSceneCode(scene),
		AssetURLs:       assetURLs,
		Meta: types.ResponseMeta{
			QualityLevel: req.QualityLevel,
			GeneratedAt:  time.Now().UTC(),
		},
	}, nil
}

// GenerateCharacterModel builds a primitive character model plus its
// loader and animation code.
func (s *Service) GenerateCharacterModel(ctx context.Context, req *types.CharacterRequest) (_ *types.CharacterResponse, err error) {
	start := time.Now()
	defer func() { s.observe("character", req.QualityLevel, start, err) }()
	defer s.recoverOp("generate_character_model", &err)

	if req.QualityLevel == "" && s.cfg.DefaultQuality != "" {
		req.QualityLevel = s.cfg.DefaultQuality
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.rethrow("generate_character_model", err)
	}
	if _, err := s.PresetFor(req.QualityLevel); err != nil {
		return nil, s.rethrow("generate_character_model", err)
	}

	model := BuildCharacterModel(req)

	var code strings.Builder
	code.WriteString(s.generator.GenerateCharacterCode(model))
	if req.WantAnimations() {
		code.WriteString("\n")
		target := codegen.Ident(model.ID)
		for _, name := range s.anims.SequenceNames() {
			seq, _ := s.anims.Sequence(name)
			code.WriteString(s.anims.GenerateSequenceCode(target, seq))
		}
	}

	assetURLs := map[string]string{}
	if url := assets.ModelURL(s.resolver, req.CharacterType+".glb"); url != "" {
		assetURLs["model"] = url
	}

	s.logger.Info("Character model generated",
		zap.String("character_id", req.CharacterID),
		zap.String("character_type", req.CharacterType),
		zap.Bool("animations", req.WantAnimations()))

	return &types.CharacterResponse{
		RequestID:       uuid.NewString(),
		CharacterID:     req.CharacterID,
		ModelDefinition: model,
		GeneratedCode:   code.String(),
		AssetURLs:       assetURLs,
		Meta: types.ResponseMeta{
			QualityLevel: req.QualityLevel,
			GeneratedAt:  time.Now().UTC(),
		},
	}, nil
}

// GetSceneTemplate resolves a template, applies customization
// parameters and renders the resulting scene. Responses are cached in
// Redis when a response cache is configured.
func (s *Service) GetSceneTemplate(ctx context.Context, req *types.SceneTemplateRequest) (_ *types.SceneTemplateResponse, err error) {
	start := time.Now()
	defer func() { s.observe("template", req.QualityLevel, start, err) }()
	defer s.recoverOp("get_scene_template", &err)

	if req.QualityLevel == "" && s.cfg.DefaultQuality != "" {
		req.QualityLevel = s.cfg.DefaultQuality
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, s.rethrow("get_scene_template", err)
	}
	preset, err := s.PresetFor(req.QualityLevel)
	if err != nil {
		return nil, s.rethrow("get_scene_template", err)
	}

	var cacheKey string
	if s.respCache != nil {
		cacheKey = cache.TemplateResponseKey(req.TemplateType, req.QualityLevel, req.TemplateParameters)
		if cached, cerr := s.respCache.GetTemplateResponse(ctx, cacheKey); cerr == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheHit("template_response")
			}
			return cached, nil
		} else if cache.IsCacheMiss(cerr) && s.metrics != nil {
			s.metrics.RecordCacheMiss("template_response")
		}
	}

	loadStart := time.Now()
	tpl, fromCache, err := s.templates.Get(ctx, req.TemplateType)
	if s.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		s.metrics.RecordTemplateLoad(req.TemplateType, status, time.Since(loadStart))
		if err == nil {
			if fromCache {
				s.metrics.RecordCacheHit("template_store")
			} else {
				s.metrics.RecordCacheMiss("template_store")
			}
		}
	}
	if err != nil {
		return nil, s.rethrow("get_scene_template", err)
	}

	customized := template.Customize(tpl, req.TemplateParameters)
	scene := sceneFromTemplate("scene_"+uuid.NewString(), customized)
	scene.RendererSettings = preset.Settings()
	scene.PostProcessing = presetEffects(preset)

	resp := &types.SceneTemplateResponse{
		TemplateType:        req.TemplateType,
		TemplateParameters:  req.TemplateParameters,
		SceneDefinition:     scene,
		JSCode:              s.generator.GenerateSceneCode(scene),
		Assets:              map[string]string{},
		UsageInstructions:   customized.UsageInstructions,
		CustomizationPoints: customized.CustomizationPoints,
		Meta: types.ResponseMeta{
			QualityLevel: req.QualityLevel,
			GeneratedAt:  time.Now().UTC(),
		},
	}

	if s.respCache != nil {
		if cerr := s.respCache.SetTemplateResponse(ctx, cacheKey, resp, s.cacheTTL); cerr != nil {
			s.logger.Warn("Failed to cache template response",
				zap.String("template_type", req.TemplateType),
				zap.Error(cerr))
		}
	}
	return resp, nil
}

// UpdateScene applies a partial update to an active scene and notifies
// stream subscribers.
func (s *Service) UpdateScene(ctx context.Context, sceneID string, req *types.SceneUpdateRequest) (_ *types.SceneDefinition, err error) {
	defer s.recoverOp("update_scene", &err)

	if err := req.Validate(); err != nil {
		return nil, s.rethrow("update_scene", err)
	}
	scene, err := s.registry.Update(sceneID, req.Updates)
	if err != nil {
		return nil, s.rethrow("update_scene", err)
	}

	s.logger.Info("Scene updated",
		zap.String("scene_id", sceneID),
		zap.Int("update_keys", len(req.Updates)))
	return scene, nil
}

// GetScene returns an active scene by ID.
func (s *Service) GetScene(sceneID string) (*types.SceneDefinition, error) {
	scene, err := s.registry.Get(sceneID)
	if err != nil {
		return nil, s.rethrow("get_scene", err)
	}
	return scene, nil
}

// rethrow logs a failed operation and returns the error unchanged.
func (s *Service) rethrow(op string, err error) error {
	s.logger.Error("Visualization operation failed",
		zap.String("operation", op),
		zap.String("error_code", string(types.GetErrorCode(err))),
		zap.Error(err))
	return err
}

// recoverOp converts a panic in an operation into a generation error.
func (s *Service) recoverOp(op string, err *error) {
	if r := recover(); r != nil {
		s.logger.Error("Visualization operation panicked",
			zap.String("operation", op),
			zap.Any("panic", r))
		*err = types.NewError(types.ErrGenerationFailed,
			fmt.Sprintf("%s failed unexpectedly", op)).
			WithHTTPStatus(http.StatusInternalServerError).
			WithComponent("visualization")
	}
}

func (s *Service) observe(kind, quality string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordGeneration(kind, quality, status, time.Since(start))
}

// mergeSettings overlays the quality preset's settings on top of any
// request-supplied ones. The preset wins on conflicts so a declared
// quality level always means the same renderer configuration; request
// settings survive only for keys the preset does not define.
func mergeSettings(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// presetEffects expands a quality preset into post-processing passes.
func presetEffects(preset types.QualityPreset) []types.PostProcessingEffect {
	var effects []types.PostProcessingEffect
	if preset.Bloom {
		effects = append(effects, types.PostProcessingEffect{
			ID:      "bloom",
			Type:    "bloom",
			Enabled: true,
		})
	}
	if preset.AmbientOcclusion {
		effects = append(effects, types.PostProcessingEffect{
			ID:      "ssao",
			Type:    "ssao",
			Enabled: true,
		})
	}
	return effects
}
