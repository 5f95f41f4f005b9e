package types

// Quality levels supported by the renderer settings presets.
const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
	QualityUltra  = "ultra"
)

// QualityPreset bundles the renderer settings for one quality level.
type QualityPreset struct {
	Shadows          bool   `json:"shadows" yaml:"shadows"`
	AmbientOcclusion bool   `json:"ambient_occlusion" yaml:"ambient_occlusion"`
	Bloom            bool   `json:"bloom" yaml:"bloom"`
	AntiAliasing     bool   `json:"anti_aliasing" yaml:"anti_aliasing"`
	TextureQuality   string `json:"texture_quality" yaml:"texture_quality"`
	DrawDistance     int    `json:"draw_distance" yaml:"draw_distance"`
	RayTracing       bool   `json:"ray_tracing,omitempty" yaml:"ray_tracing"`
}

// Settings expands the preset into the renderer settings map merged into
// SceneDefinition.RendererSettings. The ray_tracing key is present only on
// presets that enable it.
func (p QualityPreset) Settings() map[string]any {
	m := map[string]any{
		"shadows":           p.Shadows,
		"ambient_occlusion": p.AmbientOcclusion,
		"bloom":             p.Bloom,
		"anti_aliasing":     p.AntiAliasing,
		"texture_quality":   p.TextureQuality,
		"draw_distance":     p.DrawDistance,
	}
	if p.RayTracing {
		m["ray_tracing"] = true
	}
	return m
}
