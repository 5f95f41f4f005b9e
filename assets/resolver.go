// Package assets resolves asset references in generated scenes to
// downloadable URLs.
package assets

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind classifies an asset referenced from a generated scene.
type Kind string

const (
	KindModel     Kind = "model"
	KindTexture   Kind = "texture"
	KindAnimation Kind = "animation"
	KindSkybox    Kind = "skybox"
)

// Resolver maps logical asset names to URLs a client can fetch.
// Generation never depends on the assets actually existing; a resolver
// only decides what URL the scene payload advertises.
type Resolver interface {
	// Resolve returns the URL for the named asset, or "" when the
	// resolver has no mapping for it.
	Resolve(kind Kind, name string) string
}

// NopResolver resolves every asset to the empty string. Scenes built
// with it carry no asset URLs, which is the default for primitive-only
// demo scenes.
type NopResolver struct{}

func (NopResolver) Resolve(Kind, string) string { return "" }

// StaticResolver prefixes asset names with a fixed base URL, one path
// segment per kind.
type StaticResolver struct {
	baseURL string
}

// NewStaticResolver builds a resolver rooted at baseURL. A trailing
// slash on baseURL is optional.
func NewStaticResolver(baseURL string) *StaticResolver {
	return &StaticResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

func (r *StaticResolver) Resolve(kind Kind, name string) string {
	if name == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", r.baseURL, kind, url.PathEscape(name))
}

// ModelURL is a convenience for the most common lookup.
func ModelURL(r Resolver, name string) string {
	if r == nil {
		return ""
	}
	return r.Resolve(KindModel, name)
}
