// Package template loads, caches and composes scene templates. Templates
// are JSON documents that can inherit from a base template; the store
// resolves inheritance, applies customization parameters and keeps a
// TTL-bounded in-memory cache in front of the backing source.
package template

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jmanhype/RealmForge/types"
)

// Source provides raw template documents by type name, before any
// inheritance resolution.
type Source interface {
	// Load returns the named template. Missing templates return an
	// error with code TEMPLATE_NOT_FOUND; unreadable or invalid JSON
	// returns MALFORMED_TEMPLATE.
	Load(ctx context.Context, templateType string) (*types.SceneTemplateDefinition, error)

	// List returns the available template type names.
	List(ctx context.Context) ([]string, error)
}

// FileStore reads templates from a directory, one "<type>.json" file
// per template.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore builds a file-backed source rooted at dir. The directory
// does not need to exist yet; lookups simply miss until it does.
func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{dir: dir, logger: logger}
}

// Dir returns the directory templates are read from.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Load(ctx context.Context, templateType string) (*types.SceneTemplateDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validTemplateType(templateType) {
		return nil, types.NewError(types.ErrTemplateNotFound,
			fmt.Sprintf("invalid template type %q", templateType)).
			WithHTTPStatus(http.StatusNotFound)
	}

	path := filepath.Join(s.dir, templateType+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.NewError(types.ErrTemplateNotFound,
				fmt.Sprintf("template %q not found", templateType)).
				WithHTTPStatus(http.StatusNotFound)
		}
		return nil, types.NewError(types.ErrMalformedTemplate,
			fmt.Sprintf("template %q could not be read", templateType)).
			WithHTTPStatus(http.StatusInternalServerError).
			WithCause(err)
	}

	var tpl types.SceneTemplateDefinition
	if err := json.Unmarshal(data, &tpl); err != nil {
		s.logger.Warn("Malformed template file",
			zap.String("path", path),
			zap.Error(err))
		return nil, types.NewError(types.ErrMalformedTemplate,
			fmt.Sprintf("template %q is not valid JSON", templateType)).
			WithHTTPStatus(http.StatusInternalServerError).
			WithCause(err)
	}
	if tpl.Name == "" {
		tpl.Name = templateType
	}
	return &tpl, nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read template dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names, nil
}

// validTemplateType rejects names that could escape the template
// directory.
func validTemplateType(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
