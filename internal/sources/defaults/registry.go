package defaults

import (
	"fmt"

	"github.com/davide/animerge/internal/sources"
	"github.com/davide/animerge/internal/sources/native/animesaturn"
	"github.com/davide/animerge/internal/sources/native/animeworld"
	"github.com/davide/animerge/internal/sources/yamlsource"
)

// NewRegistry builds the standard registry: the native scrapers in priority
// order, then any YAML-declared sources from yamlSourcesPath.
func NewRegistry(yamlSourcesPath string) (*sources.Registry, error) {
	registry := sources.NewRegistry()
	_ = registry.Register(animeworld.NewSource())
	_ = registry.Register(animesaturn.NewSource())

	loaded, loadErr := yamlsource.LoadFromDir(yamlSourcesPath, nil)
	for _, source := range loaded {
		if err := registry.Register(source); err != nil {
			if loadErr == nil {
				loadErr = fmt.Errorf("register yaml source %q: %w", source.Key(), err)
			}
		}
	}

	return registry, loadErr
}
