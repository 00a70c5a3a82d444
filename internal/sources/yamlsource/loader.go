package yamlsource

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/davide/animerge/internal/sources"
)

// LoadFromDir reads every *.yaml and *.yml file under dirPath and builds a
// source from each. Files that fail to parse or validate are skipped and
// reported in one accumulated error; the valid sources still load.
func LoadFromDir(dirPath string, client *http.Client) ([]sources.Source, error) {
	trimmed := strings.TrimSpace(dirPath)
	if trimmed == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read yaml sources dir: %w", err)
	}

	files := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		lower := strings.ToLower(entry.Name())
		if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
			files = append(files, filepath.Join(trimmed, entry.Name()))
		}
	}
	sort.Strings(files)

	loaded := make([]sources.Source, 0, len(files))
	errors := make([]string, 0)

	for _, filePath := range files {
		content, err := os.ReadFile(filePath)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", filepath.Base(filePath), err))
			continue
		}

		var cfg Config
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", filepath.Base(filePath), err))
			continue
		}
		if !cfg.isEnabled() {
			continue
		}

		source, err := New(cfg, client)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", filepath.Base(filePath), err))
			continue
		}
		loaded = append(loaded, source)
	}

	if len(errors) > 0 {
		return loaded, fmt.Errorf("yaml sources failed to load: %s", strings.Join(errors, " | "))
	}

	return loaded, nil
}
