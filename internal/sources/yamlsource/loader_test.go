package yamlsource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()

	valid := `
key: animeunity
name: AnimeUnity
enabled: true
base_url: http://localhost:9999
search:
  path: /search
episodes:
  path: /episodes
stream:
  path: /stream
`

	disabled := `
key: animepahe
name: AnimePahe
enabled: false
base_url: http://localhost:9999
search:
  path: /search
episodes:
  path: /episodes
stream:
  path: /stream
`

	if err := os.WriteFile(filepath.Join(tmpDir, "a.yaml"), []byte(valid), 0o644); err != nil {
		t.Fatalf("write valid yaml: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "b.yml"), []byte(disabled), 0o644); err != nil {
		t.Fatalf("write disabled yaml: %v", err)
	}

	loaded, err := LoadFromDir(tmpDir, nil)
	if err != nil {
		t.Fatalf("load yaml dir: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 loaded source, got %d", len(loaded))
	}
	if loaded[0].Key() != "animeunity" {
		t.Fatalf("expected animeunity key, got %s", loaded[0].Key())
	}
}

func TestLoadFromDirAccumulatesErrors(t *testing.T) {
	tmpDir := t.TempDir()

	broken := `
key: ""
name: Broken
base_url: http://localhost:9999
search:
  path: /search
episodes:
  path: /episodes
stream:
  path: /stream
`

	valid := `
key: animeunity
name: AnimeUnity
base_url: http://localhost:9999
search:
  path: /search
episodes:
  path: /episodes
stream:
  path: /stream
`

	if err := os.WriteFile(filepath.Join(tmpDir, "broken.yaml"), []byte(broken), 0o644); err != nil {
		t.Fatalf("write broken yaml: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "valid.yaml"), []byte(valid), 0o644); err != nil {
		t.Fatalf("write valid yaml: %v", err)
	}

	loaded, err := LoadFromDir(tmpDir, nil)
	if err == nil {
		t.Fatalf("expected accumulated error for broken file")
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Fatalf("expected error to name the broken file, got %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected valid source still loaded, got %d", len(loaded))
	}
}

func TestLoadFromDirMissingDirIsNotAnError(t *testing.T) {
	loaded, err := LoadFromDir(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	if err != nil {
		t.Fatalf("missing dir should not error, got %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected no sources, got %d", len(loaded))
	}
}
