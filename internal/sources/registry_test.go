package sources_test

import (
	"context"
	"errors"
	"testing"

	"github.com/davide/animerge/internal/sources"
)

type fakeSource struct {
	key    string
	name   string
	health error
}

func (f *fakeSource) Key() string                        { return f.key }
func (f *fakeSource) Name() string                       { return f.name }
func (f *fakeSource) HealthCheck(context.Context) error  { return f.health }
func (f *fakeSource) Search(context.Context, string) ([]sources.Entry, error) {
	return nil, nil
}
func (f *fakeSource) Episodes(context.Context, string) ([]sources.Episode, error) {
	return nil, nil
}
func (f *fakeSource) StreamURL(context.Context, string) (*sources.Stream, error) {
	return nil, nil
}

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	r := sources.NewRegistry()

	if err := r.Register(&fakeSource{key: "animeworld", name: "AnimeWorld"}); err != nil {
		t.Fatalf("register animeworld: %v", err)
	}
	if err := r.Register(&fakeSource{key: "animesaturn", name: "AnimeSaturn", health: errors.New("down")}); err != nil {
		t.Fatalf("register animesaturn: %v", err)
	}

	ordered := r.Ordered()
	if len(ordered) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(ordered))
	}
	if ordered[0].Key() != "animeworld" || ordered[1].Key() != "animesaturn" {
		t.Fatalf("expected registration order preserved, got %s,%s", ordered[0].Key(), ordered[1].Key())
	}

	list := r.List()
	if list[0].Priority != 0 || list[1].Priority != 1 {
		t.Fatalf("expected priorities 0,1 got %d,%d", list[0].Priority, list[1].Priority)
	}

	health := r.Health(context.Background())
	if len(health) != 2 {
		t.Fatalf("expected 2 health items, got %d", len(health))
	}
	if !health[0].Healthy {
		t.Fatalf("expected animeworld healthy")
	}
	if health[1].Healthy || health[1].Error != "down" {
		t.Fatalf("expected animesaturn unhealthy with error, got %+v", health[1])
	}
}

func TestRegistryRejectsDuplicatesAndEmptyKeys(t *testing.T) {
	r := sources.NewRegistry()

	if err := r.Register(&fakeSource{key: "animeworld"}); err != nil {
		t.Fatalf("register animeworld: %v", err)
	}
	if err := r.Register(&fakeSource{key: "animeworld"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := r.Register(&fakeSource{key: ""}); err == nil {
		t.Fatalf("expected empty key registration to fail")
	}
	if err := r.Register(nil); err == nil {
		t.Fatalf("expected nil source registration to fail")
	}

	if _, ok := r.Get("animeworld"); !ok {
		t.Fatalf("expected animeworld to be registered")
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatalf("expected missing source lookup to fail")
	}
}
