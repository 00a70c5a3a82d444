package yamlsource

import (
	"fmt"
	"strings"
)

// Config describes a JSON bridge service declared in a YAML file. The
// chapters endpoint is optional; sources without one only serve episodes.
type Config struct {
	Key          string         `yaml:"key"`
	Name         string         `yaml:"name"`
	Enabled      *bool          `yaml:"enabled"`
	BaseURL      string         `yaml:"base_url"`
	AllowedHosts []string       `yaml:"allowed_hosts"`
	HealthPath   string         `yaml:"health_path"`
	Search       SearchConfig   `yaml:"search"`
	Episodes     ListConfig     `yaml:"episodes"`
	Chapters     ListConfig     `yaml:"chapters"`
	Stream       ListConfig     `yaml:"stream"`
	Response     ResponseConfig `yaml:"response"`
}

type SearchConfig struct {
	Path       string `yaml:"path"`
	QueryParam string `yaml:"query_param"`
}

type ListConfig struct {
	Path    string `yaml:"path"`
	IDParam string `yaml:"id_param"`
}

type ResponseConfig struct {
	SearchItemsPath  string `yaml:"search_items_path"`
	EpisodeItemsPath string `yaml:"episode_items_path"`
	ChapterItemsPath string `yaml:"chapter_items_path"`
	StreamItemPath   string `yaml:"stream_item_path"`

	IDField          string `yaml:"id_field"`
	TitleField       string `yaml:"title_field"`
	AltTitleField    string `yaml:"alt_title_field"`
	URLField         string `yaml:"url_field"`
	PosterField      string `yaml:"poster_field"`
	CoverField       string `yaml:"cover_field"`
	DescriptionField string `yaml:"description_field"`
	NumberField      string `yaml:"number_field"`
	StreamURLField   string `yaml:"stream_url_field"`
	EmbedField       string `yaml:"embed_field"`
}

func (c *Config) normalizeAndValidate() error {
	c.Key = strings.TrimSpace(c.Key)
	c.Name = strings.TrimSpace(c.Name)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")

	if c.Key == "" {
		return fmt.Errorf("key is required")
	}
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	if strings.TrimSpace(c.Search.Path) == "" {
		return fmt.Errorf("search.path is required")
	}
	if strings.TrimSpace(c.Episodes.Path) == "" {
		return fmt.Errorf("episodes.path is required")
	}
	if strings.TrimSpace(c.Stream.Path) == "" {
		return fmt.Errorf("stream.path is required")
	}

	if strings.TrimSpace(c.Search.QueryParam) == "" {
		c.Search.QueryParam = "q"
	}
	if strings.TrimSpace(c.Episodes.IDParam) == "" {
		c.Episodes.IDParam = "id"
	}
	if strings.TrimSpace(c.Chapters.IDParam) == "" {
		c.Chapters.IDParam = "id"
	}
	if strings.TrimSpace(c.Stream.IDParam) == "" {
		c.Stream.IDParam = "id"
	}

	if strings.TrimSpace(c.HealthPath) == "" {
		c.HealthPath = "/health"
	}

	if strings.TrimSpace(c.Response.SearchItemsPath) == "" {
		c.Response.SearchItemsPath = "items"
	}
	if strings.TrimSpace(c.Response.EpisodeItemsPath) == "" {
		c.Response.EpisodeItemsPath = "episodes"
	}
	if strings.TrimSpace(c.Response.ChapterItemsPath) == "" {
		c.Response.ChapterItemsPath = "chapters"
	}
	if strings.TrimSpace(c.Response.StreamItemPath) == "" {
		c.Response.StreamItemPath = "stream"
	}
	if strings.TrimSpace(c.Response.IDField) == "" {
		c.Response.IDField = "id"
	}
	if strings.TrimSpace(c.Response.TitleField) == "" {
		c.Response.TitleField = "title"
	}
	if strings.TrimSpace(c.Response.AltTitleField) == "" {
		c.Response.AltTitleField = "alt_title"
	}
	if strings.TrimSpace(c.Response.URLField) == "" {
		c.Response.URLField = "url"
	}
	if strings.TrimSpace(c.Response.PosterField) == "" {
		c.Response.PosterField = "poster"
	}
	if strings.TrimSpace(c.Response.CoverField) == "" {
		c.Response.CoverField = "cover"
	}
	if strings.TrimSpace(c.Response.DescriptionField) == "" {
		c.Response.DescriptionField = "description"
	}
	if strings.TrimSpace(c.Response.NumberField) == "" {
		c.Response.NumberField = "number"
	}
	if strings.TrimSpace(c.Response.StreamURLField) == "" {
		c.Response.StreamURLField = "stream_url"
	}
	if strings.TrimSpace(c.Response.EmbedField) == "" {
		c.Response.EmbedField = "embed"
	}

	if len(c.AllowedHosts) == 0 {
		c.AllowedHosts = []string{}
	}

	return nil
}

func (c *Config) isEnabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

func (c *Config) hasChapters() bool {
	return strings.TrimSpace(c.Chapters.Path) != ""
}
