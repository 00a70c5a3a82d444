package yamlsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/davide/animerge/internal/sources"
)

// Source bridges a declaratively configured JSON service into the source
// interface. The remote service does the scraping; this side only maps its
// payloads onto entries, episodes and streams.
type Source struct {
	config     Config
	httpClient *http.Client
}

// chapterSource is a Source whose config declares a chapters endpoint. Only
// this variant satisfies the chapter lister interface, so sources without the
// endpoint are skipped by chapter aggregation instead of erroring.
type chapterSource struct {
	*Source
}

func New(cfg Config, client *http.Client) (sources.Source, error) {
	if err := cfg.normalizeAndValidate(); err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	src := &Source{config: cfg, httpClient: client}
	if cfg.hasChapters() {
		return &chapterSource{Source: src}, nil
	}
	return src, nil
}

func (s *Source) Key() string {
	return s.config.Key
}

func (s *Source) Name() string {
	return s.config.Name
}

func (s *Source) HealthCheck(ctx context.Context) error {
	endpoint := s.config.BaseURL + ensurePathPrefix(s.config.HealthPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	res, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request health: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %d", res.StatusCode)
	}

	return nil
}

func (s *Source) Search(ctx context.Context, query string) ([]sources.Entry, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("query is required")
	}

	values := url.Values{}
	values.Set(s.config.Search.QueryParam, trimmed)

	payload, err := s.fetchJSON(ctx, s.config.Search.Path, values)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.config.Key, err)
	}

	rawItems := getByPath(payload, s.config.Response.SearchItemsPath)
	itemList, ok := rawItems.([]any)
	if !ok {
		return nil, fmt.Errorf("search payload items are invalid")
	}

	entries := make([]sources.Entry, 0, len(itemList))
	for _, rawItem := range itemList {
		itemMap, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		entry, err := s.mapEntry(itemMap)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *Source) Episodes(ctx context.Context, id string) ([]sources.Episode, error) {
	return s.fetchNumbered(ctx, s.config.Episodes, s.config.Response.EpisodeItemsPath, id)
}

func (c *chapterSource) Chapters(ctx context.Context, id string) ([]sources.Chapter, error) {
	episodes, err := c.fetchNumbered(ctx, c.config.Chapters, c.config.Response.ChapterItemsPath, id)
	if err != nil {
		return nil, err
	}

	chapters := make([]sources.Chapter, 0, len(episodes))
	for _, episode := range episodes {
		chapters = append(chapters, sources.Chapter{Number: episode.Number, ID: episode.ID, URL: episode.URL})
	}
	return chapters, nil
}

func (s *Source) StreamURL(ctx context.Context, episodeID string) (*sources.Stream, error) {
	trimmed := strings.TrimSpace(episodeID)
	if trimmed == "" {
		return nil, fmt.Errorf("episode id is required")
	}

	values := url.Values{}
	values.Set(s.config.Stream.IDParam, trimmed)

	payload, err := s.fetchJSON(ctx, s.config.Stream.Path, values)
	if err != nil {
		return nil, fmt.Errorf("stream %s: %w", s.config.Key, err)
	}

	rawItem := getByPath(payload, s.config.Response.StreamItemPath)
	itemMap, ok := rawItem.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("stream payload item is invalid")
	}

	streamURL, _ := toString(itemMap[s.config.Response.StreamURLField])
	streamURL = strings.TrimSpace(streamURL)
	if streamURL == "" {
		return nil, fmt.Errorf("missing stream url field")
	}

	embed, _ := toString(itemMap[s.config.Response.EmbedField])
	return &sources.Stream{URL: streamURL, Embed: strings.TrimSpace(embed)}, nil
}

func (s *Source) fetchNumbered(ctx context.Context, endpoint ListConfig, itemsPath string, id string) ([]sources.Episode, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("id is required")
	}

	values := url.Values{}
	values.Set(endpoint.IDParam, trimmed)

	payload, err := s.fetchJSON(ctx, endpoint.Path, values)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.config.Key, err)
	}

	rawItems := getByPath(payload, itemsPath)
	itemList, ok := rawItems.([]any)
	if !ok {
		return nil, fmt.Errorf("list payload items are invalid")
	}

	episodes := make([]sources.Episode, 0, len(itemList))
	for _, rawItem := range itemList {
		itemMap, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}

		number, ok := toFloat(itemMap[s.config.Response.NumberField])
		if !ok {
			continue
		}
		itemID, ok := toString(itemMap[s.config.Response.IDField])
		if !ok || strings.TrimSpace(itemID) == "" {
			continue
		}
		itemURL, _ := toString(itemMap[s.config.Response.URLField])

		episodes = append(episodes, sources.Episode{
			Number: number,
			ID:     strings.TrimSpace(itemID),
			URL:    strings.TrimSpace(itemURL),
		})
	}

	return episodes, nil
}

func (s *Source) fetchJSON(ctx context.Context, path string, values url.Values) (map[string]any, error) {
	endpoint := s.config.BaseURL + ensurePathPrefix(path) + "?" + values.Encode()

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if len(s.config.AllowedHosts) > 0 && !hostAllowed(parsed.Hostname(), s.config.AllowedHosts) {
		return nil, fmt.Errorf("host %q is not allowed", parsed.Hostname())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d", res.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	return payload, nil
}

func (s *Source) mapEntry(item map[string]any) (sources.Entry, error) {
	id, ok := toString(item[s.config.Response.IDField])
	if !ok || strings.TrimSpace(id) == "" {
		return sources.Entry{}, fmt.Errorf("missing id field")
	}
	title, ok := toString(item[s.config.Response.TitleField])
	if !ok || strings.TrimSpace(title) == "" {
		return sources.Entry{}, fmt.Errorf("missing title field")
	}

	entry := sources.Entry{
		ID:    strings.TrimSpace(id),
		Title: strings.TrimSpace(title),
	}

	if altTitle, ok := toString(item[s.config.Response.AltTitleField]); ok {
		entry.AltTitle = strings.TrimSpace(altTitle)
	}
	if urlValue, ok := toString(item[s.config.Response.URLField]); ok {
		entry.URL = strings.TrimSpace(urlValue)
	}
	if poster, ok := toString(item[s.config.Response.PosterField]); ok {
		entry.Poster = strings.TrimSpace(poster)
	}
	if cover, ok := toString(item[s.config.Response.CoverField]); ok {
		entry.Cover = strings.TrimSpace(cover)
	}
	if description, ok := toString(item[s.config.Response.DescriptionField]); ok {
		entry.Description = strings.TrimSpace(description)
	}

	return entry, nil
}

func hostAllowed(host string, allowedHosts []string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return false
	}
	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func ensurePathPrefix(rawPath string) string {
	rawPath = strings.TrimSpace(rawPath)
	if rawPath == "" {
		return ""
	}
	if strings.HasPrefix(rawPath, "/") {
		return rawPath
	}
	return "/" + rawPath
}

func getByPath(input map[string]any, dottedPath string) any {
	dottedPath = strings.TrimSpace(dottedPath)
	if dottedPath == "" {
		return input
	}

	current := any(input)
	for _, segment := range strings.Split(dottedPath, ".") {
		asMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = asMap[segment]
	}
	return current
}

func toString(input any) (string, bool) {
	switch value := input.(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	default:
		return "", false
	}
}

func toFloat(input any) (float64, bool) {
	switch value := input.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
