package animesaturn

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"

	"github.com/davide/animerge/internal/sources"
)

const proxyBaseURL = "https://animesaturn-proxy.onrender.com/proxy?url="

var (
	animeHrefPattern   = regexp.MustCompile(`(?i)href=["'](?:https?://[^"']+)?/anime/([a-z0-9-]+)["']`)
	episodeHrefPattern = regexp.MustCompile(`(?i)href=["'](?:https?://[^"']+)?/ep/([a-z0-9-]+-ep-(\d+(?:\.\d+)?))["']`)
	watchLinkPattern   = regexp.MustCompile(`(?is)href=["']([^"']*watch\?file=[^"']+)["']`)
	videoSourcePattern = regexp.MustCompile(`(?is)<source[^>]+src=["']([^"']+\.(?:mp4|m3u8)[^"']*)["']`)
	playerFilePattern  = regexp.MustCompile(`(?is)file:\s*["']([^"']+\.(?:mp4|m3u8)[^"']*)["']`)
	htmlTagPattern     = regexp.MustCompile(`(?is)<[^>]+>`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// Source scrapes animesaturn.cx. Episode identifiers embed the series slug
// and the episode number ("naruto-shippuden-ep-5"). The direct file sits two
// pages deep: the episode page links a watch page, which hosts the player.
type Source struct {
	baseURL      string
	baseHost     string
	allowedHosts []string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

func NewSource() *Source {
	return NewSourceWithOptions("https://www.animesaturn.cx", nil, nil)
}

func NewSourceWithOptions(baseURL string, allowedHosts []string, client *http.Client) *Source {
	if client == nil {
		client = &http.Client{Timeout: 12 * time.Second}
	}
	if len(allowedHosts) == 0 {
		allowedHosts = []string{"animesaturn.cx", "animesaturn.tv", "animesaturn.mx"}
	}

	baseHost := ""
	if parsed, err := url.Parse(baseURL); err == nil {
		baseHost = strings.ToLower(parsed.Hostname())
	}

	return &Source{
		baseURL:      strings.TrimRight(baseURL, "/"),
		baseHost:     baseHost,
		allowedHosts: allowedHosts,
		httpClient:   client,
		limiter:      rate.NewLimiter(rate.Limit(2), 4),
	}
}

func (s *Source) Key() string {
	return "animesaturn"
}

func (s *Source) Name() string {
	return "AnimeSaturn"
}

func (s *Source) HealthCheck(ctx context.Context) error {
	_, err := s.fetchPage(ctx, s.baseURL+"/")
	return err
}

func (s *Source) Search(ctx context.Context, query string) ([]sources.Entry, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("query is required")
	}

	body, err := s.fetchPage(ctx, s.baseURL+"/animelist?search="+url.QueryEscape(trimmed))
	if err != nil {
		return nil, fmt.Errorf("fetch animesaturn search page: %w", err)
	}

	slugs := collectUniqueSlugs(body)
	entries := make([]sources.Entry, 0, len(slugs))
	for _, slug := range slugs {
		title := extractAnchorTextForSlug(body, slug)
		if title == "" {
			title = prettifySlug(slug)
		}
		entries = append(entries, sources.Entry{
			Title:  title,
			ID:     slug,
			URL:    s.baseURL + "/anime/" + slug,
			Poster: s.absoluteURL(extractPosterForSlug(body, slug)),
		})
	}

	return entries, nil
}

func (s *Source) Episodes(ctx context.Context, id string) ([]sources.Episode, error) {
	slug := strings.TrimSpace(id)
	if slug == "" {
		return nil, fmt.Errorf("id is required")
	}
	if !isValidSlug(slug) {
		return nil, fmt.Errorf("invalid animesaturn id")
	}

	body, err := s.fetchPage(ctx, s.baseURL+"/anime/"+slug)
	if err != nil {
		return nil, fmt.Errorf("fetch animesaturn series page: %w", err)
	}

	matches := episodeHrefPattern.FindAllStringSubmatch(body, -1)
	episodes := make([]sources.Episode, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		if len(match) < 3 {
			continue
		}
		episodeID := strings.TrimSpace(match[1])
		if _, exists := seen[episodeID]; exists {
			continue
		}
		seen[episodeID] = struct{}{}

		number, parseErr := strconv.ParseFloat(match[2], 64)
		if parseErr != nil {
			continue
		}

		episodes = append(episodes, sources.Episode{
			Number: number,
			ID:     episodeID,
			URL:    s.baseURL + "/ep/" + episodeID,
		})
	}

	return episodes, nil
}

// StreamURL follows the episode page to its watch page and pulls the direct
// file out of the player. The embed routes through the site proxy so the
// file plays from a browser.
func (s *Source) StreamURL(ctx context.Context, episodeID string) (*sources.Stream, error) {
	trimmed := strings.TrimSpace(episodeID)
	if trimmed == "" {
		return nil, fmt.Errorf("episode id is required")
	}

	episodePage, err := s.fetchPage(ctx, s.baseURL+"/ep/"+trimmed)
	if err != nil {
		return nil, fmt.Errorf("fetch animesaturn episode page: %w", err)
	}

	watchURL := strings.TrimSpace(html.UnescapeString(firstSubmatch(watchLinkPattern, episodePage)))
	if watchURL == "" {
		return nil, fmt.Errorf("no watch link found for episode %q", trimmed)
	}

	watchPage, err := s.fetchPage(ctx, s.absoluteURL(watchURL))
	if err != nil {
		return nil, fmt.Errorf("fetch animesaturn watch page: %w", err)
	}

	streamURL := strings.TrimSpace(html.UnescapeString(firstSubmatch(videoSourcePattern, watchPage)))
	if streamURL == "" {
		streamURL = strings.TrimSpace(html.UnescapeString(firstSubmatch(playerFilePattern, watchPage)))
	}
	if streamURL == "" {
		return nil, fmt.Errorf("no stream found for episode %q", trimmed)
	}
	streamURL = s.absoluteURL(streamURL)

	embed := fmt.Sprintf(`<video src="%s" class="w-full h-full" controls playsinline preload="metadata" autoplay></video>`, proxyBaseURL+streamURL)
	return &sources.Stream{URL: streamURL, Embed: embed}, nil
}

func (s *Source) fetchPage(ctx context.Context, endpoint string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if !s.isAllowedHost(parsed.Hostname()) {
		return "", fmt.Errorf("host %q is not allowed", parsed.Hostname())
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	var body string
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return fmt.Errorf("create request: %w", err)
			}

			req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
			req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
			req.Header.Set("Accept-Language", "it-IT,it;q=0.9,en;q=0.8")

			res, err := s.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer res.Body.Close()

			if res.StatusCode < 200 || res.StatusCode >= 300 {
				return fmt.Errorf("unexpected status: %d", res.StatusCode)
			}

			rawBody, err := io.ReadAll(res.Body)
			if err != nil {
				return fmt.Errorf("read response body: %w", err)
			}

			body = string(rawBody)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}

	return body, nil
}

func (s *Source) isAllowedHost(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return false
	}
	if host == s.baseHost {
		return true
	}
	for _, allowed := range s.allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func (s *Source) absoluteURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "//") {
		return "https:" + trimmed
	}
	if strings.HasPrefix(trimmed, "/") {
		return s.baseURL + trimmed
	}
	return s.baseURL + "/" + trimmed
}

func collectUniqueSlugs(body string) []string {
	matches := animeHrefPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	slugs := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		slug := strings.TrimSpace(strings.ToLower(match[1]))
		if !isValidSlug(slug) {
			continue
		}
		if _, exists := seen[slug]; exists {
			continue
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}

	return slugs
}

func extractAnchorTextForSlug(body string, slug string) string {
	if slug == "" {
		return ""
	}
	pattern := regexp.MustCompile(`(?is)<a[^>]+href=["'](?:https?://[^"']+)?/anime/` + regexp.QuoteMeta(slug) + `["'][^>]*>(.*?)</a>`)
	matches := pattern.FindAllStringSubmatch(body, -1)
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		candidate := cleanText(match[1])
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func extractPosterForSlug(body string, slug string) string {
	if slug == "" {
		return ""
	}
	pattern := regexp.MustCompile(`(?is)<a[^>]+href=["'](?:https?://[^"']+)?/anime/` + regexp.QuoteMeta(slug) + `["'][^>]*>\s*<img[^>]+src=["']([^"']+)["']`)
	return strings.TrimSpace(html.UnescapeString(firstSubmatch(pattern, body)))
}

func isValidSlug(slug string) bool {
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			continue
		}
		return false
	}
	return slug != ""
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for index, part := range parts {
		if part == "" {
			continue
		}
		parts[index] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func cleanText(raw string) string {
	text := htmlTagPattern.ReplaceAllString(raw, " ")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func firstSubmatch(pattern *regexp.Regexp, raw string) string {
	matches := pattern.FindStringSubmatch(raw)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}
