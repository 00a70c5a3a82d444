package animeworld

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

var (
	playHrefPattern      = regexp.MustCompile(`(?i)href=["'](?:https?://[^"']+)?/play/([a-z0-9-]+\.[a-z0-9_-]+)["']`)
	htmlTagPattern       = regexp.MustCompile(`(?is)<[^>]+>`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
	downloadLinkPattern  = regexp.MustCompile(`(?is)id=["']alternativeDownloadLink["'][^>]*href=["']([^"']+)["']`)
	videoSourcePattern   = regexp.MustCompile(`(?is)<source[^>]+src=["']([^"']+\.(?:mp4|m3u8)[^"']*)["']`)
	episodeAnchorPattern = regexp.MustCompile(`(?is)<a[^>]+data-episode-num=["'](\d+(?:\.\d+)?)["'][^>]*href=["']([^"']+)["']`)
)

// Source scrapes animeworld.so. Series identifiers carry the site's opaque
// routing suffix after a dot ("naruto.q1junc"); episode identifiers append
// the episode path segment ("naruto.q1junc/abc12").
type Source struct {
	baseURL      string
	baseHost     string
	allowedHosts []string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

func NewSource() *Source {
	return NewSourceWithOptions("https://www.animeworld.so", nil, nil)
}

func NewSourceWithOptions(baseURL string, allowedHosts []string, client *http.Client) *Source {
	if client == nil {
		client = &http.Client{Timeout: 12 * time.Second}
	}
	if len(allowedHosts) == 0 {
		allowedHosts = []string{"animeworld.so", "animeworld.tv"}
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
	return "animeworld"
}

func (s *Source) Name() string {
	return "AnimeWorld"
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

	body, err := s.fetchPage(ctx, s.baseURL+"/search?keyword="+url.QueryEscape(trimmed))
	if err != nil {
		return nil, fmt.Errorf("fetch animeworld search page: %w", err)
	}

	playIDs := collectUniquePlayIDs(body)
	entries := make([]sources.Entry, 0, len(playIDs))
	for _, playID := range playIDs {
		title := extractAnchorTextForPlayID(body, playID)
		if title == "" {
			title = prettifySlug(playID)
		}
		entries = append(entries, sources.Entry{
			Title:    title,
			AltTitle: extractJTitleForPlayID(body, playID),
			ID:       playID,
			URL:      s.baseURL + "/play/" + playID,
			Poster:   s.absoluteURL(extractPosterForPlayID(body, playID)),
		})
	}

	return entries, nil
}

func (s *Source) Episodes(ctx context.Context, id string) ([]sources.Episode, error) {
	playID := strings.TrimSpace(id)
	if playID == "" {
		return nil, fmt.Errorf("id is required")
	}
	if !isValidPlayID(playID) {
		return nil, fmt.Errorf("invalid animeworld id")
	}

	body, err := s.fetchPage(ctx, s.baseURL+"/play/"+playID)
	if err != nil {
		return nil, fmt.Errorf("fetch animeworld series page: %w", err)
	}

	matches := episodeAnchorPattern.FindAllStringSubmatch(body, -1)
	episodes := make([]sources.Episode, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		if len(match) < 3 {
			continue
		}
		number, parseErr := strconv.ParseFloat(match[1], 64)
		if parseErr != nil {
			continue
		}

		href := strings.TrimSpace(match[2])
		segment := lastPathSegment(href)
		if segment == "" {
			continue
		}
		episodeID := playID + "/" + segment
		if _, exists := seen[episodeID]; exists {
			continue
		}
		seen[episodeID] = struct{}{}

		episodes = append(episodes, sources.Episode{
			Number: number,
			ID:     episodeID,
			URL:    s.absoluteURL(href),
		})
	}

	return episodes, nil
}

// StreamURL resolves the direct file URL behind one episode and wraps it in
// the iframe embed the site player expects.
func (s *Source) StreamURL(ctx context.Context, episodeID string) (*sources.Stream, error) {
	trimmed := strings.TrimSpace(episodeID)
	if trimmed == "" {
		return nil, fmt.Errorf("episode id is required")
	}

	body, err := s.fetchPage(ctx, s.baseURL+"/play/"+trimmed)
	if err != nil {
		return nil, fmt.Errorf("fetch animeworld episode page: %w", err)
	}

	streamURL := strings.TrimSpace(html.UnescapeString(firstSubmatch(downloadLinkPattern, body)))
	if streamURL == "" {
		streamURL = strings.TrimSpace(html.UnescapeString(firstSubmatch(videoSourcePattern, body)))
	}
	if streamURL == "" {
		return nil, fmt.Errorf("no stream found for episode %q", trimmed)
	}
	streamURL = s.absoluteURL(streamURL)

	embed := fmt.Sprintf(`<iframe src="%s" width="560" height="315" scrolling="no" frameborder="0" allowfullscreen></iframe>`, streamURL)
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

func collectUniquePlayIDs(body string) []string {
	matches := playHrefPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	ids := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		playID := strings.TrimSpace(match[1])
		if !isValidPlayID(playID) {
			continue
		}
		if _, exists := seen[playID]; exists {
			continue
		}
		seen[playID] = struct{}{}
		ids = append(ids, playID)
	}

	return ids
}

func extractAnchorTextForPlayID(body string, playID string) string {
	if playID == "" {
		return ""
	}
	pattern := regexp.MustCompile(`(?is)<a[^>]+href=["'](?:https?://[^"']+)?/play/` + regexp.QuoteMeta(playID) + `["'][^>]*>(.*?)</a>`)
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

func extractJTitleForPlayID(body string, playID string) string {
	if playID == "" {
		return ""
	}
	pattern := regexp.MustCompile(`(?is)<a[^>]+href=["'](?:https?://[^"']+)?/play/` + regexp.QuoteMeta(playID) + `["'][^>]*data-jtitle=["']([^"']+)["']`)
	return strings.TrimSpace(html.UnescapeString(firstSubmatch(pattern, body)))
}

func extractPosterForPlayID(body string, playID string) string {
	if playID == "" {
		return ""
	}
	pattern := regexp.MustCompile(`(?is)<a[^>]+href=["'](?:https?://[^"']+)?/play/` + regexp.QuoteMeta(playID) + `["'][^>]*>\s*<img[^>]+src=["']([^"']+)["']`)
	return strings.TrimSpace(html.UnescapeString(firstSubmatch(pattern, body)))
}

func isValidPlayID(playID string) bool {
	dot := strings.Index(playID, ".")
	if dot <= 0 || dot == len(playID)-1 {
		return false
	}
	for _, r := range playID {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '.' || r == '_' {
			continue
		}
		return false
	}
	return true
}

func lastPathSegment(href string) string {
	trimmed := strings.Trim(strings.TrimSpace(href), "/")
	if trimmed == "" {
		return ""
	}
	segments := strings.Split(trimmed, "/")
	return segments[len(segments)-1]
}

func prettifySlug(playID string) string {
	base := playID
	if dot := strings.Index(base, "."); dot > 0 {
		base = base[:dot]
	}
	parts := strings.Split(base, "-")
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
