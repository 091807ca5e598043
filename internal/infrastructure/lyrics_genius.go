package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/yourusername/tune-fetch-go/internal/domain"
)

// GeniusLyrics looks up lyrics through the Genius API: a search request
// picks the best matching song, then the song page is scraped for the
// lyrics text. An empty token disables the provider.
type GeniusLyrics struct {
	token  string
	apiURL string
	client *http.Client
}

// NewGeniusLyrics creates a lyrics provider against the Genius API
func NewGeniusLyrics(token string) *GeniusLyrics {
	return &GeniusLyrics{
		token:  token,
		apiURL: "https://api.genius.com",
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

// geniusSearch mirrors the slice of the search response we consume
type geniusSearch struct {
	Response struct {
		Hits []struct {
			Result struct {
				FullTitle       string `json:"full_title"`
				SongArtImageURL string `json:"song_art_image_url"`
				URL             string `json:"url"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// Lyrics returns the best match for a song and artist
func (g *GeniusLyrics) Lyrics(ctx context.Context, song, artist string) (*domain.Lyrics, error) {
	if g.token == "" {
		return nil, domain.ErrLyricsUnavailable
	}

	query := strings.TrimSpace(song + " " + artist)
	endpoint := fmt.Sprintf("%s/search?q=%s", g.apiURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lyrics search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lyrics search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected lyrics search status code %d", resp.StatusCode)
	}

	var search geniusSearch
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("malformed lyrics search response: %w", err)
	}
	if len(search.Response.Hits) == 0 {
		return nil, fmt.Errorf("no lyrics found for %q", query)
	}

	hit := search.Response.Hits[0].Result
	text, err := g.scrape(ctx, hit.URL)
	if err != nil {
		return nil, err
	}

	return &domain.Lyrics{
		Title:  hit.FullTitle,
		Image:  hit.SongArtImageURL,
		Lyrics: text,
	}, nil
}

// scrape pulls the lyrics text out of a Genius song page
func (g *GeniusLyrics) scrape(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build lyrics page request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("lyrics page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected lyrics page status code %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse lyrics page: %w", err)
	}

	var b strings.Builder
	doc.Find("div[data-lyrics-container='true']").Each(func(_ int, sel *goquery.Selection) {
		sel.Find("br").ReplaceWithHtml("\n")
		b.WriteString(sel.Text())
		b.WriteString("\n")
	})

	text := stripSectionHeaders(b.String())
	if text == "" {
		return "", fmt.Errorf("no lyrics text on page %s", pageURL)
	}
	return text, nil
}

// stripSectionHeaders drops [Verse 1] style marker lines
func stripSectionHeaders(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
