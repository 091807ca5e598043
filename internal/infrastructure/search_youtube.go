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

// YouTubeSearch resolves free-text queries into track metadata by reading
// the ytInitialData payload embedded in the results page.
type YouTubeSearch struct {
	baseURL string
	client  *http.Client
}

// NewYouTubeSearch creates a search resolver against the public site
func NewYouTubeSearch() *YouTubeSearch {
	return &YouTubeSearch{
		baseURL: "https://www.youtube.com",
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// Search returns up to limit tracks matching the query. Result order is
// whatever the site returns; a reference that is already a watch URL
// resolves to that video first.
func (s *YouTubeSearch) Search(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	if limit <= 0 {
		limit = 1
	}

	endpoint := fmt.Sprintf("%s/results?search_query=%s", s.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected search status code %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	payload := findInitialData(doc)
	if payload == "" {
		return nil, fmt.Errorf("no ytInitialData in results page")
	}

	var data initialData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("malformed ytInitialData: %w", err)
	}

	tracks := collectTracks(&data, limit)
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no results for %q", query)
	}
	return tracks, nil
}

// findInitialData locates the script node carrying ytInitialData and cuts
// out the embedded JSON object
func findInitialData(doc *goquery.Document) string {
	var payload string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		idx := strings.Index(text, "ytInitialData")
		if idx < 0 {
			return true
		}
		start := strings.Index(text[idx:], "{")
		if start < 0 {
			return true
		}
		start += idx
		end := strings.Index(text[start:], "};")
		if end < 0 {
			return true
		}
		payload = text[start : start+end+1]
		return false
	})
	return payload
}

// initialData mirrors the slice of the results payload we consume
type initialData struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer struct {
							Contents []struct {
								VideoRenderer *videoRenderer `json:"videoRenderer"`
							} `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type runsText struct {
	Runs []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (r runsText) first() string {
	if len(r.Runs) == 0 {
		return ""
	}
	return r.Runs[0].Text
}

type simpleText struct {
	SimpleText string `json:"simpleText"`
}

type videoRenderer struct {
	VideoID           string     `json:"videoId"`
	Title             runsText   `json:"title"`
	LongBylineText    runsText   `json:"longBylineText"`
	LengthText        simpleText `json:"lengthText"`
	ViewCountText     simpleText `json:"viewCountText"`
	PublishedTimeText simpleText `json:"publishedTimeText"`
}

func collectTracks(data *initialData, limit int) []domain.Track {
	var tracks []domain.Track
	for _, section := range data.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents {
		for _, item := range section.ItemSectionRenderer.Contents {
			vr := item.VideoRenderer
			if vr == nil || vr.VideoID == "" {
				continue
			}
			tracks = append(tracks, domain.Track{
				ID:        vr.VideoID,
				Title:     vr.Title.first(),
				Channel:   vr.LongBylineText.first(),
				Link:      domain.WatchBase + vr.VideoID,
				Duration:  vr.LengthText.SimpleText,
				Views:     vr.ViewCountText.SimpleText,
				Thumbnail: domain.ThumbnailURL(vr.VideoID),
				Published: vr.PublishedTimeText.SimpleText,
			})
			if len(tracks) >= limit {
				return tracks
			}
		}
	}
	return tracks
}
