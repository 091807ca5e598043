package domain

import "fmt"

// Track represents one resolved search result for a media reference
type Track struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Link      string `json:"link"`
	Duration  string `json:"duration"`
	Views     string `json:"views"`
	Thumbnail string `json:"thumbnail"`
	Published string `json:"published"`
}

// ThumbnailURL returns the standard thumbnail location for a video ID
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}
