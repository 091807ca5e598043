package domain

import (
	"path/filepath"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Downloads DownloadsConfig `mapstructure:"downloads"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	Delivery  DeliveryConfig  `mapstructure:"delivery"`
	Lyrics    LyricsConfig    `mapstructure:"lyrics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadsConfig contains filesystem layout configuration
type DownloadsConfig struct {
	// Dir holds cache-addressable media files named {id}.{ext}
	Dir string `mapstructure:"dir"`
	// CacheDir holds transient artifacts such as fetched thumbnails
	CacheDir string `mapstructure:"cache_dir"`
	// HistoryDBPath is the sqlite acquisition history database
	HistoryDBPath string `mapstructure:"history_db_path"`
}

// ThumbDir returns the directory transient thumbnails are written to
func (c *DownloadsConfig) ThumbDir() string {
	return filepath.Join(c.CacheDir, "thumbs")
}

// RemoteConfig contains the conversion-service configuration. A kind's
// remote path is enabled only when its base URL and the API key are both
// set; absence is not an error.
type RemoteConfig struct {
	SongURL  string        `mapstructure:"song_url"`
	VideoURL string        `mapstructure:"video_url"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ExtractorConfig contains the local extraction engine configuration
type ExtractorConfig struct {
	Binary     string `mapstructure:"binary"`
	CookieFile string `mapstructure:"cookie_file"`
}

// DeliveryConfig contains delivery-related configuration. RequestTimeout
// bounds how long an undelivered search result set is kept.
type DeliveryConfig struct {
	Performer      string        `mapstructure:"performer"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	ExportDir      string        `mapstructure:"export_dir"`
}

// LyricsConfig contains the lyrics backend configuration. An empty token
// disables lyrics lookups; absence is not an error.
type LyricsConfig struct {
	APIToken string `mapstructure:"api_token"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Downloads: DownloadsConfig{
			Dir:           "./downloads",
			CacheDir:      "./cache",
			HistoryDBPath: "./cache/history.db",
		},
		Remote: RemoteConfig{
			SongURL:  "",
			VideoURL: "",
			APIKey:   "",
			Timeout:  30 * time.Second,
		},
		Extractor: ExtractorConfig{
			Binary:     "yt-dlp",
			CookieFile: "./cookies/cookies.txt",
		},
		Delivery: DeliveryConfig{
			Performer:      "tune-fetch",
			RequestTimeout: 10 * time.Minute,
			ExportDir:      "./delivered",
		},
		Lyrics: LyricsConfig{
			APIToken: "",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
