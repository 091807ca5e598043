package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/tune-fetch-go/internal/domain"
)

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.tune-fetch")
		v.AddConfigPath("/etc/tune-fetch")
	}

	v.SetEnvPrefix("TUNEFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Downloads.Dir = expandPath(config.Downloads.Dir)
	config.Downloads.CacheDir = expandPath(config.Downloads.CacheDir)
	config.Downloads.HistoryDBPath = expandPath(config.Downloads.HistoryDBPath)
	config.Extractor.CookieFile = expandPath(config.Extractor.CookieFile)
	config.Delivery.ExportDir = expandPath(config.Delivery.ExportDir)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	path = os.ExpandEnv(path)

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	if strings.Contains(path, "$HOME") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = strings.ReplaceAll(path, "$HOME", home)
		}
	}

	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Downloads.Dir == "" {
		return fmt.Errorf("downloads directory not configured")
	}

	if config.Downloads.CacheDir == "" {
		return fmt.Errorf("cache directory not configured")
	}

	if config.Extractor.Binary == "" {
		return fmt.Errorf("extractor binary not configured")
	}

	if config.Delivery.ExportDir == "" {
		return fmt.Errorf("delivery export directory not configured")
	}

	// A remote URL without an API key (or the reverse) disables the remote
	// path; it is not a configuration error.

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}
