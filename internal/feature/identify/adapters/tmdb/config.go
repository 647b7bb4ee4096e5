// Package tmdb provides a client for the TMDB media metadata search API.
package tmdb

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultBaseURL はTMDB API v3のデフォルトベースURLです。
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultImageBaseURL はポスター画像URLのデフォルトプレフィックスです。
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	// DefaultLanguage は検索のデフォルト言語です。
	DefaultLanguage = "en-US"
)

// Config holds configuration for the TMDB API client.
type Config struct {
	APIKey       string        // v3 API key, sent as a query parameter
	BaseURL      string        // base URL for the API
	ImageBaseURL string        // prefix for poster paths
	Language     string        // search language
	Timeout      time.Duration // HTTP request timeout
}

// LoadConfig loads TMDB configuration from environment variables.
func LoadConfig() Config {
	base := strings.TrimSpace(os.Getenv("TMDB_BASE_URL"))
	if base == "" {
		base = DefaultBaseURL
	}
	imageBase := strings.TrimSpace(os.Getenv("TMDB_IMAGE_BASE_URL"))
	if imageBase == "" {
		imageBase = DefaultImageBaseURL
	}
	return Config{
		APIKey:       strings.TrimSpace(os.Getenv("TMDB_API_KEY")),
		BaseURL:      strings.TrimRight(base, "/"),
		ImageBaseURL: strings.TrimRight(imageBase, "/"),
		Language:     DefaultLanguage,
		Timeout:      20 * time.Second,
	}
}

// Validate は必須設定が揃っているかを検証します。
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is missing")
	}
	return nil
}
