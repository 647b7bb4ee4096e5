// Package clarifai provides a screen recognizer backed by the Clarifai REST API v2.
package clarifai

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL はClarifai APIのデフォルトベースURLです。
const DefaultBaseURL = "https://api.clarifai.com"

// Config holds configuration for the Clarifai API client.
type Config struct {
	PAT            string        // Personal Access Token
	UserID         string        // Clarifai user ID
	AppID          string        // Clarifai application ID
	ModelID        string        // model to run (OCR or concept model)
	ModelVersionID string        // optional: pin a specific model version
	BaseURL        string        // base URL for the API
	Timeout        time.Duration // HTTP request timeout
}

// LoadConfig loads Clarifai configuration from environment variables.
func LoadConfig() Config {
	base := strings.TrimSpace(os.Getenv("CLARIFAI_BASE_URL"))
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		PAT:            strings.TrimSpace(os.Getenv("CLARIFAI_PAT")),
		UserID:         strings.TrimSpace(os.Getenv("CLARIFAI_USER_ID")),
		AppID:          strings.TrimSpace(os.Getenv("CLARIFAI_APP_ID")),
		ModelID:        strings.TrimSpace(os.Getenv("CLARIFAI_MODEL_ID")),
		ModelVersionID: strings.TrimSpace(os.Getenv("CLARIFAI_MODEL_VERSION_ID")),
		BaseURL:        strings.TrimRight(base, "/"),
		Timeout:        30 * time.Second,
	}
}

// Validate は必須設定が揃っているかを検証し、欠けている場合は
// 最初に見つかった設定名を含むエラーを返します。
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"CLARIFAI_PAT", c.PAT},
		{"CLARIFAI_USER_ID", c.UserID},
		{"CLARIFAI_APP_ID", c.AppID},
		{"CLARIFAI_MODEL_ID", c.ModelID},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is missing", r.name)
		}
	}
	return nil
}
