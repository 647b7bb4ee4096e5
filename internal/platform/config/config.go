// Package config はアプリケーションレベルの設定を提供します。
// 設定はプロセス起動時に一度だけ読み込まれ、以降は不変の値としてパイプラインに注入されます。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultHighConfidence はhigh階層のデフォルト閾値です。
	DefaultHighConfidence = 0.85
	// DefaultMediumConfidence はmedium階層のデフォルト閾値です。
	DefaultMediumConfidence = 0.65
	// DefaultMaxImageSize は画像アップロードのデフォルト最大サイズ（10MB）です。
	DefaultMaxImageSize = 10 * 1024 * 1024
	// DefaultMetadataCacheTTL はメタデータ検索キャッシュのデフォルトTTLです。
	DefaultMetadataCacheTTL = 6 * time.Hour
	// DefaultPort はHTTPサーバーのデフォルトポートです。
	DefaultPort = "8080"
)

// Config はアプリケーション全体の不変の設定です。
type Config struct {
	BearerToken      string        // 空の場合は認証をスキップ（開発向け）
	HighConfidence   float64       // high階層の閾値
	MediumConfidence float64       // medium階層の閾値
	MaxImageSize     int64         // 画像アップロードの最大サイズ
	MetadataCacheTTL time.Duration // メタデータ検索キャッシュのTTL
	StrictConfig     bool          // trueの場合、起動時に必須設定の欠落で即終了する
	GeminiRefiner    bool          // Geminiクエリリファイナーを有効にするか
	Port             string        // HTTPサーバーのポート
}

// Load loads application configuration from environment variables.
// 閾値の検証に失敗した場合はエラーを返します。
func Load() (Config, error) {
	cfg := Config{
		BearerToken:      strings.TrimSpace(os.Getenv("API_BEARER_TOKEN")),
		HighConfidence:   DefaultHighConfidence,
		MediumConfidence: DefaultMediumConfidence,
		MaxImageSize:     DefaultMaxImageSize,
		MetadataCacheTTL: DefaultMetadataCacheTTL,
		StrictConfig:     os.Getenv("STRICT_CONFIG") == "true",
		GeminiRefiner:    os.Getenv("GEMINI_REFINER") == "true",
		Port:             DefaultPort,
	}

	if raw := strings.TrimSpace(os.Getenv("HIGH_CONFIDENCE")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse HIGH_CONFIDENCE %q: %w", raw, err)
		}
		cfg.HighConfidence = v
	}
	if raw := strings.TrimSpace(os.Getenv("MEDIUM_CONFIDENCE")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse MEDIUM_CONFIDENCE %q: %w", raw, err)
		}
		cfg.MediumConfidence = v
	}
	if raw := strings.TrimSpace(os.Getenv("METADATA_CACHE_TTL_MINUTES")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse METADATA_CACHE_TTL_MINUTES %q: %w", raw, err)
		}
		cfg.MetadataCacheTTL = time.Duration(v) * time.Minute
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if cfg.HighConfidence < 0 || cfg.HighConfidence > 1 ||
		cfg.MediumConfidence < 0 || cfg.MediumConfidence > 1 {
		return Config{}, fmt.Errorf("confidence thresholds must be in [0,1]: high=%v medium=%v",
			cfg.HighConfidence, cfg.MediumConfidence)
	}
	if cfg.MediumConfidence > cfg.HighConfidence {
		return Config{}, fmt.Errorf("MEDIUM_CONFIDENCE (%v) must not exceed HIGH_CONFIDENCE (%v)",
			cfg.MediumConfidence, cfg.HighConfidence)
	}

	return cfg, nil
}
