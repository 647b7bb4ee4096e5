package di

import (
	"context"
	"log/slog"

	"screensnapp_backend/internal/feature/identify/adapters/gemini"
	"screensnapp_backend/internal/feature/identify/usecase"
)

// NewRefiner creates an optional Gemini-backed query refiner.
// 無効またはクライアント生成に失敗した場合はnilを返し、パイプラインはリファイナーなしで動作します。
func NewRefiner(ctx context.Context, enabled bool) usecase.QueryRefiner {
	if !enabled {
		return nil
	}
	refiner, err := gemini.NewGeminiRefiner(ctx)
	if err != nil {
		slog.Warn("Gemini refiner unavailable. Running without query refinement.", "error", err)
		return nil
	}
	return refiner
}
