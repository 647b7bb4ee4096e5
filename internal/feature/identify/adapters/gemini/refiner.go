// Package gemini はGoogle Gemini APIを使用したクエリリファイナーを提供します。
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"screensnapp_backend/internal/feature/identify/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// RefinePromptTemplate はOCRテキストからタイトルを抽出するプロンプトです。
	RefinePromptTemplate = "Extract the single most likely movie or TV show title from the " +
		"following on-screen text. Reply with the title only, on one line. " +
		"Reply with an empty line if no title is present.\n\n%s"
	// maxRefinedLength はモデル出力の暴走を抑えるための上限文字数です。
	maxRefinedLength = 120
)

// GeminiRefiner はノイズの多いOCRテキストから作品タイトルを抽出します。
type GeminiRefiner struct {
	client *genai.Client
	model  string
}

// GeminiRefinerがQueryRefinerを実装していることをコンパイル時に検証します。
var _ usecase.QueryRefiner = (*GeminiRefiner)(nil)

// NewGeminiRefiner はADCを使用してGeminiRefinerの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiRefiner(ctx context.Context) (*GeminiRefiner, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiRefiner{client: client, model: DefaultModel}, nil
}

// RefineTitle はOCRテキストから最も可能性の高いタイトルを1つ抽出します。
// タイトルが見つからない場合は空文字列を返します。
func (g *GeminiRefiner) RefineTitle(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(RefinePromptTemplate, text)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	refined := strings.TrimSpace(resp.Text())
	// 指示に反して複数行返ってきた場合は先頭行のみ採用する
	if i := strings.IndexByte(refined, '\n'); i >= 0 {
		refined = strings.TrimSpace(refined[:i])
	}
	if runes := []rune(refined); len(runes) > maxRefinedLength {
		refined = string(runes[:maxRefinedLength])
	}
	return refined, nil
}
