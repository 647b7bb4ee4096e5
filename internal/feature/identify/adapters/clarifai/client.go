package clarifai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"screensnapp_backend/internal/feature/identify/adapters/clarifai/dto"
	"screensnapp_backend/internal/feature/identify/domain/entity"
	"screensnapp_backend/internal/feature/identify/usecase"
)

// ClarifaiRecognizer はClarifai REST API v2を使用してスクリーンショットを認識します。
type ClarifaiRecognizer struct {
	cfg    Config
	client *http.Client
}

// ClarifaiRecognizerがScreenRecognizerを実装していることをコンパイル時に検証します。
var _ usecase.ScreenRecognizer = (*ClarifaiRecognizer)(nil)

// NewClarifaiRecognizer は指定された設定とHTTPクライアントでClarifaiRecognizerの
// 新しいインスタンスを生成します。
func NewClarifaiRecognizer(cfg Config, client *http.Client) *ClarifaiRecognizer {
	return &ClarifaiRecognizer{cfg: cfg, client: client}
}

// Recognize は画像をbase64でPostModelOutputsに送信し、OCR断片とコンセプト候補を返します。
func (r *ClarifaiRecognizer) Recognize(ctx context.Context, imageData []byte) (*entity.Recognition, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrMisconfigured, err)
	}

	reqBody := dto.OutputsRequest{
		Inputs: []dto.Input{
			{Data: dto.InputData{Image: dto.Image{
				Base64: base64.StdEncoding.EncodeToString(imageData),
			}}},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal clarifai request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.outputsURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Key "+r.cfg.PAT)
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: clarifai: %v", usecase.ErrUpstream, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 200))
		return nil, fmt.Errorf("%w: clarifai http %d: %s", usecase.ErrUpstream, res.StatusCode, snippet)
	}

	var body dto.OutputsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: clarifai: decode response: %v", usecase.ErrUpstream, err)
	}
	if body.Status.Code != dto.StatusSuccess {
		return nil, fmt.Errorf("%w: clarifai error: %d - %s",
			usecase.ErrUpstream, body.Status.Code, body.Status.Description)
	}
	if len(body.Outputs) == 0 {
		return &entity.Recognition{}, nil
	}

	data := body.Outputs[0].Data
	return &entity.Recognition{
		Candidates: extractCandidates(data),
		Fragments:  extractFragments(data),
	}, nil
}

// outputsURL はPostModelOutputsエンドポイントのURLを組み立てます。
// モデルバージョンIDが設定されている場合はバージョン固定のパスを使います。
func (r *ClarifaiRecognizer) outputsURL() string {
	if r.cfg.ModelVersionID != "" {
		return fmt.Sprintf("%s/v2/users/%s/apps/%s/models/%s/versions/%s/outputs",
			r.cfg.BaseURL, r.cfg.UserID, r.cfg.AppID, r.cfg.ModelID, r.cfg.ModelVersionID)
	}
	return fmt.Sprintf("%s/v2/users/%s/apps/%s/models/%s/outputs",
		r.cfg.BaseURL, r.cfg.UserID, r.cfg.AppID, r.cfg.ModelID)
}

// extractor はレスポンスの1つの形からテキスト断片を取り出す純粋関数です。
type extractor func(dto.OutputData) []string

// extractors はモデルごとに異なるレスポンス形への抽出戦略を順に並べたものです。
// 全文フィールド → リージョン単位のテキスト → コンセプト名 の順に試します。
var extractors = []extractor{extractFullText, extractRegionTexts, extractConceptNames}

// extractFragments は抽出戦略を順に試し、最初にテキストを得られた戦略の結果を返します。
func extractFragments(data dto.OutputData) []string {
	for _, ex := range extractors {
		if frags := ex(data); len(frags) > 0 {
			return frags
		}
	}
	return nil
}

func extractFullText(data dto.OutputData) []string {
	if data.Text != nil && data.Text.Raw != "" {
		return []string{data.Text.Raw}
	}
	return nil
}

func extractRegionTexts(data dto.OutputData) []string {
	var frags []string
	skipped := 0
	for _, region := range data.Regions {
		if region.Data.Text == nil || region.Data.Text.Raw == "" {
			skipped++
			continue
		}
		frags = append(frags, region.Data.Text.Raw)
	}
	if skipped > 0 {
		// テキストを持たないリージョンは黙って捨てず、診断のために記録する
		slog.Debug("clarifai regions without text payload skipped", "skipped", skipped)
	}
	return frags
}

func extractConceptNames(data dto.OutputData) []string {
	frags := make([]string, 0, len(data.Concepts))
	for _, c := range data.Concepts {
		if c.Name != "" {
			frags = append(frags, c.Name)
		}
	}
	return frags
}

// extractCandidates はコンセプトをRecognitionCandidateに変換します。
func extractCandidates(data dto.OutputData) []entity.RecognitionCandidate {
	cands := make([]entity.RecognitionCandidate, 0, len(data.Concepts))
	for _, c := range data.Concepts {
		if c.Name == "" {
			continue
		}
		cands = append(cands, entity.RecognitionCandidate{
			Label:    c.Name,
			Score:    c.Value,
			SourceID: c.ID,
		})
	}
	return cands
}
