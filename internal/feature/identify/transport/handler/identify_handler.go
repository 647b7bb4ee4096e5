// Package handler はidentifyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"screensnapp_backend/internal/api"
	"screensnapp_backend/internal/feature/identify/domain/entity"
	"screensnapp_backend/internal/feature/identify/usecase"
)

// NoTextMessage はテキストも候補も検出されなかった場合のヒントメッセージです。
const NoTextMessage = "No text detected. Try getting the title more centered/clear."

// IdentifyUsecase はスクリーンショット識別のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type IdentifyUsecase interface {
	Identify(ctx context.Context, imageData []byte) (*entity.IdentifyResult, error)
}

// IdentifyHandler はスクリーンショット識別のHTTPリクエストを処理します。
type IdentifyHandler struct {
	uc           IdentifyUsecase
	fetcher      *http.Client // URL指定インテーク用
	maxImageSize int64
}

// NewIdentifyHandler はIdentifyHandlerの新しいインスタンスを生成します。
func NewIdentifyHandler(uc IdentifyUsecase, fetcher *http.Client, maxImageSize int64) *IdentifyHandler {
	if maxImageSize <= 0 {
		maxImageSize = usecase.MaxImageSize
	}
	return &IdentifyHandler{uc: uc, fetcher: fetcher, maxImageSize: maxImageSize}
}

// Identify はスクリーンショットを受け取り、識別結果を返します。
//
// エンドポイント: POST /v1/identify
// Content-Type: multipart/form-data（フィールド: file）または application/json（{"url": ...}）
func (h *IdentifyHandler) Identify(c *gin.Context) {
	imageData, ok := h.readImage(c)
	if !ok {
		return // readImageがレスポンス済み
	}

	result, err := h.uc.Identify(c.Request.Context(), imageData)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toIdentifyResponse(result))
}

// readImage はmultipartアップロードまたはJSONのURL指定から画像バイト列を取得します。
// 失敗時はエラーレスポンスを書き込み、falseを返します。
func (h *IdentifyHandler) readImage(c *gin.Context) ([]byte, bool) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		return h.fetchFromURL(c)
	}

	file, err := c.FormFile("file")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing file field"})
		return nil, false
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read uploaded image"})
		return nil, false
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	imageData, err := io.ReadAll(io.LimitReader(f, h.maxImageSize+1))
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read uploaded image"})
		return nil, false
	}
	if int64(len(imageData)) > h.maxImageSize {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error: fmt.Sprintf("file exceeds maximum size of %d bytes", h.maxImageSize),
		})
		return nil, false
	}
	if len(imageData) == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "empty file"})
		return nil, false
	}
	return imageData, true
}

// fetchFromURL はJSONボディで指定されたURLから画像を取得します。
// クライアント指定のURLに起因する失敗はすべて4xxとして扱います。
func (h *IdentifyHandler) fetchFromURL(c *gin.Context) ([]byte, bool) {
	var req api.IdentifyURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("URLリクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing or malformed url field"})
		return nil, false
	}

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, req.URL, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "malformed url"})
		return nil, false
	}

	res, err := h.fetcher.Do(httpReq)
	if err != nil {
		slog.Warn("画像URLの取得に失敗", "error", err, "url", req.URL)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "failed to fetch image from url"})
		return nil, false
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error: fmt.Sprintf("failed to fetch image from url: http %d", res.StatusCode),
		})
		return nil, false
	}

	imageData, err := io.ReadAll(io.LimitReader(res.Body, h.maxImageSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "failed to fetch image from url"})
		return nil, false
	}
	if int64(len(imageData)) > h.maxImageSize {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error: fmt.Sprintf("image exceeds maximum size of %d bytes", h.maxImageSize),
		})
		return nil, false
	}
	if len(imageData) == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "fetched image is empty"})
		return nil, false
	}
	return imageData, true
}

// writeError はユースケースのエラーをHTTPステータスに変換します。
// 上流の失敗（502）と内部エラー（500）、入力エラー（400）を明確に区別します。
func (h *IdentifyHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyImage), errors.Is(err, usecase.ErrImageTooLarge):
		slog.Warn("画像バリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrMisconfigured):
		slog.Error("サーバー設定の不備", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrUpstream):
		slog.Error("上流APIの呼び出しに失敗", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("識別処理で予期しないエラー", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

// toIdentifyResponse はドメインの結果をレスポンスDTOに変換します。
func toIdentifyResponse(res *entity.IdentifyResult) api.IdentifyResponse {
	out := api.IdentifyResponse{
		Status:        "ok",
		ExtractedText: res.OCR.CombinedText,
		Candidates:    make([]api.CandidateResponse, 0, len(res.Candidates)),
		Best:          api.BestCandidateResponse{Tier: string(res.Tier)},
		Query:         res.Query,
		Lookup: api.LookupResponse{
			Status:       string(res.Lookup.Status),
			Reason:       res.Lookup.Reason,
			ResultsCount: res.Lookup.ResultCount,
		},
	}

	for _, cand := range res.Candidates {
		out.Candidates = append(out.Candidates, api.CandidateResponse{
			Label: cand.Label,
			Score: cand.Score,
		})
	}

	// low/noneではタイトルは抑制したまま、スコアは透明性のため返す
	if res.Best != nil {
		score := res.Best.Score
		out.Best.Score = &score
	}
	if res.BestTitle != "" {
		title := res.BestTitle
		out.Best.Title = &title
	}

	if m := res.Lookup.Match; m != nil {
		out.Lookup.BestMatch = &api.MetadataMatchResponse{
			ExternalID:      m.ExternalID,
			MediaType:       string(m.MediaType),
			Title:           m.Title,
			ReleaseYear:     m.ReleaseYear,
			Overview:        m.Overview,
			PosterURL:       m.PosterURL,
			PopularityScore: m.PopularityScore,
		}
	}

	if res.OCR.CombinedText == "" && len(res.Candidates) == 0 {
		out.Message = NoTextMessage
	}
	return out
}
