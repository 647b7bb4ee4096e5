// Package handler はhistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"screensnapp_backend/internal/api"
	"screensnapp_backend/internal/feature/history/domain/entity"
)

// HistoryUsecase は識別履歴参照のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HistoryUsecase interface {
	ListRecent(ctx context.Context, limit int) ([]entity.Record, error)
}

// HistoryHandler は識別履歴のHTTPリクエストを処理します。
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler はHistoryHandlerの新しいインスタンスを生成します。
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List は直近の識別履歴を返します。
//
// エンドポイント: GET /v1/history?limit=N
func (h *HistoryHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			slog.Warn("limitパラメータのパースに失敗", "error", err, "limit", raw)
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "limit must be an integer"})
			return
		}
		limit = parsed
	}

	records, err := h.uc.ListRecent(c.Request.Context(), limit)
	if err != nil {
		slog.Error("識別履歴の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list history"})
		return
	}

	out := make([]api.HistoryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, api.HistoryRecordResponse{
			ID:         r.ID,
			Query:      r.Query,
			Tier:       r.Tier,
			BestTitle:  r.BestTitle,
			MatchTitle: r.MatchTitle,
			MediaType:  r.MediaType,
			ExternalID: r.ExternalID,
			CreatedAt:  r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
