package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	historyhandler "screensnapp_backend/internal/feature/history/transport/handler"
	identifyhandler "screensnapp_backend/internal/feature/identify/transport/handler"
	"screensnapp_backend/internal/platform/auth"
	"screensnapp_backend/internal/platform/http/handler"
)

// NewRouter はアプリケーションのルーティングを構築します。
// bearerToken が空の場合、/v1 配下も認証なしでアクセスできます（開発向け）。
func NewRouter(identify *identifyhandler.IdentifyHandler, history *historyhandler.HistoryHandler,
	bearerToken string) *gin.Engine {
	r := gin.Default()

	// ブラウザクライアント向けCORS
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	// 認証必須のルート
	v1 := r.Group("/v1")
	v1.Use(auth.BearerRequired(bearerToken))
	{
		// スクリーンショット識別
		v1.POST("/identify", identify.Identify)
		// 識別履歴の一覧
		v1.GET("/history", history.List)
	}

	return r
}
