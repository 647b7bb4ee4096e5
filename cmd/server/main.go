package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"screensnapp_backend/internal/app/di"
	"screensnapp_backend/internal/app/router"
	historyadapters "screensnapp_backend/internal/feature/history/adapters"
	historyhandler "screensnapp_backend/internal/feature/history/transport/handler"
	historyusecase "screensnapp_backend/internal/feature/history/usecase"
	"screensnapp_backend/internal/feature/identify/adapters/clarifai"
	"screensnapp_backend/internal/feature/identify/adapters/tmdb"
	identifyhandler "screensnapp_backend/internal/feature/identify/transport/handler"
	identifyusecase "screensnapp_backend/internal/feature/identify/usecase"
	"screensnapp_backend/internal/platform/config"
	infradb "screensnapp_backend/internal/platform/db"
	infrahttp "screensnapp_backend/internal/platform/http"
	infraredis "screensnapp_backend/internal/platform/redis"
)

func main() {
	// ローカル開発用の .env（存在しなければ無視）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// STRICT_CONFIG=true の場合、上流APIの必須設定を起動時に検証する。
	// 通常はリクエスト時に500（設定名入り）で報告される。
	if cfg.StrictConfig {
		if os.Getenv("VISION_PROVIDER") != "gcv" {
			if err := clarifai.LoadConfig().Validate(); err != nil {
				log.Fatalf("invalid configuration: %v", err)
			}
		}
		if err := tmdb.LoadConfig().Validate(); err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}
	}

	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 外部APIアダプタ
	recognizer, closeRecognizer, err := di.NewRecognizer(ctx)
	if err != nil {
		log.Fatalf("failed to create recognizer: %v", err)
	}
	defer func() {
		if err := closeRecognizer(); err != nil {
			log.Println("[ERROR] Failed to close recognizer:", err)
		}
	}()
	searcher := di.NewSearcher(rdb, cfg.MetadataCacheTTL)
	refiner := di.NewRefiner(ctx, cfg.GeminiRefiner)

	// Repository
	recordRepo := historyadapters.NewRecordRepository(db)

	// Usecase
	historyUC := historyusecase.NewHistoryUsecase(recordRepo)
	identifyUC := identifyusecase.NewIdentifyUsecase(recognizer, searcher, refiner, historyUC,
		identifyusecase.PipelineConfig{
			HighConfidence:   cfg.HighConfidence,
			MediumConfidence: cfg.MediumConfidence,
		})

	// Handler
	fetcher := infrahttp.NewHTTPClient(15 * time.Second)
	identifyH := identifyhandler.NewIdentifyHandler(identifyUC, fetcher, cfg.MaxImageSize)
	historyH := historyhandler.NewHistoryHandler(historyUC)

	// ルータ生成
	router := router.NewRouter(identifyH, historyH, cfg.BearerToken)

	// 認証トークンチェック（開発中の注意喚起）
	if cfg.BearerToken == "" {
		log.Println("[WARN] API_BEARER_TOKEN is not set. All endpoints are unauthenticated.")
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
