package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"screensnapp_backend/internal/feature/identify/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// MinQueryLength はメタデータ検索に必要なクエリの最小文字数です。
	MinQueryLength = 3
	// DefaultQueryMaxLength はメタデータ検索クエリのデフォルト最大文字数です。
	// 検索APIに巨大なテキストブロブを渡す必要はありません。
	DefaultQueryMaxLength = 120
)

// ScreenRecognizer は画像からコンセプト候補とOCR断片を取得するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ScreenRecognizer interface {
	// Recognize は画像バイト列を認識モデルに送り、生の認識結果を返します。
	Recognize(ctx context.Context, imageData []byte) (*entity.Recognition, error)
}

// MetadataSearcher はフリーテキストクエリでメタデータ検索APIを呼び出すインターフェースです。
type MetadataSearcher interface {
	// SearchTitles はクエリに対する検索結果を外部APIの関連度順のまま返します。
	// カテゴリのフィルタリングは呼び出し側の責務です。
	SearchTitles(ctx context.Context, query string) ([]entity.MetadataMatch, error)
}

// QueryRefiner はノイズの多いOCRテキストから作品タイトルを抽出するオプションのインターフェースです。
type QueryRefiner interface {
	RefineTitle(ctx context.Context, text string) (string, error)
}

// ResultRecorder は完了した識別結果を記録するオプションのインターフェースです。
type ResultRecorder interface {
	RecordResult(ctx context.Context, res entity.IdentifyResult) error
}

// PipelineConfig はパイプラインの調整可能なパラメータです。
// ゼロ値のフィールドにはデフォルトが適用されます。
type PipelineConfig struct {
	HighConfidence   float64 // high階層の閾値
	MediumConfidence float64 // medium階層の閾値
	QueryMaxLength   int     // 検索クエリの最大文字数
}

// identifyUsecase はスクリーンショット識別パイプラインを実装します。
// intake → vision → consolidation → ranking → metadata lookup を逐次実行します。
type identifyUsecase struct {
	recognizer ScreenRecognizer
	searcher   MetadataSearcher
	refiner    QueryRefiner   // nilの場合はスキップ
	recorder   ResultRecorder // nilの場合はスキップ
	cfg        PipelineConfig
}

// NewIdentifyUsecase はidentifyUsecaseの新しいインスタンスを生成します。
// refinerとrecorderはnilを許容します。
func NewIdentifyUsecase(recognizer ScreenRecognizer, searcher MetadataSearcher,
	refiner QueryRefiner, recorder ResultRecorder, cfg PipelineConfig) *identifyUsecase {
	if cfg.HighConfidence <= 0 {
		cfg.HighConfidence = DefaultHighConfidence
	}
	if cfg.MediumConfidence <= 0 {
		cfg.MediumConfidence = DefaultMediumConfidence
	}
	if cfg.QueryMaxLength <= 0 {
		cfg.QueryMaxLength = DefaultQueryMaxLength
	}
	return &identifyUsecase{
		recognizer: recognizer,
		searcher:   searcher,
		refiner:    refiner,
		recorder:   recorder,
		cfg:        cfg,
	}
}

// Identify は画像バイト列を識別し、認識結果・信頼度階層・メタデータ照合を返します。
func (u *identifyUsecase) Identify(ctx context.Context, imageData []byte) (*entity.IdentifyResult, error) {
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrImageTooLarge, MaxImageSize)
	}

	recog, err := u.recognizer.Recognize(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("screen recognition: %w", err)
	}

	ocr := Consolidate(recog.Fragments)
	ranking := RankCandidates(recog.Candidates, u.cfg.HighConfidence, u.cfg.MediumConfidence)

	query := u.buildQuery(ctx, ranking, ocr)

	lookup, err := u.lookup(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("metadata lookup: %w", err)
	}

	res := &entity.IdentifyResult{
		OCR:        ocr,
		Candidates: ranking.Candidates,
		Best:       ranking.Best,
		Tier:       ranking.Tier,
		BestTitle:  ranking.BestTitle,
		Query:      query,
		Lookup:     lookup,
	}

	if u.recorder != nil {
		// 記録はベストエフォート。失敗してもリクエストは成功のまま返す。
		if err := u.recorder.RecordResult(ctx, *res); err != nil {
			slog.Warn("failed to record identification result", "error", err, "query", query)
		}
	}

	return res, nil
}

// buildQuery はメタデータ検索クエリを組み立てます。ランキングがタイトルを公開した場合は
// それを使い、そうでなければ統合OCRテキストを使います。OCRテキストのみの場合、
// リファイナーが設定されていればタイトル抽出を試みます（失敗してもクエリはそのまま）。
func (u *identifyUsecase) buildQuery(ctx context.Context, ranking Ranking, ocr entity.OCRResult) string {
	query := ranking.BestTitle
	if query == "" {
		query = ocr.CombinedText
		if u.refiner != nil && strings.TrimSpace(query) != "" {
			refined, err := u.refiner.RefineTitle(ctx, query)
			if err != nil {
				slog.Warn("query refiner failed, using raw text", "error", err)
			} else if refined = strings.TrimSpace(refined); refined != "" {
				query = refined
			}
		}
	}
	query = strings.TrimSpace(query)
	if runes := []rune(query); len(runes) > u.cfg.QueryMaxLength {
		query = string(runes[:u.cfg.QueryMaxLength])
	}
	return query
}

// lookup はクエリを正規化してメタデータ検索を実行し、許可カテゴリの先頭結果を選択します。
// 短い／空のクエリはネットワーク呼び出しなしで打ち切ります。
func (u *identifyUsecase) lookup(ctx context.Context, query string) (entity.LookupResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return entity.LookupResult{Status: entity.LookupSkipped, Reason: "empty_query"}, nil
	}
	if len([]rune(trimmed)) < MinQueryLength {
		return entity.LookupResult{Status: entity.LookupSkipped, Reason: "short_query"}, nil
	}

	hits, err := u.searcher.SearchTitles(ctx, trimmed)
	if err != nil {
		return entity.LookupResult{}, err
	}
	if len(hits) == 0 {
		return entity.LookupResult{Status: entity.LookupNoMatch, Reason: "no_results"}, nil
	}

	// 許可カテゴリ（movie/show）の先頭結果が勝ち。人物などの無関係なカテゴリは
	// 作品として提示してはならないため必ず除外する。再スコアリングは行わず、
	// 外部APIの関連度順をそのまま信頼する。
	for i := range hits {
		if hits[i].MediaType == entity.MediaTypeMovie || hits[i].MediaType == entity.MediaTypeShow {
			return entity.LookupResult{
				Status:      entity.LookupFound,
				ResultCount: len(hits),
				Match:       &hits[i],
			}, nil
		}
	}
	return entity.LookupResult{
		Status:      entity.LookupNoMatch,
		Reason:      "no_accepted_category",
		ResultCount: len(hits),
	}, nil
}
