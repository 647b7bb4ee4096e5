// Package usecase はhistoryフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	historyentity "screensnapp_backend/internal/feature/history/domain/entity"
	identifyentity "screensnapp_backend/internal/feature/identify/domain/entity"
)

const (
	// DefaultListLimit は履歴取得のデフォルト件数です。
	DefaultListLimit = 20
	// MaxListLimit は履歴取得の最大件数です。
	MaxListLimit = 100
)

// RecordRepository は識別記録の永続化リポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type RecordRepository interface {
	Create(ctx context.Context, record *historyentity.Record) error
	ListRecent(ctx context.Context, limit int) ([]historyentity.Record, error)
}

// historyUsecase は識別履歴の記録と参照を提供します。
type historyUsecase struct {
	repo RecordRepository
}

// NewHistoryUsecase はhistoryUsecaseの新しいインスタンスを生成します。
func NewHistoryUsecase(repo RecordRepository) *historyUsecase {
	return &historyUsecase{repo: repo}
}

// RecordResult は完了した識別結果を履歴として保存します。
// identifyユースケースのResultRecorderとして注入されます。
func (u *historyUsecase) RecordResult(ctx context.Context, res identifyentity.IdentifyResult) error {
	record := &historyentity.Record{
		Query:     res.Query,
		Tier:      string(res.Tier),
		BestTitle: res.BestTitle,
	}
	if m := res.Lookup.Match; m != nil {
		record.MatchTitle = m.Title
		record.MediaType = string(m.MediaType)
		record.ExternalID = m.ExternalID
	}
	return u.repo.Create(ctx, record)
}

// ListRecent は新しい順に識別履歴を返します。limitは[1, MaxListLimit]にクランプされます。
func (u *historyUsecase) ListRecent(ctx context.Context, limit int) ([]historyentity.Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return u.repo.ListRecent(ctx, limit)
}
