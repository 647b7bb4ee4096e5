// Package adapters はhistoryフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"screensnapp_backend/internal/feature/history/domain/entity"
	"screensnapp_backend/internal/feature/history/usecase"
)

// recordGorm はRecordRepositoryインターフェースのgorm実装です。
type recordGorm struct {
	db *gorm.DB
}

var _ usecase.RecordRepository = (*recordGorm)(nil)

// NewRecordRepository は指定されたDB接続でrecordGormリポジトリの新しいインスタンスを生成します。
func NewRecordRepository(db *gorm.DB) *recordGorm {
	return &recordGorm{db: db}
}

// Create は識別記録を1件保存します。
func (r *recordGorm) Create(ctx context.Context, record *entity.Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListRecent は新しい順にlimit件の記録を返します。
func (r *recordGorm) ListRecent(ctx context.Context, limit int) ([]entity.Record, error) {
	var records []entity.Record
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
