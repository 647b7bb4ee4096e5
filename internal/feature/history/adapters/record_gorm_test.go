package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"screensnapp_backend/internal/feature/history/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Record{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// seedRecord はテスト用の識別記録をデータベースに作成します。
func seedRecord(t *testing.T, db *gorm.DB, query, tier string, createdAt time.Time) *entity.Record {
	t.Helper()

	record := &entity.Record{
		Query:     query,
		Tier:      tier,
		CreatedAt: createdAt,
	}
	err := db.Create(record).Error
	require.NoError(t, err, "failed to seed record")

	return record
}

func TestRecordGorm_Create(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewRecordRepository(db)

	record := &entity.Record{
		Query:      "Inception",
		Tier:       "high",
		BestTitle:  "Inception",
		MatchTitle: "Inception",
		MediaType:  "movie",
		ExternalID: 27205,
	}
	err := repo.Create(context.Background(), record)
	require.NoError(t, err)
	assert.NotZero(t, record.ID, "primary key should be assigned")

	var loaded entity.Record
	require.NoError(t, db.First(&loaded, record.ID).Error)
	assert.Equal(t, "Inception", loaded.Query)
	assert.Equal(t, int64(27205), loaded.ExternalID)
}

func TestRecordGorm_ListRecent(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewRecordRepository(db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedRecord(t, db, "oldest", "low", base)
	seedRecord(t, db, "middle", "medium", base.Add(time.Hour))
	seedRecord(t, db, "newest", "high", base.Add(2*time.Hour))

	records, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "newest", records[0].Query)
	assert.Equal(t, "middle", records[1].Query)
}

func TestRecordGorm_ListRecent_Empty(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewRecordRepository(db)

	records, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
