package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screensnapp_backend/internal/api"
	"screensnapp_backend/internal/feature/history/domain/entity"
	"screensnapp_backend/internal/feature/history/transport/handler"
)

// mockHistoryUsecase はHistoryUsecaseインターフェースのモック実装です。
type mockHistoryUsecase struct {
	ListRecentFunc func(ctx context.Context, limit int) ([]entity.Record, error)
	LastLimit      int
}

func (m *mockHistoryUsecase) ListRecent(ctx context.Context, limit int) ([]entity.Record, error) {
	m.LastLimit = limit
	return m.ListRecentFunc(ctx, limit)
}

func setupRouter(uc handler.HistoryUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewHistoryHandler(uc)
	r := gin.New()
	r.GET("/v1/history", h.List)
	return r
}

func TestHistoryHandler_List(t *testing.T) {
	created := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	uc := &mockHistoryUsecase{
		ListRecentFunc: func(ctx context.Context, limit int) ([]entity.Record, error) {
			return []entity.Record{
				{ID: 2, Query: "Inception", Tier: "high", MatchTitle: "Inception", MediaType: "movie", ExternalID: 27205, CreatedAt: created},
				{ID: 1, Query: "xyz", Tier: "low", CreatedAt: created.Add(-time.Hour)},
			}, nil
		},
	}
	router := setupRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/v1/history?limit=2", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, uc.LastLimit)

	var resp []api.HistoryRecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Inception", resp[0].Query)
	assert.Equal(t, int64(27205), resp[0].ExternalID)
	assert.Equal(t, "low", resp[1].Tier)
}

func TestHistoryHandler_List_DefaultLimit(t *testing.T) {
	uc := &mockHistoryUsecase{
		ListRecentFunc: func(ctx context.Context, limit int) ([]entity.Record, error) {
			return nil, nil
		},
	}
	router := setupRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// limit未指定はゼロ値のままユースケースに委ねる
	assert.Equal(t, 0, uc.LastLimit)
}

func TestHistoryHandler_List_InvalidLimit(t *testing.T) {
	uc := &mockHistoryUsecase{
		ListRecentFunc: func(ctx context.Context, limit int) ([]entity.Record, error) {
			t.Fatal("usecase must not be called")
			return nil, nil
		},
	}
	router := setupRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/v1/history?limit=abc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit")
}

func TestHistoryHandler_List_RepositoryError(t *testing.T) {
	uc := &mockHistoryUsecase{
		ListRecentFunc: func(ctx context.Context, limit int) ([]entity.Record, error) {
			return nil, errors.New("db down")
		},
	}
	router := setupRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}
