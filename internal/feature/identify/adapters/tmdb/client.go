package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"screensnapp_backend/internal/feature/identify/adapters/tmdb/dto"
	"screensnapp_backend/internal/feature/identify/domain/entity"
	"screensnapp_backend/internal/feature/identify/usecase"
)

// TMDBSearch はTMDB /search/multi を呼び出すMetadataSearcher実装です。
type TMDBSearch struct {
	cfg    Config
	client *http.Client
}

// TMDBSearchがMetadataSearcherを実装していることをコンパイル時に検証します。
var _ usecase.MetadataSearcher = (*TMDBSearch)(nil)

// NewTMDBSearch は指定された設定とHTTPクライアントでTMDBSearchの新しいインスタンスを生成します。
func NewTMDBSearch(cfg Config, client *http.Client) *TMDBSearch {
	return &TMDBSearch{cfg: cfg, client: client}
}

// SearchTitles はクエリで横断検索を実行し、結果をAPIの関連度順のまま返します。
// カテゴリのフィルタリングは行いません（person等も含めて返します）。
func (t *TMDBSearch) SearchTitles(ctx context.Context, query string) ([]entity.MetadataMatch, error) {
	if err := t.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrMisconfigured, err)
	}

	q := url.Values{}
	q.Set("api_key", t.cfg.APIKey)
	q.Set("query", query)
	q.Set("include_adult", "false")
	q.Set("language", t.cfg.Language)
	q.Set("page", "1")

	u := fmt.Sprintf("%s/search/multi?%s", t.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: tmdb: %v", usecase.ErrUpstream, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 200))
		return nil, fmt.Errorf("%w: tmdb http %d: %s", usecase.ErrUpstream, res.StatusCode, snippet)
	}

	var body dto.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: tmdb: decode response: %v", usecase.ErrUpstream, err)
	}

	matches := make([]entity.MetadataMatch, 0, len(body.Results))
	for _, r := range body.Results {
		matches = append(matches, t.toMatch(r))
	}
	return matches, nil
}

// toMatch はワイヤ上の1件をドメインエンティティに変換します。
// TMDBの "tv" はドメインでは "show" として扱います。
func (t *TMDBSearch) toMatch(r dto.Result) entity.MetadataMatch {
	m := entity.MetadataMatch{
		ExternalID:      r.ID,
		Overview:        r.Overview,
		PopularityScore: r.Popularity,
	}

	switch r.MediaType {
	case "movie":
		m.MediaType = entity.MediaTypeMovie
		m.Title = r.Title
		m.ReleaseYear = parseYear(r.ReleaseDate)
	case "tv":
		m.MediaType = entity.MediaTypeShow
		m.Title = r.Name
		m.ReleaseYear = parseYear(r.FirstAirDate)
	default:
		// 許可外カテゴリも生の値のまま保持し、選択側で除外させる
		m.MediaType = entity.MediaType(r.MediaType)
		m.Title = r.Name
	}

	if r.PosterPath != "" {
		m.PosterURL = t.cfg.ImageBaseURL + r.PosterPath
	}
	return m
}

// parseYear は "2010-07-16" 形式の日付から年を取り出します。不明な場合は0を返します。
func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
