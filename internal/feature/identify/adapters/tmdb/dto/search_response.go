// Package dto はTMDB API v3のレスポンス構造体を定義します。
package dto

// SearchResponse は /search/multi のページングされたレスポンスです。
type SearchResponse struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Result は検索結果の1件です。media_typeによりフィールドの使われ方が変わります:
// movieはtitle/release_date、tvはname/first_air_dateを埋めます。
type Result struct {
	ID           int64   `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	Popularity   float64 `json:"popularity"`
}
