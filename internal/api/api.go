// Package api はHTTPトランスポートのリクエスト/レスポンスDTOを定義します。
package api

import "time"

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// IdentifyURLRequest はURL指定での識別リクエストです。
type IdentifyURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// CandidateResponse は認識候補1件のレスポンス表現です。
type CandidateResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// BestCandidateResponse は最上位候補と信頼度階層です。
// low/none階層ではタイトルとスコアはnullになります（候補リスト自体は残ります）。
type BestCandidateResponse struct {
	Title *string  `json:"title"`
	Score *float64 `json:"score"`
	Tier  string   `json:"tier"`
}

// MetadataMatchResponse はメタデータ検索の最良一致です。
type MetadataMatchResponse struct {
	ExternalID      int64   `json:"external_id"`
	MediaType       string  `json:"media_type"`
	Title           string  `json:"title"`
	ReleaseYear     int     `json:"release_year,omitempty"`
	Overview        string  `json:"overview,omitempty"`
	PosterURL       string  `json:"poster_url,omitempty"`
	PopularityScore float64 `json:"popularity_score"`
}

// LookupResponse はメタデータ検索の結果区分です。
type LookupResponse struct {
	Status       string                 `json:"status"`
	Reason       string                 `json:"reason,omitempty"`
	ResultsCount int                    `json:"results_count"`
	BestMatch    *MetadataMatchResponse `json:"best_match"`
}

// IdentifyResponse は識別パイプライン全体のレスポンスです。
type IdentifyResponse struct {
	Status        string                `json:"status"`
	ExtractedText string                `json:"extracted_text"`
	Candidates    []CandidateResponse   `json:"candidates"`
	Best          BestCandidateResponse `json:"best"`
	Query         string                `json:"query"`
	Lookup        LookupResponse        `json:"lookup"`
	Message       string                `json:"message,omitempty"`
}

// HistoryRecordResponse は識別履歴1件のレスポンス表現です。
type HistoryRecordResponse struct {
	ID         uint      `json:"id"`
	Query      string    `json:"query"`
	Tier       string    `json:"tier"`
	BestTitle  string    `json:"best_title,omitempty"`
	MatchTitle string    `json:"match_title,omitempty"`
	MediaType  string    `json:"media_type,omitempty"`
	ExternalID int64     `json:"external_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
