package entity

// MediaType はメタデータ検索結果のカテゴリです。
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeShow  MediaType = "show"
)

// MetadataMatch は外部メタデータ検索APIの1件の結果を表します。
type MetadataMatch struct {
	ExternalID      int64     // 検索API側の識別子
	MediaType       MediaType // movie / show（許可外カテゴリは生の値のまま保持）
	Title           string
	ReleaseYear     int // 不明な場合は0
	Overview        string
	PosterURL       string
	PopularityScore float64
}

// LookupStatus はメタデータ検索の結果区分です。
// 上流APIの失敗はここには含まれず、エラーとして伝播します。
type LookupStatus string

const (
	LookupFound   LookupStatus = "found"
	LookupNoMatch LookupStatus = "no_match"
	LookupSkipped LookupStatus = "skipped"
)

// LookupResult はメタデータ検索の結果と、検索しなかった場合の理由を表します。
type LookupResult struct {
	Status      LookupStatus
	Reason      string // empty_query / short_query / no_results / no_accepted_category
	ResultCount int    // フィルタ前の件数
	Match       *MetadataMatch
}

// IdentifyResult はパイプライン全体の出力です。リクエストスコープの値オブジェクトであり、
// レスポンス生成後に破棄されます。
type IdentifyResult struct {
	OCR        OCRResult
	Candidates []RecognitionCandidate // スコア降順にソート済み
	Best       *RecognitionCandidate  // 候補が空の場合はnil
	Tier       ConfidenceTier
	BestTitle  string // low/noneでは抑制され空になる
	Query      string // メタデータ検索に実際に使ったクエリ
	Lookup     LookupResult
}
