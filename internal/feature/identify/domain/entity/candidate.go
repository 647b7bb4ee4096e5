// Package entity はidentifyフィーチャーのドメインモデルを定義します。
package entity

// RecognitionCandidate は画像認識モデルが返した候補ラベルを表します。
type RecognitionCandidate struct {
	Label    string  // 認識されたラベル（コンセプト名）
	Score    float64 // 信頼度スコア（0.0 ~ 1.0）
	SourceID string  // 認識元モデルでの識別子（存在する場合）
}

// ConfidenceTier はスコアから導出される信頼度の階層です。
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "high"
	TierMedium ConfidenceTier = "medium"
	TierLow    ConfidenceTier = "low"
	TierNone   ConfidenceTier = "none"
)

// Recognition は1回のビジョンAPI呼び出しの生の結果を表します。
// CandidatesとFragmentsはどちらも空になり得ます。
type Recognition struct {
	Candidates []RecognitionCandidate // コンセプト形式の候補（ラベル＋スコア）
	Fragments  []string               // OCR形式のテキスト断片（未統合）
}
