package entity

// OCRResult は複数のOCR断片を統合した結果を表します。
type OCRResult struct {
	Fragments    []string // トリム・重複排除済みの断片（元の順序を保持）
	CombinedText string   // 断片を半角スペースで結合し、最大長で切り詰めた文字列
}
