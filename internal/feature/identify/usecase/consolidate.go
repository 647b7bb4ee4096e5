package usecase

import (
	"strings"

	"screensnapp_backend/internal/feature/identify/domain/entity"
)

// MaxCombinedTextLength は統合テキストの最大文字数（rune数）です。
const MaxCombinedTextLength = 5000

// Consolidate はOCR断片を1つのテキストに統合します。
//
//   - 各断片は前後の空白をトリムし、空になった断片は捨てる
//   - 大文字小文字を区別せずに重複を排除する（最初の出現が勝ち、順序は保持）
//   - 残った断片を半角スペース1つで結合し、最大長で切り詰める
//
// 自身の出力に対して再実行しても結果は変わりません（冪等）。
func Consolidate(fragments []string) entity.OCRResult {
	kept := make([]string, 0, len(fragments))
	seen := make(map[string]struct{}, len(fragments))

	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key := strings.ToLower(f)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, f)
	}

	combined := strings.Join(kept, " ")
	if runes := []rune(combined); len(runes) > MaxCombinedTextLength {
		combined = string(runes[:MaxCombinedTextLength])
	}

	return entity.OCRResult{Fragments: kept, CombinedText: combined}
}
