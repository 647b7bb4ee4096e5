package usecase

import (
	"sort"

	"screensnapp_backend/internal/feature/identify/domain/entity"
)

const (
	// DefaultHighConfidence はhigh階層のデフォルト閾値です。
	DefaultHighConfidence = 0.85
	// DefaultMediumConfidence はmedium階層のデフォルト閾値です。
	DefaultMediumConfidence = 0.65
)

// Ranking は候補リストの順位付け結果を表します。
type Ranking struct {
	Candidates []entity.RecognitionCandidate // スコア降順（同点は到着順を保持）
	Best       *entity.RecognitionCandidate  // 候補が空の場合はnil
	Tier       entity.ConfidenceTier
	BestTitle  string // high/mediumのみ公開、low/noneでは空
}

// RankCandidates は候補をスコア降順に安定ソートし、最上位候補の信頼度階層と
// タイトルを公開するかどうかの判定を返します。
//
// スコアは比較前に[0,1]へクランプされます。上流APIが範囲外の値を返すことは
// 想定されていませんが、防御的に補正します。
func RankCandidates(candidates []entity.RecognitionCandidate, high, med float64) Ranking {
	if len(candidates) == 0 {
		return Ranking{Candidates: []entity.RecognitionCandidate{}, Tier: entity.TierNone}
	}

	ranked := make([]entity.RecognitionCandidate, len(candidates))
	copy(ranked, candidates)
	for i := range ranked {
		ranked[i].Score = clampScore(ranked[i].Score)
	}

	// 安定ソート: 同点の場合は元の到着順を保持する
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	best := &ranked[0]
	tier := tierFor(best.Score, high, med)

	r := Ranking{Candidates: ranked, Best: best, Tier: tier}
	// low/noneの推測を確定事実として提示しないため、タイトルはhigh/mediumのみ公開する
	if tier == entity.TierHigh || tier == entity.TierMedium {
		r.BestTitle = best.Label
	}
	return r
}

// tierFor はスコアを2つの閾値と比較して信頼度階層を返します。
func tierFor(score, high, med float64) entity.ConfidenceTier {
	switch {
	case score >= high:
		return entity.TierHigh
	case score >= med:
		return entity.TierMedium
	default:
		return entity.TierLow
	}
}

// clampScore はスコアを[0,1]に収めます。
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
