// Package entity はhistoryフィーチャーのドメインモデルを定義します。
package entity

import "time"

// Record は完了した識別1回分の永続化された記録です。
// パイプラインの値オブジェクトとは独立した投影であり、レスポンス生成には関与しません。
type Record struct {
	ID         uint      `gorm:"primaryKey"`
	Query      string    // メタデータ検索に使ったクエリ
	Tier       string    // 信頼度階層（high/medium/low/none）
	BestTitle  string    // 公開された最上位候補（抑制時は空）
	MatchTitle string    // メタデータ照合のタイトル（一致なしは空）
	MediaType  string    // movie / show
	ExternalID int64     // 検索API側の識別子
	CreatedAt  time.Time `gorm:"index"`
}
