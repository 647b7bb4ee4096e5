// Package dto はClarifai REST API v2のリクエスト/レスポンス構造体を定義します。
package dto

// StatusSuccess はClarifai APIの成功ステータスコードです。
const StatusSuccess = 10000

// OutputsRequest はPostModelOutputsのリクエストボディです。
type OutputsRequest struct {
	Inputs []Input `json:"inputs"`
}

type Input struct {
	Data InputData `json:"data"`
}

type InputData struct {
	Image Image `json:"image"`
}

type Image struct {
	Base64 string `json:"base64"`
}

// OutputsResponse はPostModelOutputsのレスポンスボディです。
type OutputsResponse struct {
	Status  Status   `json:"status"`
	Outputs []Output `json:"outputs"`
}

type Status struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

type Output struct {
	Status Status     `json:"status"`
	Data   OutputData `json:"data"`
}

// OutputData はモデルにより形が変わります。OCRモデルはtextやregionsを、
// コンセプトモデルはconceptsを埋めます。
type OutputData struct {
	Text     *Text     `json:"text,omitempty"`
	Regions  []Region  `json:"regions,omitempty"`
	Concepts []Concept `json:"concepts,omitempty"`
}

type Region struct {
	Data RegionData `json:"data"`
}

type RegionData struct {
	Text *Text `json:"text,omitempty"`
}

type Text struct {
	Raw string `json:"raw"`
}

type Concept struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
