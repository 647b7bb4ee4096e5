// Package vision はGoogle Cloud Vision APIを使用したスクリーン認識クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"screensnapp_backend/internal/feature/identify/domain/entity"
	"screensnapp_backend/internal/feature/identify/usecase"
)

// VisionRecognizer はGoogle Cloud Vision APIでラベル検出とテキスト検出を実行します。
// Clarifaiの代替プロバイダとして、VISION_PROVIDER=gcv で選択されます。
type VisionRecognizer struct {
	client *gvision.ImageAnnotatorClient
}

// VisionRecognizerがScreenRecognizerを実装していることをコンパイル時に検証します。
var _ usecase.ScreenRecognizer = (*VisionRecognizer)(nil)

// NewVisionRecognizer はADCを使用してVisionRecognizerの新しいインスタンスを生成します。
func NewVisionRecognizer(ctx context.Context) (*VisionRecognizer, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionRecognizer{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionRecognizer) Close() error {
	return v.client.Close()
}

// Recognize は画像バイト列からラベル候補とOCRテキストを取得します。
func (v *VisionRecognizer) Recognize(ctx context.Context, imageData []byte) (*entity.Recognition, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LABEL_DETECTION},
					{Type: visionpb.Feature_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: vision API request failed: %v", usecase.ErrUpstream, err)
	}

	if len(resp.Responses) == 0 {
		return &entity.Recognition{}, nil
	}
	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return nil, fmt.Errorf("%w: vision API error: %s", usecase.ErrUpstream, annotated.Error.Message)
	}

	candidates := make([]entity.RecognitionCandidate, 0, len(annotated.LabelAnnotations))
	for _, label := range annotated.LabelAnnotations {
		candidates = append(candidates, entity.RecognitionCandidate{
			Label:    label.Description,
			Score:    float64(label.Score),
			SourceID: label.Mid,
		})
	}

	// TextAnnotationsの先頭要素は画像全体の全文で、以降は単語単位の断片。
	// 全文のみを採用する。
	var fragments []string
	if len(annotated.TextAnnotations) > 0 && annotated.TextAnnotations[0].Description != "" {
		fragments = []string{annotated.TextAnnotations[0].Description}
	}

	return &entity.Recognition{Candidates: candidates, Fragments: fragments}, nil
}
