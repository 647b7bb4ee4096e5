// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"os"

	"screensnapp_backend/internal/feature/identify/adapters/clarifai"
	"screensnapp_backend/internal/feature/identify/adapters/vision"
	"screensnapp_backend/internal/feature/identify/usecase"
	infrahttp "screensnapp_backend/internal/platform/http"
)

// NewRecognizer creates a ScreenRecognizer based on the VISION_PROVIDER
// environment variable. The default provider is Clarifai; "gcv" selects
// Google Cloud Vision. The returned close function releases provider
// resources and may be nil-safe to call in all cases.
func NewRecognizer(ctx context.Context) (usecase.ScreenRecognizer, func() error, error) {
	switch os.Getenv("VISION_PROVIDER") {
	case "", "clarifai":
		cfg := clarifai.LoadConfig()
		httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
		return clarifai.NewClarifaiRecognizer(cfg, httpClient), func() error { return nil }, nil
	case "gcv":
		recognizer, err := vision.NewVisionRecognizer(ctx)
		if err != nil {
			return nil, nil, err
		}
		return recognizer, recognizer.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown VISION_PROVIDER %q", os.Getenv("VISION_PROVIDER"))
	}
}
