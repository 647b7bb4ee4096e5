package clarifai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"screensnapp_backend/internal/feature/identify/usecase"
)

func testConfig(baseURL string) Config {
	return Config{
		PAT:     "test-pat",
		UserID:  "test-user",
		AppID:   "test-app",
		ModelID: "ocr-model",
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

func TestClarifaiRecognizer_Recognize_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify auth header and endpoint path
		if got := r.Header.Get("Authorization"); got != "Key test-pat" {
			t.Errorf("expected Key auth header, got %q", got)
		}
		if want := "/v2/users/test-user/apps/test-app/models/ocr-model/outputs"; r.URL.Path != want {
			t.Errorf("expected path %q, got %q", want, r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": {"code": 10000, "description": "Ok"},
			"outputs": [{
				"status": {"code": 10000, "description": "Ok"},
				"data": {
					"text": {"raw": "INCEPTION"},
					"regions": [
						{"data": {"text": {"raw": "Now streaming"}}}
					],
					"concepts": [
						{"id": "c1", "name": "Inception", "value": 0.91},
						{"id": "c2", "name": "Interstellar", "value": 0.40}
					]
				}
			}]
		}`))
	}))
	defer server.Close()

	rec := NewClarifaiRecognizer(testConfig(server.URL), server.Client())

	recog, err := rec.Recognize(context.Background(), []byte("fake-image"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 全文フィールドが存在する場合はそれが勝ち、リージョンへはフォールバックしない
	if len(recog.Fragments) != 1 || recog.Fragments[0] != "INCEPTION" {
		t.Errorf("expected full-text fragment, got %v", recog.Fragments)
	}
	if len(recog.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(recog.Candidates))
	}
	if recog.Candidates[0].Label != "Inception" || recog.Candidates[0].Score != 0.91 {
		t.Errorf("unexpected first candidate: %+v", recog.Candidates[0])
	}
	if recog.Candidates[0].SourceID != "c1" {
		t.Errorf("expected source id c1, got %q", recog.Candidates[0].SourceID)
	}
}

func TestClarifaiRecognizer_Recognize_RegionFallback(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": {"code": 10000, "description": "Ok"},
			"outputs": [{
				"data": {
					"regions": [
						{"data": {"text": {"raw": "The Matrix"}}},
						{"data": {}},
						{"data": {"text": {"raw": "1999"}}}
					]
				}
			}]
		}`))
	}))
	defer server.Close()

	rec := NewClarifaiRecognizer(testConfig(server.URL), server.Client())

	recog, err := rec.Recognize(context.Background(), []byte("fake-image"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recog.Fragments) != 2 || recog.Fragments[0] != "The Matrix" || recog.Fragments[1] != "1999" {
		t.Errorf("expected region fragments, got %v", recog.Fragments)
	}
}

func TestClarifaiRecognizer_Recognize_ConceptNameFallback(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": {"code": 10000, "description": "Ok"},
			"outputs": [{
				"data": {
					"concepts": [{"id": "c1", "name": "Dune", "value": 0.8}]
				}
			}]
		}`))
	}))
	defer server.Close()

	rec := NewClarifaiRecognizer(testConfig(server.URL), server.Client())

	recog, err := rec.Recognize(context.Background(), []byte("fake-image"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recog.Fragments) != 1 || recog.Fragments[0] != "Dune" {
		t.Errorf("expected concept-name fragment, got %v", recog.Fragments)
	}
}

func TestClarifaiRecognizer_Recognize_VersionedModelPath(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if want := "/v2/users/test-user/apps/test-app/models/ocr-model/versions/v123/outputs"; r.URL.Path != want {
			t.Errorf("expected versioned path %q, got %q", want, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": {"code": 10000}, "outputs": []}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.ModelVersionID = "v123"
	rec := NewClarifaiRecognizer(cfg, server.Client())

	recog, err := rec.Recognize(context.Background(), []byte("fake-image"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recog.Candidates) != 0 || len(recog.Fragments) != 0 {
		t.Errorf("expected empty recognition for empty outputs, got %+v", recog)
	}
}

func TestClarifaiRecognizer_Recognize_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	rec := NewClarifaiRecognizer(testConfig(server.URL), server.Client())

	_, err := rec.Recognize(context.Background(), []byte("fake-image"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, usecase.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "clarifai http 503") {
		t.Errorf("expected upstream status in message, got %v", err)
	}
}

func TestClarifaiRecognizer_Recognize_APIStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": {"code": 11009, "description": "Invalid API key"}}`))
	}))
	defer server.Close()

	rec := NewClarifaiRecognizer(testConfig(server.URL), server.Client())

	_, err := rec.Recognize(context.Background(), []byte("fake-image"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, usecase.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "11009") || !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("expected upstream code and description in message, got %v", err)
	}
}

func TestClarifaiRecognizer_Recognize_InvalidJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{invalid json`))
	}))
	defer server.Close()

	rec := NewClarifaiRecognizer(testConfig(server.URL), server.Client())

	_, err := rec.Recognize(context.Background(), []byte("fake-image"))
	if !errors.Is(err, usecase.ErrUpstream) {
		t.Errorf("expected ErrUpstream for malformed response, got %v", err)
	}
}

func TestClarifaiRecognizer_Recognize_Misconfigured(t *testing.T) {
	t.Parallel()

	cfg := testConfig("https://api.test.invalid")
	cfg.PAT = ""
	rec := NewClarifaiRecognizer(cfg, &http.Client{})

	_, err := rec.Recognize(context.Background(), []byte("fake-image"))
	if !errors.Is(err, usecase.ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
	if !strings.Contains(err.Error(), "CLARIFAI_PAT") {
		t.Errorf("expected missing setting name in message, got %v", err)
	}
}
