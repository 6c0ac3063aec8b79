package processing_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"learnanything-backend/internal/bootstrap"
	"learnanything-backend/internal/documents"
	"learnanything-backend/internal/shared/config"
)

const guestUserID = "guest:test-guest"

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:              "0",
		CORSAllowOrigin:   []string{"http://localhost:8081"},
		ObjectStoreType:   "local",
		LocalStoreDir:     t.TempDir(),
		CacheDir:          t.TempDir(),
		QuizQuestionCount: 5,
		QuizDifficulty:    "medium",
		Env:               "dev",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func seedDocument(t *testing.T, app *bootstrap.App) documents.Document {
	t.Helper()
	doc, err := app.DocumentsService.Upload(context.Background(), guestUserID, "Biology", "biology.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return doc
}

func TestGenerateAccepted(t *testing.T) {
	app := buildTestApp(t)
	doc := seedDocument(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+doc.ID+"/generate", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		DocumentID string `json:"documentId"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "processing" {
		t.Fatalf("expected status processing, got %s", body.Status)
	}
}

func TestGenerateConflictWhileProcessing(t *testing.T) {
	app := buildTestApp(t)
	doc := seedDocument(t, app)

	err := app.DocumentsRepo.UpdateStatusIf(context.Background(), guestUserID, doc.ID,
		[]documents.Status{documents.StatusUploaded}, documents.StatusProcessing, nil)
	if err != nil {
		t.Fatalf("mark processing: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+doc.ID+"/generate", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestGenerateUnknownDocument(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/missing/generate", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestGenerateRejectsBadOverrides(t *testing.T) {
	app := buildTestApp(t)
	doc := seedDocument(t, app)

	payload, _ := json.Marshal(map[string]any{"difficulty": "impossible"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+doc.ID+"/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
