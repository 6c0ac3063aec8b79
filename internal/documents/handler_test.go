package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"learnanything-backend/internal/bootstrap"
	"learnanything-backend/internal/shared/config"
)

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

func uploadDocument(t *testing.T, router *gin.Engine, fileName string) string {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("%PDF-1.4 fake content")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		DocumentID string `json:"documentId"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.DocumentID == "" {
		t.Fatal("expected documentId, got empty")
	}
	if created.Status != "uploaded" {
		t.Fatalf("expected status uploaded, got %s", created.Status)
	}
	return created.DocumentID
}

func TestDocumentsUploadGetList(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	docID := uploadDocument(t, router, "biology.pdf")

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+docID, nil)
	addGuestHeader(reqGet)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
	var doc struct {
		DocumentID string `json:"documentId"`
		Title      string `json:"title"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&doc); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if doc.Title != "biology" {
		t.Fatalf("expected title derived from file name, got %q", doc.Title)
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	addGuestHeader(reqList)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respList.Code)
	}
	var list []struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&list); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(list) != 1 || list[0].DocumentID != docID {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestDocumentsDelete(t *testing.T) {
	app := buildTestApp(t)
	router := app.Router

	docID := uploadDocument(t, router, "notes.pdf")

	reqDel := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/"+docID, nil)
	addGuestHeader(reqDel)
	respDel := httptest.NewRecorder()
	router.ServeHTTP(respDel, reqDel)

	if respDel.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respDel.Code)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+docID, nil)
	addGuestHeader(reqGet)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", respGet.Code)
	}
}

func TestDocumentsRequireIdentity(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestDocumentsUploadRequiresFile(t *testing.T) {
	app := buildTestApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
