package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"rapporteur_backend/internal/app"
	"rapporteur_backend/internal/config"
	"rapporteur_backend/internal/repositories"
)

// TestServer is a fully wired API over the in-memory store and a
// throwaway upload directory. Each instance is isolated.
type TestServer struct {
	Server    *httptest.Server
	Repo      *repositories.MemoryReportRepository
	UploadDir string
}

// NewTestServer builds a server for one test; cleanup is tied to t.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploadDir := t.TempDir()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Reports.Store = "memory"
	cfg.Storage.BasePath = uploadDir
	cfg.Storage.BaseURL = config.DefaultUploadBaseURL
	cfg.Upload.MaxSize = config.DefaultMaxUploadSize

	repo := repositories.NewMemoryReportRepository()
	router := app.SetupRouter(cfg, repo)
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:    server,
		Repo:      repo,
		UploadDir: uploadDir,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.Repo.Close()
}

// SendJSON issues a request with an optional JSON body and returns
// the response plus its body as a string.
func (ts *TestServer) SendJSON(t *testing.T, method, path string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.do(t, req)
}

// TestFile is an attachment for a multipart request.
type TestFile struct {
	FieldName   string
	Filename    string
	ContentType string
	Content     []byte
}

// PDFFile builds a small well-formed attachment for the happy path.
func PDFFile(name string) *TestFile {
	return &TestFile{
		FieldName:   "file",
		Filename:    name,
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4\n%test fixture\n%%EOF"),
	}
}

// SendMultipart issues a multipart form request, optionally carrying a
// file, the way the report endpoints are driven in production.
func (ts *TestServer) SendMultipart(t *testing.T, method, path string, fields map[string]string, file *TestFile) (*http.Response, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", key, err)
		}
	}

	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.FieldName+`"; filename="`+file.Filename+`"`)
		h.Set("Content-Type", file.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			t.Fatalf("failed to write file content: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to finalize multipart body: %v", err)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, &body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return ts.do(t, req)
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return res, string(raw)
}
