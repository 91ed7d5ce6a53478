package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ong-espoir/api-server-go/notify"
	"github.com/ong-espoir/api-server-go/storage"
	"github.com/ong-espoir/api-server-go/v1/services"
	"github.com/stretchr/testify/require"
)

// echoTranslator tags text with the target locale instead of calling a
// provider
type echoTranslator struct{}

func (echoTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	return "[" + target + "] " + text, nil
}

func newTestMux(t *testing.T) *http.ServeMux {
	db := services.SetupSQLiteTestDB(t)

	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	handler := NewV1Handler(db, V1HandlerConfig{
		Translator:   echoTranslator{},
		Store:        store,
		Notifier:     notify.NoopNotifier{},
		AdminEmail:   "admin@example.org",
		AssetBaseURL: "http://localhost:8080",
		JWTSecret:    "test-secret",
	})

	mux := http.NewServeMux()
	handler.SetupV1Routes(mux)
	return mux
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, mux *http.ServeMux, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)

	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body),
		"response was not an envelope: %s", recorder.Body.String())
	return recorder, body
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, payload interface{}) (*httptest.ResponseRecorder, envelope) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return doRequest(t, mux, req)
}

// multipartBody builds a multipart request body from fields and files
func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".jpg")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}
