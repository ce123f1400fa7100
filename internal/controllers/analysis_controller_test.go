package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/loglens/backend/internal/services"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewAnalysisController(nil, nil)
	r.POST("/api/v1/analysis/parse", controller.ParsePreview)
	r.POST("/api/v1/session/decode", controller.DecodeSession)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParsePreviewReturnsLocalRecords(t *testing.T) {
	r := setupTestRouter()

	w := postJSON(t, r, "/api/v1/analysis/parse", gin.H{"logData": "INFO started\n\nERROR broke"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Records []struct {
			ID      int    `json:"id"`
			Level   string `json:"level"`
			Message string `json:"message"`
		} `json:"records"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(resp.Records))
	}
	if resp.Records[0].Level != "INFO" || resp.Records[1].Level != "ERROR" {
		t.Errorf("Unexpected levels: %+v", resp.Records)
	}
	if resp.Records[0].ID != 0 || resp.Records[1].ID != 1 {
		t.Errorf("Expected contiguous ids, got %+v", resp.Records)
	}
}

func TestDecodeSessionRoundTrip(t *testing.T) {
	r := setupTestRouter()

	token, err := services.EncodeSession("WARN disk almost full")
	if err != nil {
		t.Fatalf("EncodeSession failed: %v", err)
	}

	w := postJSON(t, r, "/api/v1/session/decode", gin.H{"token": token})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		LogData string `json:"logData"`
		Cleared bool   `json:"cleared"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.LogData != "WARN disk almost full" || resp.Cleared {
		t.Errorf("Unexpected decode response: %+v", resp)
	}
}

func TestDecodeSessionClearsCorruptToken(t *testing.T) {
	r := setupTestRouter()

	w := postJSON(t, r, "/api/v1/session/decode", gin.H{"token": "!!!corrupt!!!"})
	if w.Code != http.StatusOK {
		t.Fatalf("Corrupt tokens must not surface as errors, got %d", w.Code)
	}

	var resp struct {
		LogData string `json:"logData"`
		Cleared bool   `json:"cleared"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.LogData != "" || !resp.Cleared {
		t.Errorf("Expected empty text and cleared flag, got %+v", resp)
	}
}
