package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"warung-server/internal/domain/envelope"
	"warung-server/internal/domain/negotiation"
	"warung-server/internal/interfaces/httpserver/handlers"
)

func setupLogTestRouter(service negotiation.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := handlers.NewLogHandler(service, zerolog.Nop())
	r.GET("/logs", handler.List)
	r.GET("/logs/:conversation_id", handler.Conversation)
	return r
}

func sampleEntries(conversationID string) []negotiation.LogEntry {
	replyWith := "rw-1"
	return []negotiation.LogEntry{
		{
			ID: 1,
			Envelope: envelope.Envelope{
				Timestamp:      "2026-08-31T10:00:00Z",
				Sender:         envelope.RoleCustomer,
				Receiver:       envelope.RoleProvider,
				Performative:   envelope.PerformativeRequest,
				ConversationID: conversationID,
				Content:        map[string]any{"type": "menu_info"},
				ReplyWith:      &replyWith,
			},
		},
		{
			ID: 2,
			Envelope: envelope.Envelope{
				Timestamp:      "2026-08-31T10:00:01Z",
				Sender:         envelope.RoleProvider,
				Receiver:       envelope.RoleCustomer,
				Performative:   envelope.PerformativeInform,
				ConversationID: conversationID,
				Content:        map[string]any{"opsi": []any{}},
				InReplyTo:      &replyWith,
			},
		},
	}
}

func TestLogHandler_List(t *testing.T) {
	mockService := &MockNegotiationService{
		ListLogsFunc: func(ctx context.Context) ([]negotiation.LogEntry, error) {
			return sampleEntries("conv-1"), nil
		},
	}
	router := setupLogTestRouter(mockService)

	req, _ := http.NewRequest("GET", "/logs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(response))
	}
	if response[0]["performative"] != "request" || response[1]["performative"] != "inform" {
		t.Errorf("Unexpected performatives: %v, %v", response[0]["performative"], response[1]["performative"])
	}
	if response[0]["reply_with"] != "rw-1" {
		t.Errorf("Expected reply_with 'rw-1', got %v", response[0]["reply_with"])
	}
	if response[1]["in_reply_to"] != "rw-1" {
		t.Errorf("Expected in_reply_to 'rw-1', got %v", response[1]["in_reply_to"])
	}
}

func TestLogHandler_Conversation(t *testing.T) {
	var requested string
	mockService := &MockNegotiationService{
		ConversationFunc: func(ctx context.Context, conversationID string) ([]negotiation.LogEntry, error) {
			requested = conversationID
			return sampleEntries(conversationID), nil
		},
	}
	router := setupLogTestRouter(mockService)

	req, _ := http.NewRequest("GET", "/logs/conv-42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if requested != "conv-42" {
		t.Errorf("Expected conversation id 'conv-42', got %q", requested)
	}

	var response []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(response))
	}
	if response[0]["conversation_id"] != "conv-42" {
		t.Errorf("Expected conversation_id 'conv-42', got %v", response[0]["conversation_id"])
	}
}
