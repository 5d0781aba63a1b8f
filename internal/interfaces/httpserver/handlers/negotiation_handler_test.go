package handlers_test

import (
	"bytes"
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

// MockNegotiationService is a mock implementation of negotiation.Service for
// testing.
type MockNegotiationService struct {
	MenuInfoFunc        func(ctx context.Context, params negotiation.MenuInfoParams) (*negotiation.Exchange, error)
	PlaceOrderFunc      func(ctx context.Context, params negotiation.OrderParams) (*negotiation.Exchange, error)
	ConfirmOrderFunc    func(ctx context.Context, conversationID string) (*negotiation.Confirmation, error)
	SubstituteOrderFunc func(ctx context.Context, params negotiation.SubstituteParams) (*negotiation.Exchange, error)
	ListLogsFunc        func(ctx context.Context) ([]negotiation.LogEntry, error)
	ConversationFunc    func(ctx context.Context, conversationID string) ([]negotiation.LogEntry, error)
}

func (m *MockNegotiationService) MenuInfo(ctx context.Context, params negotiation.MenuInfoParams) (*negotiation.Exchange, error) {
	if m.MenuInfoFunc != nil {
		return m.MenuInfoFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockNegotiationService) PlaceOrder(ctx context.Context, params negotiation.OrderParams) (*negotiation.Exchange, error) {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockNegotiationService) ConfirmOrder(ctx context.Context, conversationID string) (*negotiation.Confirmation, error) {
	if m.ConfirmOrderFunc != nil {
		return m.ConfirmOrderFunc(ctx, conversationID)
	}
	return nil, nil
}

func (m *MockNegotiationService) SubstituteOrder(ctx context.Context, params negotiation.SubstituteParams) (*negotiation.Exchange, error) {
	if m.SubstituteOrderFunc != nil {
		return m.SubstituteOrderFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockNegotiationService) ListLogs(ctx context.Context) ([]negotiation.LogEntry, error) {
	if m.ListLogsFunc != nil {
		return m.ListLogsFunc(ctx)
	}
	return nil, nil
}

func (m *MockNegotiationService) Conversation(ctx context.Context, conversationID string) ([]negotiation.LogEntry, error) {
	if m.ConversationFunc != nil {
		return m.ConversationFunc(ctx, conversationID)
	}
	return nil, nil
}

func setupNegotiationTestRouter(service negotiation.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := handlers.NewNegotiationHandler(service, zerolog.Nop())
	r.POST("/info", handler.Info)
	r.POST("/order", handler.Order)
	r.POST("/order/confirm", handler.Confirm)
	r.POST("/order/substitute", handler.Substitute)
	return r
}

func TestNegotiationHandler_Info(t *testing.T) {
	mockService := &MockNegotiationService{
		MenuInfoFunc: func(ctx context.Context, params negotiation.MenuInfoParams) (*negotiation.Exchange, error) {
			return &negotiation.Exchange{
				ConversationID: "conv-123",
				Reply: envelope.New(
					envelope.RoleProvider, envelope.RoleCustomer, envelope.PerformativeInform,
					envelope.MenuOptions{Options: []envelope.MenuOption{
						{Item: "Burger", Stock: 5, Estimate: "35-50 menit", DeliveryFee: 5000},
					}},
					envelope.WithConversationID("conv-123"),
				),
			}, nil
		},
	}
	router := setupNegotiationTestRouter(mockService)

	req, _ := http.NewRequest("POST", "/info", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if response["conversation_id"] != "conv-123" {
		t.Errorf("Expected conversation id 'conv-123', got %v", response["conversation_id"])
	}
	provider, ok := response["provider_response"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected provider_response object, got %v", response["provider_response"])
	}
	if provider["performative"] != "inform" {
		t.Errorf("Expected performative 'inform', got %v", provider["performative"])
	}
}

func TestNegotiationHandler_InfoEmptyBody(t *testing.T) {
	called := false
	mockService := &MockNegotiationService{
		MenuInfoFunc: func(ctx context.Context, params negotiation.MenuInfoParams) (*negotiation.Exchange, error) {
			called = true
			if params.ConversationID != "" {
				t.Errorf("Expected empty conversation id, got %q", params.ConversationID)
			}
			return &negotiation.Exchange{ConversationID: "generated"}, nil
		},
	}
	router := setupNegotiationTestRouter(mockService)

	req, _ := http.NewRequest("POST", "/info", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !called {
		t.Error("Expected service to be called for an empty body")
	}
}

func TestNegotiationHandler_InfoBindsSlotFilter(t *testing.T) {
	var got negotiation.MenuInfoParams
	mockService := &MockNegotiationService{
		MenuInfoFunc: func(ctx context.Context, params negotiation.MenuInfoParams) (*negotiation.Exchange, error) {
			got = params
			return &negotiation.Exchange{ConversationID: params.ConversationID}, nil
		},
	}
	router := setupNegotiationTestRouter(mockService)

	body := `{"conversation_id":"conv-1","slot":"12:00-13:00"}`
	req, _ := http.NewRequest("POST", "/info", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if got.ConversationID != "conv-1" {
		t.Errorf("Expected conversation id 'conv-1', got %q", got.ConversationID)
	}
	if got.SlotFilter == nil || *got.SlotFilter != "12:00-13:00" {
		t.Errorf("Expected slot filter '12:00-13:00', got %v", got.SlotFilter)
	}
}

func TestNegotiationHandler_Order(t *testing.T) {
	var got negotiation.OrderParams
	mockService := &MockNegotiationService{
		PlaceOrderFunc: func(ctx context.Context, params negotiation.OrderParams) (*negotiation.Exchange, error) {
			got = params
			return &negotiation.Exchange{
				ConversationID: params.ConversationID,
				Reply: envelope.New(
					envelope.RoleProvider, envelope.RoleCustomer, envelope.PerformativeConfirm,
					envelope.OrderReceipt{Item: params.Item, Quantity: params.Quantity},
					envelope.WithConversationID(params.ConversationID),
				),
			}, nil
		},
	}
	router := setupNegotiationTestRouter(mockService)

	body := `{"conversation_id":"conv-1","item_menu":"Burger","jumlah":2,"alamat_pengiriman":"Jl. Kenanga No. 3","time_window":"12:00-13:00"}`
	req, _ := http.NewRequest("POST", "/order", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if got.Item != "Burger" || got.Quantity != 2 || got.Slot != "12:00-13:00" {
		t.Errorf("Unexpected order params: %+v", got)
	}
}

func TestNegotiationHandler_OrderRejectsInvalidBody(t *testing.T) {
	called := false
	mockService := &MockNegotiationService{
		PlaceOrderFunc: func(ctx context.Context, params negotiation.OrderParams) (*negotiation.Exchange, error) {
			called = true
			return nil, nil
		},
	}
	router := setupNegotiationTestRouter(mockService)

	// Missing item_menu and a non-positive quantity.
	body := `{"conversation_id":"conv-1","jumlah":0,"alamat_pengiriman":"Jl. Kenanga","time_window":"12:00-13:00"}`
	req, _ := http.NewRequest("POST", "/order", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if called {
		t.Error("Expected service not to be called for an invalid body")
	}
}

func TestNegotiationHandler_Confirm(t *testing.T) {
	mockService := &MockNegotiationService{
		ConfirmOrderFunc: func(ctx context.Context, conversationID string) (*negotiation.Confirmation, error) {
			return &negotiation.Confirmation{
				ConversationID: conversationID,
				Receipt: envelope.OrderNumber{
					Number:        "ABC123",
					Status:        "confirmed",
					PaymentStatus: "pending",
				},
			}, nil
		},
	}
	router := setupNegotiationTestRouter(mockService)

	req, _ := http.NewRequest("POST", "/order/confirm", bytes.NewBufferString(`{"conversation_id":"abc123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["conversation_id"] != "abc123" {
		t.Errorf("Expected conversation id 'abc123', got %v", response["conversation_id"])
	}
	provider, ok := response["provider_response"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected provider_response object, got %v", response["provider_response"])
	}
	if provider["nomor_order"] != "ABC123" {
		t.Errorf("Expected order number 'ABC123', got %v", provider["nomor_order"])
	}
	if provider["status"] != "confirmed" || provider["payment_status"] != "pending" {
		t.Errorf("Unexpected receipt fields: %v", provider)
	}
}

func TestNegotiationHandler_Substitute(t *testing.T) {
	mockService := &MockNegotiationService{
		SubstituteOrderFunc: func(ctx context.Context, params negotiation.SubstituteParams) (*negotiation.Exchange, error) {
			return &negotiation.Exchange{
				ConversationID: params.ConversationID,
				Reply: envelope.New(
					envelope.RoleProvider, envelope.RoleCustomer, envelope.PerformativeDisconfirm,
					envelope.Rejection{Reason: "Order asli tidak ditemukan"},
					envelope.WithConversationID(params.ConversationID),
				),
			}, nil
		},
	}
	router := setupNegotiationTestRouter(mockService)

	req, _ := http.NewRequest("POST", "/order/substitute", bytes.NewBufferString(`{"conversation_id":"conv-1","substitusi":"Burger"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	provider, ok := response["provider_response"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected provider_response object, got %v", response["provider_response"])
	}
	if provider["performative"] != "disconfirm" {
		t.Errorf("Expected performative 'disconfirm', got %v", provider["performative"])
	}
	content, ok := provider["content"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected content object, got %v", provider["content"])
	}
	if content["alasan"] != "Order asli tidak ditemukan" {
		t.Errorf("Unexpected rejection reason: %v", content["alasan"])
	}
}
