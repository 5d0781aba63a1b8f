package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"warung-server/internal/domain/envelope"
	"warung-server/internal/domain/negotiation"
	"warung-server/internal/utils/apperrors"
)

// ErrorResponse is the JSON body returned on failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleError maps a domain or repository error to an HTTP response.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		reqCtx.AbortWithStatusJSON(apperrors.HTTPStatus(appErr.Type), ErrorResponse{
			Error:   message,
			Message: appErr.Message,
		})
		return
	}
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   message,
		Message: message,
	})
}

// HandleValidationError rejects a malformed request body before any state
// is touched.
func HandleValidationError(reqCtx *gin.Context, err error) {
	appErr := apperrors.New(apperrors.LayerHandler, apperrors.ErrorTypeValidation, "invalid request body", err)
	reqCtx.AbortWithStatusJSON(apperrors.HTTPStatus(appErr.Type), ErrorResponse{
		Error:   appErr.Message,
		Message: err.Error(),
	})
}

// NegotiationResponse wraps the Provider's reply envelope for the
// request/reply endpoints.
type NegotiationResponse struct {
	ConversationID   string            `json:"conversation_id"`
	ProviderResponse envelope.Envelope `json:"provider_response"`
}

// FromExchange maps a negotiation exchange to its response payload.
func FromExchange(e *negotiation.Exchange) NegotiationResponse {
	return NegotiationResponse{
		ConversationID:   e.ConversationID,
		ProviderResponse: e.Reply,
	}
}

// ConfirmResponse wraps the final-confirmation receipt in the same
// {conversation_id, provider_response} shape as the other negotiation
// endpoints.
type ConfirmResponse struct {
	ConversationID   string         `json:"conversation_id"`
	ProviderResponse ConfirmReceipt `json:"provider_response"`
}

// ConfirmReceipt is the order receipt closing a confirmed negotiation.
type ConfirmReceipt struct {
	OrderNumber   string `json:"nomor_order"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// FromConfirmation maps the confirmation receipt to its response payload.
func FromConfirmation(c *negotiation.Confirmation) ConfirmResponse {
	return ConfirmResponse{
		ConversationID: c.ConversationID,
		ProviderResponse: ConfirmReceipt{
			OrderNumber:   c.Receipt.Number,
			Status:        c.Receipt.Status,
			PaymentStatus: c.Receipt.PaymentStatus,
		},
	}
}

// LogEntryResponse is one conversation-log envelope as served by the log
// endpoints.
type LogEntryResponse struct {
	Timestamp      string  `json:"timestamp"`
	Sender         string  `json:"sender"`
	Receiver       string  `json:"receiver"`
	Performative   string  `json:"performative"`
	ConversationID string  `json:"conversation_id"`
	Content        any     `json:"content"`
	ReplyWith      *string `json:"reply_with"`
	InReplyTo      *string `json:"in_reply_to"`
}

// FromLogEntries maps persisted log entries to their response payloads.
func FromLogEntries(entries []negotiation.LogEntry) []LogEntryResponse {
	out := make([]LogEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, LogEntryResponse{
			Timestamp:      entry.Envelope.Timestamp,
			Sender:         string(entry.Envelope.Sender),
			Receiver:       string(entry.Envelope.Receiver),
			Performative:   string(entry.Envelope.Performative),
			ConversationID: entry.Envelope.ConversationID,
			Content:        entry.Envelope.Content,
			ReplyWith:      entry.Envelope.ReplyWith,
			InReplyTo:      entry.Envelope.InReplyTo,
		})
	}
	return out
}
