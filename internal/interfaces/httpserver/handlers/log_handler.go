package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"warung-server/internal/domain/negotiation"
	"warung-server/internal/interfaces/httpserver/responses"
)

// LogHandler serves the conversation log read endpoints.
type LogHandler struct {
	service negotiation.Service
	log     zerolog.Logger
}

// NewLogHandler constructs the handler.
func NewLogHandler(service negotiation.Service, log zerolog.Logger) *LogHandler {
	return &LogHandler{
		service: service,
		log:     log.With().Str("handler", "log").Logger(),
	}
}

// List handles GET /logs
// @Summary List the full conversation log
// @Description Returns every logged envelope in append order
// @Tags Logs
// @Produce json
// @Success 200 {array} responses.LogEntryResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /logs [get]
func (h *LogHandler) List(c *gin.Context) {
	entries, err := h.service.ListLogs(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list logs")
		return
	}

	c.JSON(http.StatusOK, responses.FromLogEntries(entries))
}

// Conversation handles GET /logs/:conversation_id
// @Summary List one conversation's envelopes
// @Description Returns the envelopes of a single conversation in append order
// @Tags Logs
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Success 200 {array} responses.LogEntryResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /logs/{conversation_id} [get]
func (h *LogHandler) Conversation(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	entries, err := h.service.Conversation(c.Request.Context(), conversationID)
	if err != nil {
		responses.HandleError(c, err, "failed to list conversation logs")
		return
	}

	c.JSON(http.StatusOK, responses.FromLogEntries(entries))
}
