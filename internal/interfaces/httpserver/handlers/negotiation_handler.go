package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"warung-server/internal/domain/negotiation"
	"warung-server/internal/interfaces/httpserver/requests"
	"warung-server/internal/interfaces/httpserver/responses"
)

// NegotiationHandler exposes the Customer-facing negotiation endpoints.
type NegotiationHandler struct {
	service negotiation.Service
	log     zerolog.Logger
}

// NewNegotiationHandler constructs the handler.
func NewNegotiationHandler(service negotiation.Service, log zerolog.Logger) *NegotiationHandler {
	return &NegotiationHandler{
		service: service,
		log:     log.With().Str("handler", "negotiation").Logger(),
	}
}

// Info handles POST /info
// @Summary Request the menu
// @Description Logs a Customer menu request and returns the Provider's catalog snapshot
// @Tags Negotiation
// @Accept json
// @Produce json
// @Param request body requests.InfoRequest false "Menu request"
// @Success 200 {object} responses.NegotiationResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /info [post]
func (h *NegotiationHandler) Info(c *gin.Context) {
	var req requests.InfoRequest
	// An empty body starts a fresh conversation.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleValidationError(c, err)
			return
		}
	}

	exchange, err := h.service.MenuInfo(c.Request.Context(), negotiation.MenuInfoParams{
		ConversationID: req.ConversationID,
		SlotFilter:     req.SlotFilter,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to serve menu info")
		return
	}

	c.JSON(http.StatusOK, responses.FromExchange(exchange))
}

// Order handles POST /order
// @Summary Place an order
// @Description Logs the order request, reserves stock and a delivery window, and returns confirm or disconfirm
// @Tags Negotiation
// @Accept json
// @Produce json
// @Param request body requests.OrderRequest true "Order request"
// @Success 200 {object} responses.NegotiationResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /order [post]
func (h *NegotiationHandler) Order(c *gin.Context) {
	var req requests.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleValidationError(c, err)
		return
	}

	exchange, err := h.service.PlaceOrder(c.Request.Context(), negotiation.OrderParams{
		ConversationID: req.ConversationID,
		Item:           req.Item,
		Quantity:       req.Quantity,
		Address:        req.Address,
		Slot:           req.Slot,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to process order")
		return
	}

	c.JSON(http.StatusOK, responses.FromExchange(exchange))
}

// Confirm handles POST /order/confirm
// @Summary Confirm a negotiated order
// @Description Records the customer's confirmation and returns the order number
// @Tags Negotiation
// @Accept json
// @Produce json
// @Param request body requests.OrderConfirmRequest true "Confirmation request"
// @Success 200 {object} responses.ConfirmResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /order/confirm [post]
func (h *NegotiationHandler) Confirm(c *gin.Context) {
	var req requests.OrderConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleValidationError(c, err)
		return
	}

	confirmation, err := h.service.ConfirmOrder(c.Request.Context(), req.ConversationID)
	if err != nil {
		responses.HandleError(c, err, "failed to confirm order")
		return
	}

	c.JSON(http.StatusOK, responses.FromConfirmation(confirmation))
}

// Substitute handles POST /order/substitute
// @Summary Accept a substitute item
// @Description Re-runs the reservation for the chosen substitute using the original order's quantity and window
// @Tags Negotiation
// @Accept json
// @Produce json
// @Param request body requests.SubstituteRequest true "Substitution request"
// @Success 200 {object} responses.NegotiationResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /order/substitute [post]
func (h *NegotiationHandler) Substitute(c *gin.Context) {
	var req requests.SubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleValidationError(c, err)
		return
	}

	exchange, err := h.service.SubstituteOrder(c.Request.Context(), negotiation.SubstituteParams{
		ConversationID: req.ConversationID,
		Substitute:     req.Substitute,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to process substitution")
		return
	}

	c.JSON(http.StatusOK, responses.FromExchange(exchange))
}
