package routes

import (
	"github.com/gin-gonic/gin"

	"warung-server/internal/interfaces/httpserver/handlers"
)

// Provider coordinates all route registrations.
type Provider struct {
	handlers *handlers.Provider
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{handlers: handlerProvider}
}

// Register attaches the negotiation and log routes to the gin engine. The
// endpoints live at the root path for compatibility with the simulation
// frontend.
func (p *Provider) Register(engine *gin.Engine) {
	engine.POST("/info", p.handlers.Negotiation.Info)
	engine.POST("/order", p.handlers.Negotiation.Order)
	engine.POST("/order/confirm", p.handlers.Negotiation.Confirm)
	engine.POST("/order/substitute", p.handlers.Negotiation.Substitute)

	engine.GET("/logs", p.handlers.Log.List)
	engine.GET("/logs/:conversation_id", p.handlers.Log.Conversation)
}
