package handlers

import (
	"github.com/rs/zerolog"

	"warung-server/internal/domain/negotiation"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Negotiation *NegotiationHandler
	Log         *LogHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(service negotiation.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Negotiation: NewNegotiationHandler(service, log),
		Log:         NewLogHandler(service, log),
	}
}
