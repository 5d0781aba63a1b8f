package negotiation

import (
	"time"

	"warung-server/internal/domain/envelope"
)

// LogEntry is a persisted envelope. IDs are assigned by the store in append
// order; "latest" queries rely on that monotonicity.
type LogEntry struct {
	ID       uint
	Envelope envelope.Envelope
}

// Phase tracks where a conversation stands in the negotiation.
type Phase string

const (
	PhaseRequested         Phase = "requested"
	PhaseConfirmed         Phase = "confirmed"
	PhaseDisconfirmed      Phase = "disconfirmed"
	PhaseCustomerConfirmed Phase = "customer_confirmed"
	PhaseOrderConfirmed    Phase = "order_confirmed"
)

// ConversationState is the per-conversation record updated transactionally
// with every log append. It replaces re-scanning the log to infer where a
// negotiation stands; substitution reads LastOrder from here.
type ConversationState struct {
	ConversationID string
	Phase          Phase
	LastReplyWith  string
	LastOrder      *envelope.OrderDetails
	UpdatedAt      time.Time
}
