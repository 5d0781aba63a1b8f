package envelope

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies a party in the negotiation.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleProvider Role = "Provider"
)

// Performative is the speech-act tag of a message.
type Performative string

const (
	PerformativeRequest    Performative = "request"
	PerformativeInform     Performative = "inform"
	PerformativeConfirm    Performative = "confirm"
	PerformativeDisconfirm Performative = "disconfirm"
)

// Envelope is a single message exchanged between the Customer and Provider
// roles. The timestamp is always server-assigned at construction.
type Envelope struct {
	Timestamp      string       `json:"timestamp"`
	Sender         Role         `json:"sender"`
	Receiver       Role         `json:"receiver"`
	Performative   Performative `json:"performative"`
	ConversationID string       `json:"conversation_id"`
	Content        any          `json:"content"`
	ReplyWith      *string      `json:"reply_with"`
	InReplyTo      *string      `json:"in_reply_to"`
}

// Option customizes an envelope under construction.
type Option func(*Envelope)

// WithConversationID pins the envelope to an existing conversation. Without
// it, New generates a fresh uuid.
func WithConversationID(id string) Option {
	return func(e *Envelope) {
		if id != "" {
			e.ConversationID = id
		}
	}
}

// WithReplyWith sets the correlation id a reply is expected to echo back.
func WithReplyWith(id string) Option {
	return func(e *Envelope) {
		e.ReplyWith = &id
	}
}

// WithInReplyTo marks the envelope as a reply to the given correlation id.
func WithInReplyTo(id string) Option {
	return func(e *Envelope) {
		e.InReplyTo = &id
	}
}

// New builds an envelope with a server-assigned timestamp. Sender, receiver
// and performative are not validated beyond their types; correlation fields
// come in through options.
func New(sender, receiver Role, performative Performative, content any, opts ...Option) Envelope {
	e := Envelope{
		Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
		Sender:         sender,
		Receiver:       receiver,
		Performative:   performative,
		ConversationID: uuid.NewString(),
		Content:        content,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
