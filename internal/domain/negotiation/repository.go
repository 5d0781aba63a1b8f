package negotiation

import (
	"context"

	"warung-server/internal/domain/envelope"
)

// Repository defines conversation-log persistence. The log is append-only;
// entries are never updated or deleted.
type Repository interface {
	// Append stores the entry and upserts the conversation state in one
	// transaction, returning the entry with its assigned id.
	Append(ctx context.Context, entry *LogEntry, state *ConversationState) (*LogEntry, error)

	// All returns every entry ordered by id ascending.
	All(ctx context.Context) ([]LogEntry, error)

	// ByConversation returns the conversation's entries ordered by id ascending.
	ByConversation(ctx context.Context, conversationID string) ([]LogEntry, error)

	// LatestBy returns the highest-id entry matching both filters, or nil.
	LatestBy(ctx context.Context, conversationID string, performative envelope.Performative) (*LogEntry, error)

	// State returns the conversation state record, or nil when the
	// conversation has never been seen.
	State(ctx context.Context, conversationID string) (*ConversationState, error)
}
