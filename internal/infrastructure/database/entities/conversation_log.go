package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"warung-server/internal/domain/envelope"
	"warung-server/internal/domain/negotiation"
)

// ConversationLog stores one envelope of the append-only conversation log.
// Rows are never updated or deleted; the id reflects insertion order.
type ConversationLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Timestamp      string         `gorm:"type:varchar(64);not null"`
	Sender         string         `gorm:"type:varchar(32);not null"`
	Receiver       string         `gorm:"type:varchar(32);not null"`
	Performative   string         `gorm:"type:varchar(32);index:idx_conversation_log_conv_perf;not null"`
	ConversationID string         `gorm:"type:varchar(64);index:idx_conversation_log_conv_perf;not null"`
	Content        datatypes.JSON `gorm:"type:jsonb"`
	ReplyWith      *string        `gorm:"type:varchar(64)"`
	InReplyTo      *string        `gorm:"type:varchar(64)"`
}

// TableName specifies the table name for ConversationLog.
func (ConversationLog) TableName() string {
	return "conversation_logs"
}

// EtoD converts the database entity to the domain log entry, deserializing
// the stored content.
func (l *ConversationLog) EtoD() (*negotiation.LogEntry, error) {
	var content any
	if len(l.Content) > 0 {
		if err := json.Unmarshal(l.Content, &content); err != nil {
			return nil, err
		}
	}
	return &negotiation.LogEntry{
		ID: l.ID,
		Envelope: envelope.Envelope{
			Timestamp:      l.Timestamp,
			Sender:         envelope.Role(l.Sender),
			Receiver:       envelope.Role(l.Receiver),
			Performative:   envelope.Performative(l.Performative),
			ConversationID: l.ConversationID,
			Content:        content,
			ReplyWith:      l.ReplyWith,
			InReplyTo:      l.InReplyTo,
		},
	}, nil
}

// NewConversationLog creates a database entity from the domain log entry,
// serializing the content payload.
func NewConversationLog(entry *negotiation.LogEntry) (*ConversationLog, error) {
	raw, err := json.Marshal(entry.Envelope.Content)
	if err != nil {
		return nil, err
	}
	return &ConversationLog{
		Timestamp:      entry.Envelope.Timestamp,
		Sender:         string(entry.Envelope.Sender),
		Receiver:       string(entry.Envelope.Receiver),
		Performative:   string(entry.Envelope.Performative),
		ConversationID: entry.Envelope.ConversationID,
		Content:        datatypes.JSON(raw),
		ReplyWith:      entry.Envelope.ReplyWith,
		InReplyTo:      entry.Envelope.InReplyTo,
	}, nil
}
