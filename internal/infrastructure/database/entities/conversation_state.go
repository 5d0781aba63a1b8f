package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"warung-server/internal/domain/envelope"
	"warung-server/internal/domain/negotiation"
)

// ConversationState is the per-conversation record upserted alongside each
// log append. LastOrder holds the most recent order details so substitution
// does not need to re-scan the log.
type ConversationState struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	ConversationID string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	Phase          string         `gorm:"type:varchar(32);not null"`
	LastReplyWith  string         `gorm:"type:varchar(64)"`
	LastOrder      datatypes.JSON `gorm:"type:jsonb"`
}

// TableName specifies the table name for ConversationState.
func (ConversationState) TableName() string {
	return "conversation_states"
}

// EtoD converts the database entity to the domain state record.
func (s *ConversationState) EtoD() (*negotiation.ConversationState, error) {
	var lastOrder *envelope.OrderDetails
	if len(s.LastOrder) > 0 && string(s.LastOrder) != "null" {
		lastOrder = &envelope.OrderDetails{}
		if err := json.Unmarshal(s.LastOrder, lastOrder); err != nil {
			return nil, err
		}
	}
	return &negotiation.ConversationState{
		ConversationID: s.ConversationID,
		Phase:          negotiation.Phase(s.Phase),
		LastReplyWith:  s.LastReplyWith,
		LastOrder:      lastOrder,
		UpdatedAt:      s.UpdatedAt,
	}, nil
}

// NewConversationState creates a database entity from the domain state
// record. LastOrder stays empty when the update carries no order details.
func NewConversationState(state *negotiation.ConversationState) (*ConversationState, error) {
	entity := &ConversationState{
		ConversationID: state.ConversationID,
		Phase:          string(state.Phase),
		LastReplyWith:  state.LastReplyWith,
	}
	if state.LastOrder != nil {
		raw, err := json.Marshal(state.LastOrder)
		if err != nil {
			return nil, err
		}
		entity.LastOrder = datatypes.JSON(raw)
	}
	return entity, nil
}
