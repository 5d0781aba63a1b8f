package requests

// Field names follow the wire contract of the simulation frontend.

// InfoRequest asks for the current menu. Both fields are optional; a missing
// conversation id starts a new conversation.
type InfoRequest struct {
	ConversationID string  `json:"conversation_id,omitempty"`
	SlotFilter     *string `json:"slot,omitempty"`
}

// OrderRequest places an order against the quoted menu.
type OrderRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	Item           string `json:"item_menu" binding:"required"`
	Quantity       int    `json:"jumlah" binding:"required,gt=0"`
	Address        string `json:"alamat_pengiriman" binding:"required"`
	Slot           string `json:"time_window" binding:"required"`
}

// OrderConfirmRequest is the customer's final confirmation.
type OrderConfirmRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
}

// SubstituteRequest accepts one of the offered substitute items.
type SubstituteRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	Substitute     string `json:"substitusi" binding:"required"`
}
