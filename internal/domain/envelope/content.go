package envelope

import "encoding/json"

// Typed content payloads, one per message shape the protocol produces. JSON
// field names are the wire contract inherited from the original frontend
// integration and must not change.

// MenuQuery is the Customer request content for menu information.
type MenuQuery struct {
	Type       string  `json:"type"`
	SlotFilter *string `json:"slot_filter"`
}

// MenuOption is one catalog entry in the Provider's menu inform.
type MenuOption struct {
	Item        string  `json:"item_menu"`
	Stock       int     `json:"stok"`
	Estimate    string  `json:"estimasi_waktu"`
	DeliveryFee float64 `json:"biaya_pengiriman"`
}

// MenuOptions wraps the catalog snapshot.
type MenuOptions struct {
	Options []MenuOption `json:"opsi"`
}

// OrderDetails is the Customer request content for placing an order.
type OrderDetails struct {
	ConversationID string `json:"conversation_id"`
	Item           string `json:"item_menu"`
	Quantity       int    `json:"jumlah"`
	Address        string `json:"alamat_pengiriman"`
	Slot           string `json:"time_window"`
}

// OrderReceipt is the Provider content confirming a reservation.
type OrderReceipt struct {
	Item        string  `json:"item_menu"`
	Quantity    int     `json:"jumlah"`
	Estimate    string  `json:"estimasi_waktu"`
	DeliveryFee float64 `json:"biaya_pengiriman"`
	Address     string  `json:"alamat_pengiriman"`
	Slot        string  `json:"time_window"`
}

// Rejection carries the reason a Provider disconfirms.
type Rejection struct {
	Reason string `json:"alasan"`
}

// NoSubstitutionMarker is emitted under the substitusi key when no other item
// can cover the requested quantity.
const NoSubstitutionMarker = "Tidak ada substitusi tersedia"

// SubstitutionOffer lists items that could replace an out-of-stock order.
// On the wire the substitusi key holds either the candidate list or the
// no-substitution marker string, matching the original contract.
type SubstitutionOffer struct {
	Substitutes []string `json:"-"`
}

func (o SubstitutionOffer) MarshalJSON() ([]byte, error) {
	if len(o.Substitutes) == 0 {
		return json.Marshal(map[string]string{"substitusi": NoSubstitutionMarker})
	}
	return json.Marshal(map[string][]string{"substitusi": o.Substitutes})
}

// SubstitutionChoice is the Customer request content naming a substitute item.
type SubstitutionChoice struct {
	Substitute string `json:"substitusi"`
}

// CustomerAction marks a customer-side protocol action, e.g. the final
// confirmation of a negotiated order.
type CustomerAction struct {
	Action string `json:"action"`
}

// ActionCustomerConfirm is the recorded action for POST /order/confirm.
const ActionCustomerConfirm = "customer_confirm"

// OrderNumber is the Provider content closing a confirmed order. Payment is
// simulated, so payment_status stays pending.
type OrderNumber struct {
	Number        string `json:"nomor_order"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}
