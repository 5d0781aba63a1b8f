package negotiation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"warung-server/internal/domain/catalog"
	"warung-server/internal/domain/envelope"
	"warung-server/internal/infrastructure/metrics"
	"warung-server/internal/infrastructure/observability"
)

// substituteEstimate is the fixed preparation estimate quoted after a
// successful substitution.
const substituteEstimate = "55 menit"

// MenuInfoParams carries the optional fields of a menu-info request.
type MenuInfoParams struct {
	ConversationID string
	SlotFilter     *string
}

// OrderParams carries a validated order request.
type OrderParams struct {
	ConversationID string
	Item           string
	Quantity       int
	Address        string
	Slot           string
}

// SubstituteParams names the substitute item for a rejected order.
type SubstituteParams struct {
	ConversationID string
	Substitute     string
}

// Exchange is the outcome of a request/reply step: the conversation id and
// the Provider's reply envelope.
type Exchange struct {
	ConversationID string
	Reply          envelope.Envelope
}

// Confirmation is the outcome of the final customer confirmation.
type Confirmation struct {
	ConversationID string
	Receipt        envelope.OrderNumber
}

// Service exposes the order-negotiation protocol.
type Service interface {
	MenuInfo(ctx context.Context, params MenuInfoParams) (*Exchange, error)
	PlaceOrder(ctx context.Context, params OrderParams) (*Exchange, error)
	ConfirmOrder(ctx context.Context, conversationID string) (*Confirmation, error)
	SubstituteOrder(ctx context.Context, params SubstituteParams) (*Exchange, error)
	ListLogs(ctx context.Context) ([]LogEntry, error)
	Conversation(ctx context.Context, conversationID string) ([]LogEntry, error)
}

type service struct {
	repo        Repository
	catalog     *catalog.State
	deliveryFee float64
	log         zerolog.Logger
}

// NewService wires the negotiation protocol over the log repository and the
// shared catalog state.
func NewService(repo Repository, state *catalog.State, deliveryFee float64, log zerolog.Logger) Service {
	return &service{
		repo:        repo,
		catalog:     state,
		deliveryFee: deliveryFee,
		log:         log.With().Str("domain", "negotiation").Logger(),
	}
}

// MenuInfo logs the Customer's menu request and replies with a catalog
// snapshot, correlated via reply_with/in_reply_to.
func (s *service) MenuInfo(ctx context.Context, params MenuInfoParams) (*Exchange, error) {
	conversationID := params.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	ctx, span := observability.StartNegotiationSpan(ctx, "menu_info", conversationID)
	defer span.End()

	replyWith := uuid.NewString()
	request := envelope.New(
		envelope.RoleCustomer, envelope.RoleProvider, envelope.PerformativeRequest,
		envelope.MenuQuery{Type: "menu_info", SlotFilter: params.SlotFilter},
		envelope.WithConversationID(conversationID), envelope.WithReplyWith(replyWith),
	)
	if err := s.append(ctx, request, &ConversationState{
		ConversationID: conversationID,
		Phase:          PhaseRequested,
		LastReplyWith:  replyWith,
	}); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	options := make([]envelope.MenuOption, 0, 3)
	for _, item := range s.catalog.Menu() {
		options = append(options, envelope.MenuOption{
			Item:        item.Name,
			Stock:       item.Stock,
			Estimate:    item.Estimate,
			DeliveryFee: s.deliveryFee,
		})
	}

	reply := envelope.New(
		envelope.RoleProvider, envelope.RoleCustomer, envelope.PerformativeInform,
		envelope.MenuOptions{Options: options},
		envelope.WithConversationID(conversationID), envelope.WithInReplyTo(replyWith),
	)
	if err := s.append(ctx, reply, &ConversationState{
		ConversationID: conversationID,
		Phase:          PhaseRequested,
		LastReplyWith:  replyWith,
	}); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	return &Exchange{ConversationID: conversationID, Reply: reply}, nil
}

// PlaceOrder logs the order request, tries to reserve stock and a delivery
// slot atomically, and replies confirm or disconfirm. Every branch logs its
// reply before returning.
func (s *service) PlaceOrder(ctx context.Context, params OrderParams) (*Exchange, error) {
	ctx, span := observability.StartNegotiationSpan(ctx, "place_order", params.ConversationID)
	defer span.End()

	details := envelope.OrderDetails{
		ConversationID: params.ConversationID,
		Item:           params.Item,
		Quantity:       params.Quantity,
		Address:        params.Address,
		Slot:           params.Slot,
	}
	replyWith := uuid.NewString()
	request := envelope.New(
		envelope.RoleCustomer, envelope.RoleProvider, envelope.PerformativeRequest, details,
		envelope.WithConversationID(params.ConversationID), envelope.WithReplyWith(replyWith),
	)
	if err := s.append(ctx, request, &ConversationState{
		ConversationID: params.ConversationID,
		Phase:          PhaseRequested,
		LastReplyWith:  replyWith,
		LastOrder:      &details,
	}); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	var (
		content      any
		performative envelope.Performative
		phase        Phase
		outcome      string
	)
	err := s.catalog.Reserve(params.Item, params.Quantity, params.Slot)
	var slotFull *catalog.SlotFullError
	var outOfStock *catalog.OutOfStockError
	switch {
	case errors.As(err, &slotFull):
		content = envelope.Rejection{Reason: fmt.Sprintf("Slot waktu %s penuh", params.Slot)}
		performative = envelope.PerformativeDisconfirm
		phase = PhaseDisconfirmed
		outcome = "slot_full"
	case errors.As(err, &outOfStock):
		content = envelope.SubstitutionOffer{Substitutes: outOfStock.Substitutes}
		performative = envelope.PerformativeDisconfirm
		phase = PhaseDisconfirmed
		outcome = "out_of_stock"
	case err != nil:
		observability.RecordError(span, err)
		return nil, err
	default:
		content = envelope.OrderReceipt{
			Item:        params.Item,
			Quantity:    params.Quantity,
			Estimate:    s.catalog.Estimate(params.Item),
			DeliveryFee: s.deliveryFee,
			Address:     params.Address,
			Slot:        params.Slot,
		}
		performative = envelope.PerformativeConfirm
		phase = PhaseConfirmed
		outcome = "confirmed"
	}

	reply := envelope.New(
		envelope.RoleProvider, envelope.RoleCustomer, performative, content,
		envelope.WithConversationID(params.ConversationID), envelope.WithInReplyTo(replyWith),
	)
	if err := s.append(ctx, reply, &ConversationState{
		ConversationID: params.ConversationID,
		Phase:          phase,
		LastReplyWith:  replyWith,
	}); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	metrics.RecordOrder(outcome)
	s.log.Info().
		Str("conversation_id", params.ConversationID).
		Str("item", params.Item).
		Int("quantity", params.Quantity).
		Str("outcome", outcome).
		Msg("order processed")
	return &Exchange{ConversationID: params.ConversationID, Reply: reply}, nil
}

// ConfirmOrder records the customer's final confirmation and answers with an
// order number derived from the conversation id. The conversation is not
// validated against prior state; confirming an unknown id still succeeds.
func (s *service) ConfirmOrder(ctx context.Context, conversationID string) (*Confirmation, error) {
	ctx, span := observability.StartNegotiationSpan(ctx, "confirm_order", conversationID)
	defer span.End()

	replyWith := uuid.NewString()
	action := envelope.New(
		envelope.RoleCustomer, envelope.RoleProvider, envelope.PerformativeConfirm,
		envelope.CustomerAction{Action: envelope.ActionCustomerConfirm},
		envelope.WithConversationID(conversationID), envelope.WithReplyWith(replyWith),
	)
	if err := s.append(ctx, action, &ConversationState{
		ConversationID: conversationID,
		Phase:          PhaseCustomerConfirmed,
		LastReplyWith:  replyWith,
	}); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	receipt := envelope.OrderNumber{
		Number:        strings.ToUpper(conversationID),
		Status:        "confirmed",
		PaymentStatus: "pending",
	}
	reply := envelope.New(
		envelope.RoleProvider, envelope.RoleCustomer, envelope.PerformativeInform, receipt,
		envelope.WithConversationID(conversationID), envelope.WithInReplyTo(replyWith),
	)
	if err := s.append(ctx, reply, &ConversationState{
		ConversationID: conversationID,
		Phase:          PhaseOrderConfirmed,
		LastReplyWith:  replyWith,
	}); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	return &Confirmation{ConversationID: conversationID, Receipt: receipt}, nil
}

// SubstituteOrder logs the substitution request, recovers quantity, slot and
// address from the conversation state record, and re-runs the reservation
// against the substitute item.
func (s *service) SubstituteOrder(ctx context.Context, params SubstituteParams) (*Exchange, error) {
	ctx, span := observability.StartNegotiationSpan(ctx, "substitute_order", params.ConversationID)
	defer span.End()

	// Read the state before appending: the substitution request itself
	// carries no order details.
	state, err := s.repo.State(ctx, params.ConversationID)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	replyWith := uuid.NewString()
	request := envelope.New(
		envelope.RoleCustomer, envelope.RoleProvider, envelope.PerformativeRequest,
		envelope.SubstitutionChoice{Substitute: params.Substitute},
		envelope.WithConversationID(params.ConversationID), envelope.WithReplyWith(replyWith),
	)
	if err := s.append(ctx, request, &ConversationState{
		ConversationID: params.ConversationID,
		Phase:          PhaseRequested,
		LastReplyWith:  replyWith,
	}); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if state == nil || state.LastOrder == nil {
		return s.disconfirmSubstitution(ctx, params.ConversationID, replyWith,
			"Order asli tidak ditemukan", "original_not_found")
	}
	prev := state.LastOrder

	if err := s.catalog.Reserve(params.Substitute, prev.Quantity, prev.Slot); err != nil {
		var slotFull *catalog.SlotFullError
		var outOfStock *catalog.OutOfStockError
		if !errors.As(err, &slotFull) && !errors.As(err, &outOfStock) {
			observability.RecordError(span, err)
			return nil, err
		}
		return s.disconfirmSubstitution(ctx, params.ConversationID, replyWith,
			"Substitusi juga tidak tersedia", "substitute_unavailable")
	}

	details := envelope.OrderDetails{
		ConversationID: params.ConversationID,
		Item:           params.Substitute,
		Quantity:       prev.Quantity,
		Address:        prev.Address,
		Slot:           prev.Slot,
	}
	reply := envelope.New(
		envelope.RoleProvider, envelope.RoleCustomer, envelope.PerformativeInform,
		envelope.OrderReceipt{
			Item:        params.Substitute,
			Quantity:    prev.Quantity,
			Estimate:    substituteEstimate,
			DeliveryFee: s.deliveryFee,
			Address:     prev.Address,
			Slot:        prev.Slot,
		},
		envelope.WithConversationID(params.ConversationID), envelope.WithInReplyTo(replyWith),
	)
	if err := s.append(ctx, reply, &ConversationState{
		ConversationID: params.ConversationID,
		Phase:          PhaseConfirmed,
		LastReplyWith:  replyWith,
		LastOrder:      &details,
	}); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	metrics.RecordOrder("substituted")
	return &Exchange{ConversationID: params.ConversationID, Reply: reply}, nil
}

// ListLogs returns every log entry with its content deserialized.
func (s *service) ListLogs(ctx context.Context) ([]LogEntry, error) {
	ctx, span := observability.StartNegotiationSpan(ctx, "list_logs", "")
	defer span.End()

	entries, err := s.repo.All(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return entries, nil
}

// Conversation returns the log entries of one conversation.
func (s *service) Conversation(ctx context.Context, conversationID string) ([]LogEntry, error) {
	ctx, span := observability.StartNegotiationSpan(ctx, "get_conversation", conversationID)
	defer span.End()

	entries, err := s.repo.ByConversation(ctx, conversationID)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return entries, nil
}

func (s *service) append(ctx context.Context, env envelope.Envelope, state *ConversationState) error {
	if _, err := s.repo.Append(ctx, &LogEntry{Envelope: env}, state); err != nil {
		return err
	}
	metrics.RecordEnvelope(string(env.Performative))
	return nil
}

func (s *service) disconfirmSubstitution(ctx context.Context, conversationID, replyWith, reason, outcome string) (*Exchange, error) {
	reply := envelope.New(
		envelope.RoleProvider, envelope.RoleCustomer, envelope.PerformativeDisconfirm,
		envelope.Rejection{Reason: reason},
		envelope.WithConversationID(conversationID), envelope.WithInReplyTo(replyWith),
	)
	if err := s.append(ctx, reply, &ConversationState{
		ConversationID: conversationID,
		Phase:          PhaseDisconfirmed,
		LastReplyWith:  replyWith,
	}); err != nil {
		return nil, err
	}
	metrics.RecordOrder(outcome)
	return &Exchange{ConversationID: conversationID, Reply: reply}, nil
}
