package conversationlog

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warung-server/internal/domain/envelope"
	"warung-server/internal/domain/negotiation"
	"warung-server/internal/infrastructure/database/entities"
	"warung-server/internal/utils/apperrors"
)

type repository struct {
	db *gorm.DB
}

// New creates a GORM-backed conversation log repository.
func New(db *gorm.DB) negotiation.Repository {
	return &repository{db: db}
}

// Append inserts the log entry and upserts the conversation state in a
// single transaction. A state update without order details keeps the
// previously stored last_order so substitution can still recover it.
func (r *repository) Append(ctx context.Context, entry *negotiation.LogEntry, state *negotiation.ConversationState) (*negotiation.LogEntry, error) {
	logEntity, err := entities.NewConversationLog(entry)
	if err != nil {
		return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeInternal, "serialize log entry", err)
	}
	stateEntity, err := entities.NewConversationState(state)
	if err != nil {
		return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeInternal, "serialize conversation state", err)
	}

	assignments := map[string]any{
		"phase":           stateEntity.Phase,
		"last_reply_with": stateEntity.LastReplyWith,
	}
	if state.LastOrder != nil {
		assignments["last_order"] = stateEntity.LastOrder
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(logEntity).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "conversation_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).Create(stateEntity).Error
	})
	if err != nil {
		return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError, "append conversation log", err)
	}

	appended, err := logEntity.EtoD()
	if err != nil {
		return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeInternal, "deserialize log entry", err)
	}
	return appended, nil
}

// All returns every log entry in append order.
func (r *repository) All(ctx context.Context) ([]negotiation.LogEntry, error) {
	var rows []entities.ConversationLog
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError, "list conversation logs", err)
	}
	return r.toDomain(rows)
}

// ByConversation returns one conversation's entries in append order.
func (r *repository) ByConversation(ctx context.Context, conversationID string) ([]negotiation.LogEntry, error) {
	var rows []entities.ConversationLog
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError, "list conversation logs", err)
	}
	return r.toDomain(rows)
}

// LatestBy returns the most recently appended entry matching the
// conversation and performative, or nil when none exists.
func (r *repository) LatestBy(ctx context.Context, conversationID string, performative envelope.Performative) (*negotiation.LogEntry, error) {
	var row entities.ConversationLog
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND performative = ?", conversationID, string(performative)).
		Order("id desc").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError, "find conversation log", err)
	}

	entry, err := row.EtoD()
	if err != nil {
		return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeInternal, "deserialize log entry", err)
	}
	return entry, nil
}

// State returns the conversation's state record, or nil when the
// conversation has never been seen.
func (r *repository) State(ctx context.Context, conversationID string) (*negotiation.ConversationState, error) {
	var row entities.ConversationState
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeDatabaseError, "find conversation state", err)
	}

	state, err := row.EtoD()
	if err != nil {
		return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeInternal, "deserialize conversation state", err)
	}
	return state, nil
}

func (r *repository) toDomain(rows []entities.ConversationLog) ([]negotiation.LogEntry, error) {
	entries := make([]negotiation.LogEntry, 0, len(rows))
	for i := range rows {
		entry, err := rows[i].EtoD()
		if err != nil {
			return nil, apperrors.New(apperrors.LayerRepository, apperrors.ErrorTypeInternal, "deserialize log entry", err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}
