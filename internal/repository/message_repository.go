package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `
	id,
	sender_id,
	receiver_id,
	group_id,
	content,
	message_type,
	file_url,
	created_at,
	updated_at
`

// ListDirect returns the conversation between two users, oldest first.
func (r *MessageRepository) ListDirect(ctx context.Context, a, b uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+messageColumns+`
		FROM messages
		WHERE group_id IS NULL
			AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))
		ORDER BY created_at ASC
	`, a, b, b, a).Scan(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepository) ListGroup(ctx context.Context, groupID uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+messageColumns+`
		FROM messages
		WHERE group_id = ?
		ORDER BY created_at ASC
	`, groupID).Scan(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepository) Create(ctx context.Context, m model.Message) (*model.Message, error) {
	var saved model.Message
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO messages (sender_id, receiver_id, group_id, content, message_type, file_url)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+messageColumns+`
	`, m.SenderID, m.ReceiverID, m.GroupID, m.Content, m.Type, m.FileURL).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *MessageRepository) CreateGroup(ctx context.Context, g model.ChatGroup, memberIDs []uuid.UUID) (*model.ChatGroup, error) {
	var saved model.ChatGroup
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(`
			INSERT INTO chat_groups (name, description, created_by)
			VALUES (?, ?, ?)
			RETURNING id, name, description, created_by, created_at, updated_at
		`, g.Name, g.Description, g.CreatedBy).Scan(&saved).Error; err != nil {
			return err
		}
		for _, userID := range memberIDs {
			if err := tx.Exec(`
				INSERT INTO group_members (group_id, user_id)
				VALUES (?, ?)
				ON CONFLICT DO NOTHING
			`, saved.ID, userID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListGroupsForUser returns groups the user belongs to, newest activity first.
func (r *MessageRepository) ListGroupsForUser(ctx context.Context, userID uuid.UUID) ([]model.ChatGroup, error) {
	var groups []model.ChatGroup
	if err := r.db.WithContext(ctx).Raw(`
		SELECT g.id, g.name, g.description, g.created_by, g.created_at, g.updated_at
		FROM chat_groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = ?
		ORDER BY g.updated_at DESC
	`, userID).Scan(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *MessageRepository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, group_id, user_id, joined_at
		FROM group_members
		WHERE group_id = ?
		ORDER BY joined_at ASC
	`, groupID).Scan(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *MessageRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM group_members WHERE group_id = ? AND user_id = ?
	`, groupID, userID).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MessageRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO group_members (group_id, user_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, groupID, userID).Error
}

func (r *MessageRepository) GetGroup(ctx context.Context, groupID uuid.UUID) (*model.ChatGroup, error) {
	var group model.ChatGroup
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, description, created_by, created_at, updated_at
		FROM chat_groups
		WHERE id = ?
		LIMIT 1
	`, groupID).Scan(&group).Error; err != nil {
		return nil, err
	}
	if group.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &group, nil
}
