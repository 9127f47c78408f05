package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/model"
)

type MessageRepo interface {
	ListDirect(ctx context.Context, a, b uuid.UUID) ([]model.Message, error)
	ListGroup(ctx context.Context, groupID uuid.UUID) ([]model.Message, error)
	Create(ctx context.Context, m model.Message) (*model.Message, error)
	CreateGroup(ctx context.Context, g model.ChatGroup, memberIDs []uuid.UUID) (*model.ChatGroup, error)
	ListGroupsForUser(ctx context.Context, userID uuid.UUID) ([]model.ChatGroup, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMember, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	GetGroup(ctx context.Context, groupID uuid.UUID) (*model.ChatGroup, error)
}

type ChatService struct {
	messages MessageRepo
	events   ChangePublisher
}

func NewChatService(messages MessageRepo, events ChangePublisher) *ChatService {
	return &ChatService{messages: messages, events: events}
}

// MessageInput carries an outgoing message. Non-text types must reference an
// uploaded attachment through FileURL.
type MessageInput struct {
	Content string
	Type    model.MessageType
	FileURL *string
}

func (i MessageInput) validate() error {
	if i.Type == "" {
		return fmt.Errorf("%w: message_type is required", ErrInvalidInput)
	}
	if !i.Type.Valid() {
		return fmt.Errorf("%w: unknown message_type", ErrInvalidInput)
	}
	if i.Type == model.MessageTypeText {
		if strings.TrimSpace(i.Content) == "" {
			return fmt.Errorf("%w: content is required", ErrInvalidInput)
		}
		return nil
	}
	if i.FileURL == nil || strings.TrimSpace(*i.FileURL) == "" {
		return fmt.Errorf("%w: file_url is required for %s messages", ErrInvalidInput, i.Type)
	}
	return nil
}

func (s *ChatService) SendDirect(ctx context.Context, caller model.Principal, receiverID uuid.UUID, input MessageInput) (*model.Message, error) {
	if receiverID == uuid.Nil {
		return nil, fmt.Errorf("%w: receiver_id is required", ErrInvalidInput)
	}
	if receiverID == caller.UserID {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrInvalidInput)
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	saved, err := s.messages.Create(ctx, model.Message{
		SenderID:   caller.UserID,
		ReceiverID: &receiverID,
		Content:    input.Content,
		Type:       input.Type,
		FileURL:    input.FileURL,
	})
	if err != nil {
		return nil, err
	}
	s.events.Publish("messages", "insert", saved.ID)
	return saved, nil
}

func (s *ChatService) SendGroup(ctx context.Context, caller model.Principal, groupID uuid.UUID, input MessageInput) (*model.Message, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, groupID, caller.UserID); err != nil {
		return nil, err
	}

	saved, err := s.messages.Create(ctx, model.Message{
		SenderID: caller.UserID,
		GroupID:  &groupID,
		Content:  input.Content,
		Type:     input.Type,
		FileURL:  input.FileURL,
	})
	if err != nil {
		return nil, err
	}
	s.events.Publish("messages", "insert", saved.ID)
	return saved, nil
}

// ListDirect returns the conversation between the caller and another user.
func (s *ChatService) ListDirect(ctx context.Context, caller model.Principal, otherID uuid.UUID) ([]model.Message, error) {
	if otherID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.messages.ListDirect(ctx, caller.UserID, otherID)
}

func (s *ChatService) ListGroupMessages(ctx context.Context, caller model.Principal, groupID uuid.UUID) ([]model.Message, error) {
	if err := s.requireMember(ctx, groupID, caller.UserID); err != nil {
		return nil, err
	}
	return s.messages.ListGroup(ctx, groupID)
}

type CreateGroupInput struct {
	Name        string
	Description *string
	MemberIDs   []uuid.UUID
}

// CreateGroup creates a chat group with the caller as first member.
func (s *ChatService) CreateGroup(ctx context.Context, caller model.Principal, input CreateGroupInput) (*model.ChatGroup, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	members := []uuid.UUID{caller.UserID}
	for _, id := range input.MemberIDs {
		if id != uuid.Nil && id != caller.UserID {
			members = append(members, id)
		}
	}

	group, err := s.messages.CreateGroup(ctx, model.ChatGroup{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CreatedBy:   caller.UserID,
	}, members)
	if err != nil {
		return nil, err
	}
	s.events.Publish("chat_groups", "insert", group.ID)
	return group, nil
}

func (s *ChatService) ListGroups(ctx context.Context, caller model.Principal) ([]model.ChatGroup, error) {
	return s.messages.ListGroupsForUser(ctx, caller.UserID)
}

func (s *ChatService) ListMembers(ctx context.Context, caller model.Principal, groupID uuid.UUID) ([]model.GroupMember, error) {
	if err := s.requireMember(ctx, groupID, caller.UserID); err != nil {
		return nil, err
	}
	return s.messages.ListMembers(ctx, groupID)
}

// AddMember lets the group creator or an admin add a user to a group.
func (s *ChatService) AddMember(ctx context.Context, caller model.Principal, groupID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	group, err := s.messages.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if group.CreatedBy != caller.UserID && !caller.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.messages.AddMember(ctx, groupID, userID); err != nil {
		return err
	}
	s.events.Publish("group_members", "insert", groupID)
	return nil
}

func (s *ChatService) requireMember(ctx context.Context, groupID, userID uuid.UUID) error {
	if groupID == uuid.Nil {
		return fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	ok, err := s.messages.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.messages.GetGroup(ctx, groupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return ErrPermissionDenied
	}
	return nil
}
