package model

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
	MessageTypeVoice MessageType = "voice"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeImage, MessageTypeFile, MessageTypeVoice:
		return true
	}
	return false
}

// Message belongs to either a direct conversation (ReceiverID set) or a
// group (GroupID set), never both.
type Message struct {
	ID         uuid.UUID   `json:"id"`
	SenderID   uuid.UUID   `gorm:"column:sender_id" json:"sender_id"`
	ReceiverID *uuid.UUID  `gorm:"column:receiver_id" json:"receiver_id,omitempty"`
	GroupID    *uuid.UUID  `gorm:"column:group_id" json:"group_id,omitempty"`
	Content    string      `json:"content"`
	Type       MessageType `gorm:"column:message_type" json:"message_type"`
	FileURL    *string     `gorm:"column:file_url" json:"file_url,omitempty"`
	CreatedAt  time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"column:updated_at" json:"updated_at"`
}

func (Message) TableName() string { return "messages" }

type ChatGroup struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   uuid.UUID `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ChatGroup) TableName() string { return "chat_groups" }

type GroupMember struct {
	ID       uuid.UUID `json:"id"`
	GroupID  uuid.UUID `gorm:"column:group_id" json:"group_id"`
	UserID   uuid.UUID `gorm:"column:user_id" json:"user_id"`
	JoinedAt time.Time `gorm:"column:joined_at" json:"joined_at"`
}

func (GroupMember) TableName() string { return "group_members" }
