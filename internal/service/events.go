package service

import "github.com/google/uuid"

// ChangePublisher receives a change notification after every successful
// write. Subscribers are expected to reload, not to patch local state.
type ChangePublisher interface {
	Publish(table, action string, id uuid.UUID)
}

// NopPublisher is used where no realtime hub is wired (tests, CLI tools).
type NopPublisher struct{}

func (NopPublisher) Publish(string, string, uuid.UUID) {}
