package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/model"
)

type stubMessageRepo struct {
	messages []model.Message
	groups   map[uuid.UUID]model.ChatGroup
	members  map[uuid.UUID][]uuid.UUID
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{
		groups:  map[uuid.UUID]model.ChatGroup{},
		members: map[uuid.UUID][]uuid.UUID{},
	}
}

func (s *stubMessageRepo) ListDirect(ctx context.Context, a, b uuid.UUID) ([]model.Message, error) {
	var out []model.Message
	for _, m := range s.messages {
		if m.GroupID != nil || m.ReceiverID == nil {
			continue
		}
		if (m.SenderID == a && *m.ReceiverID == b) || (m.SenderID == b && *m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMessageRepo) ListGroup(ctx context.Context, groupID uuid.UUID) ([]model.Message, error) {
	var out []model.Message
	for _, m := range s.messages {
		if m.GroupID != nil && *m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMessageRepo) Create(ctx context.Context, m model.Message) (*model.Message, error) {
	m.ID = uuid.New()
	s.messages = append(s.messages, m)
	return &m, nil
}

func (s *stubMessageRepo) CreateGroup(ctx context.Context, g model.ChatGroup, memberIDs []uuid.UUID) (*model.ChatGroup, error) {
	g.ID = uuid.New()
	s.groups[g.ID] = g
	s.members[g.ID] = memberIDs
	return &g, nil
}

func (s *stubMessageRepo) ListGroupsForUser(ctx context.Context, userID uuid.UUID) ([]model.ChatGroup, error) {
	var out []model.ChatGroup
	for id, members := range s.members {
		for _, m := range members {
			if m == userID {
				out = append(out, s.groups[id])
				break
			}
		}
	}
	return out, nil
}

func (s *stubMessageRepo) ListMembers(ctx context.Context, groupID uuid.UUID) ([]model.GroupMember, error) {
	var out []model.GroupMember
	for _, id := range s.members[groupID] {
		out = append(out, model.GroupMember{GroupID: groupID, UserID: id})
	}
	return out, nil
}

func (s *stubMessageRepo) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	for _, id := range s.members[groupID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubMessageRepo) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	s.members[groupID] = append(s.members[groupID], userID)
	return nil
}

func (s *stubMessageRepo) GetGroup(ctx context.Context, groupID uuid.UUID) (*model.ChatGroup, error) {
	g, ok := s.groups[groupID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &g, nil
}

func textMessage(content string) MessageInput {
	return MessageInput{Content: content, Type: model.MessageTypeText}
}

func TestSendDirect(t *testing.T) {
	repo := newStubMessageRepo()
	events := &recordingPublisher{}
	svc := NewChatService(repo, events)
	caller := accountant()
	receiver := uuid.New()

	msg, err := svc.SendDirect(context.Background(), caller, receiver, textMessage("bonjour"))
	if err != nil {
		t.Fatalf("SendDirect: %v", err)
	}
	if msg.SenderID != caller.UserID || msg.ReceiverID == nil || *msg.ReceiverID != receiver {
		t.Errorf("message routing wrong: %+v", msg)
	}
	if msg.GroupID != nil {
		t.Error("direct message must not carry a group id")
	}
	if len(events.events) != 1 || events.events[0] != "messages/insert" {
		t.Errorf("events = %v", events.events)
	}
}

func TestSendDirectValidation(t *testing.T) {
	svc := NewChatService(newStubMessageRepo(), NopPublisher{})
	caller := accountant()
	receiver := uuid.New()
	url := "/files/voice.m4a"

	tests := []struct {
		name     string
		receiver uuid.UUID
		input    MessageInput
	}{
		{"no receiver", uuid.Nil, textMessage("hi")},
		{"self message", caller.UserID, textMessage("hi")},
		{"empty text", receiver, textMessage("   ")},
		{"missing type", receiver, MessageInput{Content: "hi"}},
		{"unknown type", receiver, MessageInput{Content: "hi", Type: "video"}},
		{"voice without file", receiver, MessageInput{Type: model.MessageTypeVoice}},
		{"image without file", receiver, MessageInput{Type: model.MessageTypeImage}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SendDirect(context.Background(), caller, tc.receiver, tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}

	// attachments with a file url are fine even without content
	if _, err := svc.SendDirect(context.Background(), caller, receiver, MessageInput{Type: model.MessageTypeVoice, FileURL: &url}); err != nil {
		t.Errorf("voice with file url: %v", err)
	}
}

func TestGroupMembershipGate(t *testing.T) {
	repo := newStubMessageRepo()
	svc := NewChatService(repo, NopPublisher{})
	creator := accountant()
	outsider := accountant()

	group, err := svc.CreateGroup(context.Background(), creator, CreateGroupInput{Name: "Agence Douala"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	if _, err := svc.SendGroup(context.Background(), outsider, group.ID, textMessage("hi")); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("outsider send: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.ListGroupMessages(context.Background(), outsider, group.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("outsider list: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.SendGroup(context.Background(), creator, uuid.New(), textMessage("hi")); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing group: err = %v, want ErrNotFound", err)
	}

	if _, err := svc.SendGroup(context.Background(), creator, group.ID, textMessage("bienvenue")); err != nil {
		t.Fatalf("creator send: %v", err)
	}
	msgs, err := svc.ListGroupMessages(context.Background(), creator, group.ID)
	if err != nil {
		t.Fatalf("creator list: %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("group has %d messages, want 1", len(msgs))
	}
}

func TestCreateGroupDeduplicatesCreator(t *testing.T) {
	repo := newStubMessageRepo()
	svc := NewChatService(repo, NopPublisher{})
	creator := accountant()
	other := uuid.New()

	group, err := svc.CreateGroup(context.Background(), creator, CreateGroupInput{
		Name:      "Comptables",
		MemberIDs: []uuid.UUID{creator.UserID, other, uuid.Nil},
	})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	members := repo.members[group.ID]
	if len(members) != 2 {
		t.Fatalf("members = %v, want creator plus one", members)
	}
	if members[0] != creator.UserID || members[1] != other {
		t.Errorf("members = %v", members)
	}
}

func TestAddMember(t *testing.T) {
	repo := newStubMessageRepo()
	svc := NewChatService(repo, NopPublisher{})
	creator := accountant()
	stranger := accountant()
	newcomer := uuid.New()

	group, _ := svc.CreateGroup(context.Background(), creator, CreateGroupInput{Name: "Direction"})

	if err := svc.AddMember(context.Background(), stranger, group.ID, newcomer); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger add: err = %v, want ErrPermissionDenied", err)
	}
	if err := svc.AddMember(context.Background(), creator, group.ID, newcomer); err != nil {
		t.Fatalf("creator add: %v", err)
	}
	if err := svc.AddMember(context.Background(), admin(), group.ID, uuid.New()); err != nil {
		t.Errorf("admin add: %v", err)
	}
	if err := svc.AddMember(context.Background(), creator, uuid.New(), newcomer); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing group: err = %v, want ErrNotFound", err)
	}
}

func TestListDirectConversation(t *testing.T) {
	repo := newStubMessageRepo()
	svc := NewChatService(repo, NopPublisher{})
	a := accountant()
	b := accountant()
	c := uuid.New()

	if _, err := svc.SendDirect(context.Background(), a, b.UserID, textMessage("salut")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendDirect(context.Background(), b, a.UserID, textMessage("ça va")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendDirect(context.Background(), a, c, textMessage("autre fil")); err != nil {
		t.Fatal(err)
	}

	msgs, err := svc.ListDirect(context.Background(), a, b.UserID)
	if err != nil {
		t.Fatalf("ListDirect: %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("conversation has %d messages, want 2", len(msgs))
	}
}
