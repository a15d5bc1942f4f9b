package http

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"linux-assistant/internal/domain"
)

// Fakes en memoria para armar el stack completo de handlers sin Mongo.

type mockUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	user.ID = id
	m.users[id] = user
	return id, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, mongo.ErrNoDocuments
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, mongo.ErrNoDocuments
}

type mockMessageRepo struct {
	messages map[primitive.ObjectID]domain.Message
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{messages: make(map[primitive.ObjectID]domain.Message)}
}

func (m *mockMessageRepo) Insert(_ context.Context, msg domain.Message) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	msg.ID = id
	m.messages[id] = msg
	return id, nil
}

func (m *mockMessageRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return domain.Message{}, mongo.ErrNoDocuments
	}
	return msg, nil
}

func (m *mockMessageRepo) ListByConversation(_ context.Context, conversationID primitive.ObjectID) ([]domain.Message, error) {
	var out []domain.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (m *mockMessageRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(m.messages, id)
	return nil
}

func (m *mockMessageRepo) DeleteByConversation(_ context.Context, conversationID primitive.ObjectID) (int64, error) {
	var deleted int64
	for id, msg := range m.messages {
		if msg.ConversationID == conversationID {
			delete(m.messages, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockMessageRepo) DeleteByConversations(_ context.Context, conversationIDs []primitive.ObjectID) (int64, error) {
	var deleted int64
	for _, cid := range conversationIDs {
		n, _ := m.DeleteByConversation(context.Background(), cid)
		deleted += n
	}
	return deleted, nil
}

type mockConversationRepo struct {
	convs    map[primitive.ObjectID]domain.Conversation
	messages *mockMessageRepo
}

func newMockConversationRepo(messages *mockMessageRepo) *mockConversationRepo {
	return &mockConversationRepo{
		convs:    make(map[primitive.ObjectID]domain.Conversation),
		messages: messages,
	}
}

func (m *mockConversationRepo) Create(_ context.Context, conv domain.Conversation) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	conv.ID = id
	m.convs[id] = conv
	return id, nil
}

func (m *mockConversationRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.Conversation, error) {
	c, ok := m.convs[id]
	if !ok {
		return domain.Conversation{}, mongo.ErrNoDocuments
	}
	return c, nil
}

func (m *mockConversationRepo) GetOwned(_ context.Context, id, userID primitive.ObjectID) (domain.Conversation, error) {
	c, ok := m.convs[id]
	if !ok || c.UserID != userID {
		return domain.Conversation{}, mongo.ErrNoDocuments
	}
	return c, nil
}

func (m *mockConversationRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.ConversationSummary, error) {
	var out []domain.ConversationSummary
	for _, c := range m.convs {
		if c.UserID != userID {
			continue
		}
		msgs, _ := m.messages.ListByConversation(context.Background(), c.ID)
		out = append(out, domain.ConversationSummary{
			ID:           c.ID,
			Title:        c.Title,
			CreatedAt:    c.CreatedAt,
			UpdatedAt:    c.UpdatedAt,
			MessageCount: len(msgs),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *mockConversationRepo) SetTitle(_ context.Context, id, userID primitive.ObjectID, title string, now time.Time) (int64, error) {
	c, ok := m.convs[id]
	if !ok || c.UserID != userID {
		return 0, nil
	}
	c.Title = title
	c.UpdatedAt = now
	m.convs[id] = c
	return 1, nil
}

func (m *mockConversationRepo) Refresh(_ context.Context, id primitive.ObjectID, title string, now time.Time) error {
	c, ok := m.convs[id]
	if !ok {
		return nil
	}
	if title != "" {
		c.Title = title
	}
	c.UpdatedAt = now
	m.convs[id] = c
	return nil
}

func (m *mockConversationRepo) Delete(_ context.Context, id, userID primitive.ObjectID) (int64, error) {
	c, ok := m.convs[id]
	if !ok || c.UserID != userID {
		return 0, nil
	}
	delete(m.convs, id)
	return 1, nil
}

func (m *mockConversationRepo) IDsByUser(_ context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for id, c := range m.convs {
		if c.UserID == userID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *mockConversationRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var deleted int64
	for id, c := range m.convs {
		if c.UserID == userID {
			delete(m.convs, id)
			deleted++
		}
	}
	return deleted, nil
}
