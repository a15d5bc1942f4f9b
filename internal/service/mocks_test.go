package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"linux-assistant/internal/domain"
)

// Fakes en memoria de los tres repositorios, compartidos por los tests
// del paquete.

type memUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (m *memUserRepo) Create(_ context.Context, user domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	user.ID = id
	m.users[id] = user
	return id, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, mongo.ErrNoDocuments
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, mongo.ErrNoDocuments
}

type memMessageRepo struct {
	messages map[primitive.ObjectID]domain.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{messages: make(map[primitive.ObjectID]domain.Message)}
}

func (m *memMessageRepo) Insert(_ context.Context, msg domain.Message) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	msg.ID = id
	m.messages[id] = msg
	return id, nil
}

func (m *memMessageRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return domain.Message{}, mongo.ErrNoDocuments
	}
	return msg, nil
}

func (m *memMessageRepo) ListByConversation(_ context.Context, conversationID primitive.ObjectID) ([]domain.Message, error) {
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

func (m *memMessageRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(m.messages, id)
	return nil
}

func (m *memMessageRepo) DeleteByConversation(_ context.Context, conversationID primitive.ObjectID) (int64, error) {
	var deleted int64
	for id, msg := range m.messages {
		if msg.ConversationID == conversationID {
			delete(m.messages, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memMessageRepo) DeleteByConversations(_ context.Context, conversationIDs []primitive.ObjectID) (int64, error) {
	var deleted int64
	for _, cid := range conversationIDs {
		n, _ := m.DeleteByConversation(context.Background(), cid)
		deleted += n
	}
	return deleted, nil
}

type memConversationRepo struct {
	convs    map[primitive.ObjectID]domain.Conversation
	messages *memMessageRepo
}

func newMemConversationRepo(messages *memMessageRepo) *memConversationRepo {
	return &memConversationRepo{
		convs:    make(map[primitive.ObjectID]domain.Conversation),
		messages: messages,
	}
}

func (m *memConversationRepo) Create(_ context.Context, conv domain.Conversation) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	conv.ID = id
	m.convs[id] = conv
	return id, nil
}

func (m *memConversationRepo) GetByID(_ context.Context, id primitive.ObjectID) (domain.Conversation, error) {
	c, ok := m.convs[id]
	if !ok {
		return domain.Conversation{}, mongo.ErrNoDocuments
	}
	return c, nil
}

func (m *memConversationRepo) GetOwned(_ context.Context, id, userID primitive.ObjectID) (domain.Conversation, error) {
	c, ok := m.convs[id]
	if !ok || c.UserID != userID {
		return domain.Conversation{}, mongo.ErrNoDocuments
	}
	return c, nil
}

func (m *memConversationRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.ConversationSummary, error) {
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

func (m *memConversationRepo) SetTitle(_ context.Context, id, userID primitive.ObjectID, title string, now time.Time) (int64, error) {
	c, ok := m.convs[id]
	if !ok || c.UserID != userID {
		return 0, nil
	}
	c.Title = title
	c.UpdatedAt = now
	m.convs[id] = c
	return 1, nil
}

func (m *memConversationRepo) Refresh(_ context.Context, id primitive.ObjectID, title string, now time.Time) error {
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

func (m *memConversationRepo) Delete(_ context.Context, id, userID primitive.ObjectID) (int64, error) {
	c, ok := m.convs[id]
	if !ok || c.UserID != userID {
		return 0, nil
	}
	delete(m.convs, id)
	return 1, nil
}

func (m *memConversationRepo) IDsByUser(_ context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for id, c := range m.convs {
		if c.UserID == userID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memConversationRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var deleted int64
	for id, c := range m.convs {
		if c.UserID == userID {
			delete(m.convs, id)
			deleted++
		}
	}
	return deleted, nil
}
