package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"linux-assistant/internal/domain"
	"linux-assistant/internal/repository"
)

// ConversationService coordina el ciclo de vida de conversaciones y el
// borrado en cascada de sus mensajes.
type ConversationService struct {
	logger *zap.Logger
	users  repository.UserRepository
	convs  repository.ConversationRepository
	msgs   repository.MessageRepository
}

func NewConversationService(
	logger *zap.Logger,
	users repository.UserRepository,
	convs repository.ConversationRepository,
	msgs repository.MessageRepository,
) *ConversationService {
	return &ConversationService{logger: logger, users: users, convs: convs, msgs: msgs}
}

// Create abre una conversacion vacia para el usuario. Sin titulo
// explicito queda el centinela hasta el primer intercambio.
func (s *ConversationService) Create(ctx context.Context, userID, title string) (domain.Conversation, error) {
	uid, err := s.resolveUser(ctx, userID)
	if err != nil {
		return domain.Conversation{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.DefaultTitle
	}

	now := time.Now().UTC()
	conv := domain.Conversation{
		UserID:    uid,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.convs.Create(ctx, conv)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}
	conv.ID = id
	return conv, nil
}

// ListForUser devuelve las conversaciones del usuario, mas recientes
// primero, cada una con su conteo derivado de mensajes.
func (s *ConversationService) ListForUser(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	uid, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.convs.ListByUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	if summaries == nil {
		summaries = []domain.ConversationSummary{}
	}
	return summaries, nil
}

// GetDetail devuelve la conversacion y sus mensajes en orden de
// timestamp ascendente. Un id ajeno se reporta igual que uno inexistente.
func (s *ConversationService) GetDetail(ctx context.Context, conversationID, userID string) (domain.Conversation, []domain.Message, error) {
	cid, err := parseID(conversationID)
	if err != nil {
		return domain.Conversation{}, nil, err
	}
	uid, err := parseID(userID)
	if err != nil {
		return domain.Conversation{}, nil, err
	}

	conv, err := s.convs.GetOwned(ctx, cid, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Conversation{}, nil, ErrConversationNotFound
		}
		return domain.Conversation{}, nil, fmt.Errorf("get conversation: %w", err)
	}

	messages, err := s.msgs.ListByConversation(ctx, cid)
	if err != nil {
		return domain.Conversation{}, nil, fmt.Errorf("list messages: %w", err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return conv, messages, nil
}

// UpdateTitle renombra la conversacion y refresca updated_at. Distingue
// "no existe" (NotFound) de "existe bajo otro dueño" (Forbidden); el
// resultado omite el conteo de mensajes a proposito, el cliente conserva
// el que ya tenia.
func (s *ConversationService) UpdateTitle(ctx context.Context, conversationID, userID, title string) (domain.Conversation, error) {
	cid, err := parseID(conversationID)
	if err != nil {
		return domain.Conversation{}, err
	}
	uid, err := parseID(userID)
	if err != nil {
		return domain.Conversation{}, err
	}

	matched, err := s.convs.SetTitle(ctx, cid, uid, title, time.Now().UTC())
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("set title: %w", err)
	}

	if matched == 0 {
		if _, err := s.convs.GetByID(ctx, cid); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.Conversation{}, ErrConversationNotFound
			}
			return domain.Conversation{}, fmt.Errorf("get conversation: %w", err)
		}
		return domain.Conversation{}, ErrNotOwner
	}

	conv, err := s.convs.GetOwned(ctx, cid, uid)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("reload conversation: %w", err)
	}
	return conv, nil
}

// Delete borra primero todos los mensajes de la conversacion y luego la
// conversacion filtrando por dueño. Los dos pasos no son atomicos: si el
// segundo reporta not-found los mensajes ya pudieron haberse ido.
func (s *ConversationService) Delete(ctx context.Context, conversationID, userID string) error {
	cid, err := parseID(conversationID)
	if err != nil {
		return err
	}
	uid, err := parseID(userID)
	if err != nil {
		return err
	}

	if _, err := s.msgs.DeleteByConversation(ctx, cid); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}

	deleted, err := s.convs.Delete(ctx, cid, uid)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if deleted == 0 {
		return ErrConversationNotFound
	}

	s.logger.Info("conversation deleted", zap.String("conversation_id", cid.Hex()))
	return nil
}

// ClearAll elimina todas las conversaciones del usuario y sus mensajes,
// y devuelve cuantos documentos de cada tipo se borraron.
func (s *ConversationService) ClearAll(ctx context.Context, userID string) (conversations, messages int64, err error) {
	uid, err := s.resolveUser(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	ids, err := s.convs.IDsByUser(ctx, uid)
	if err != nil {
		return 0, 0, fmt.Errorf("collect conversation ids: %w", err)
	}

	messages, err = s.msgs.DeleteByConversations(ctx, ids)
	if err != nil {
		return 0, 0, fmt.Errorf("delete messages: %w", err)
	}

	conversations, err = s.convs.DeleteByUser(ctx, uid)
	if err != nil {
		return conversations, messages, fmt.Errorf("delete conversations: %w", err)
	}

	s.logger.Info("conversations cleared",
		zap.String("user_id", uid.Hex()),
		zap.Int64("conversations", conversations),
		zap.Int64("messages", messages),
	)
	return conversations, messages, nil
}

// DeleteMessage borra un mensaje individual. La pertenencia se verifica
// transitivamente a traves de la conversacion padre.
func (s *ConversationService) DeleteMessage(ctx context.Context, messageID, userID string) error {
	mid, err := parseID(messageID)
	if err != nil {
		return err
	}
	uid, err := parseID(userID)
	if err != nil {
		return err
	}

	msg, err := s.msgs.GetByID(ctx, mid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("get message: %w", err)
	}

	if _, err := s.convs.GetOwned(ctx, msg.ConversationID, uid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotOwner
		}
		return fmt.Errorf("get conversation: %w", err)
	}

	if err := s.msgs.Delete(ctx, mid); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// resolveUser parsea el id y confirma que el usuario exista.
func (s *ConversationService) resolveUser(ctx context.Context, userID string) (primitive.ObjectID, error) {
	uid, err := parseID(userID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if _, err := s.users.GetByID(ctx, uid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, ErrUserNotFound
		}
		return primitive.NilObjectID, fmt.Errorf("get user: %w", err)
	}
	return uid, nil
}
