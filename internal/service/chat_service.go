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
	"linux-assistant/internal/llm"
	"linux-assistant/internal/repository"
)

// titleWordLimit acota el auto-titulado a las primeras palabras del
// primer mensaje del usuario.
const titleWordLimit = 5

// ChatService orquesta el intercambio pregunta/respuesta: persistencia
// de ambos mensajes, llamada al gateway y mantenimiento de timestamps.
//
// La secuencia de escrituras no es transaccional: una falla a mitad de
// camino deja estado parcial pero individualmente valido (por ejemplo un
// mensaje de usuario sin respuesta del bot).
type ChatService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	convs   repository.ConversationRepository
	msgs    repository.MessageRepository
	gateway llm.Gateway
}

func NewChatService(
	logger *zap.Logger,
	users repository.UserRepository,
	convs repository.ConversationRepository,
	msgs repository.MessageRepository,
	gateway llm.Gateway,
) *ChatService {
	return &ChatService{logger: logger, users: users, convs: convs, msgs: msgs, gateway: gateway}
}

// SendMessage agrega el mensaje del usuario a una conversacion existente,
// obtiene la respuesta del bot y la persiste. Si la conversacion todavia
// tiene el titulo centinela, deriva uno del texto del usuario. Devuelve
// el mensaje del bot persistido.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, userID, text string) (domain.Message, error) {
	cid, err := parseID(conversationID)
	if err != nil {
		return domain.Message{}, err
	}
	uid, err := parseID(userID)
	if err != nil {
		return domain.Message{}, err
	}

	conv, err := s.convs.GetOwned(ctx, cid, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Message{}, ErrConversationNotFound
		}
		return domain.Message{}, fmt.Errorf("get conversation: %w", err)
	}

	userMsg := domain.Message{
		ConversationID: cid,
		Sender:         domain.SenderUser,
		Content:        text,
		Timestamp:      time.Now().UTC(),
	}
	if _, err := s.msgs.Insert(ctx, userMsg); err != nil {
		return domain.Message{}, fmt.Errorf("insert user message: %w", err)
	}

	answer := s.gateway.Answer(ctx, text)

	botMsg := domain.Message{
		ConversationID: cid,
		Sender:         domain.SenderBot,
		Content:        answer,
		Timestamp:      time.Now().UTC(),
	}
	botID, err := s.msgs.Insert(ctx, botMsg)
	if err != nil {
		return domain.Message{}, fmt.Errorf("insert bot message: %w", err)
	}
	botMsg.ID = botID

	title := ""
	if conv.Title == domain.DefaultTitle {
		title = conversationTitle(text)
	}
	if err := s.convs.Refresh(ctx, cid, title, time.Now().UTC()); err != nil {
		return domain.Message{}, fmt.Errorf("refresh conversation: %w", err)
	}

	return botMsg, nil
}

// Ask responde una pregunta del usuario. Sin conversationID crea una
// conversacion nueva titulada desde la pregunta; con uno, verifica que
// pertenezca al usuario. Devuelve la respuesta y el id de conversacion,
// posiblemente recien creado.
func (s *ChatService) Ask(ctx context.Context, userID, conversationID, question string) (string, string, error) {
	uid, err := parseID(userID)
	if err != nil {
		return "", "", err
	}
	if _, err := s.users.GetByID(ctx, uid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", "", ErrUserNotFound
		}
		return "", "", fmt.Errorf("get user: %w", err)
	}

	cid, err := s.resolveConversation(ctx, uid, conversationID, question)
	if err != nil {
		return "", "", err
	}

	userMsg := domain.Message{
		ConversationID: cid,
		Sender:         domain.SenderUser,
		Content:        question,
		Timestamp:      time.Now().UTC(),
	}
	if _, err := s.msgs.Insert(ctx, userMsg); err != nil {
		return "", "", fmt.Errorf("insert user message: %w", err)
	}

	answer := s.gateway.Answer(ctx, question)

	botMsg := domain.Message{
		ConversationID: cid,
		Sender:         domain.SenderBot,
		Content:        answer,
		Timestamp:      time.Now().UTC(),
	}
	if _, err := s.msgs.Insert(ctx, botMsg); err != nil {
		return "", "", fmt.Errorf("insert bot message: %w", err)
	}

	if err := s.convs.Refresh(ctx, cid, "", time.Now().UTC()); err != nil {
		return "", "", fmt.Errorf("refresh conversation: %w", err)
	}

	return answer, cid.Hex(), nil
}

// Health reporta el estado del servicio de inferencia.
func (s *ChatService) Health(ctx context.Context) string {
	return s.gateway.Health(ctx)
}

func (s *ChatService) resolveConversation(ctx context.Context, uid primitive.ObjectID, conversationID, question string) (primitive.ObjectID, error) {
	if conversationID == "" {
		now := time.Now().UTC()
		conv := domain.Conversation{
			UserID:    uid,
			Title:     conversationTitle(question),
			CreatedAt: now,
			UpdatedAt: now,
		}
		cid, err := s.convs.Create(ctx, conv)
		if err != nil {
			return primitive.NilObjectID, fmt.Errorf("create conversation: %w", err)
		}
		s.logger.Info("conversation created", zap.String("conversation_id", cid.Hex()))
		return cid, nil
	}

	cid, err := parseID(conversationID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if _, err := s.convs.GetOwned(ctx, cid, uid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return primitive.NilObjectID, ErrConversationNotFound
		}
		return primitive.NilObjectID, fmt.Errorf("get conversation: %w", err)
	}
	return cid, nil
}

// conversationTitle deriva un titulo de las primeras palabras del texto:
// hasta cinco tokens separados por espacios, con "..." si habia mas.
func conversationTitle(text string) string {
	words := strings.Fields(text)
	if len(words) <= titleWordLimit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:titleWordLimit], " ") + "..."
}
