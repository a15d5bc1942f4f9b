package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Remitentes validos de un mensaje.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message pertenece a una conversacion y nunca se muta despues de
// creado. El orden dentro de la conversacion es por Timestamp ascendente.
type Message struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ConversationID primitive.ObjectID `json:"-" bson:"conversation_id"`
	Sender         string             `json:"sender" bson:"sender"`
	Content        string             `json:"content" bson:"content"`
	Timestamp      time.Time          `json:"timestamp" bson:"timestamp"`
}
