package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTitle es el titulo centinela con el que nace una conversacion
// hasta que el primer intercambio dispara el auto-titulado.
const DefaultTitle = "New Conversation"

// Conversation agrupa mensajes de un usuario. UpdatedAt se refresca con
// cada mensaje agregado o edicion explicita de titulo.
type Conversation struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"-" bson:"user_id"`
	Title     string             `json:"title" bson:"title"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// ConversationSummary es el resultado del listado por usuario: la
// conversacion enriquecida con el conteo derivado de mensajes.
type ConversationSummary struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Title        string             `json:"title" bson:"title"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
	MessageCount int                `json:"message_count" bson:"message_count"`
}
