package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errores centinela de los servicios. La capa HTTP es el unico lugar
// que los traduce a codigos de estado.
var (
	ErrInvalidID            = errors.New("invalid id format")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrDuplicateUser        = errors.New("email or username already registered")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotOwner             = errors.New("caller does not own this resource")
)

// parseID convierte un identificador hex opaco en ObjectID. Un formato
// invalido es un error del cliente, no del servidor.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
