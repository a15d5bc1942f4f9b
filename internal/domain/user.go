package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User representa una cuenta registrada. El documento es inmutable
// despues del registro: no existen operaciones de update ni delete.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
