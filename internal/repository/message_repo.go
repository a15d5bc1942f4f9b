package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"linux-assistant/internal/domain"
)

// Limite fijo de mensajes devueltos por conversacion.
const messageLimit = 1000

// MessageRepository define el contrato de persistencia para mensajes.
// No verifica pertenencia: eso es responsabilidad del servicio que lo
// invoca, a traves de la conversacion padre.
type MessageRepository interface {
	Insert(ctx context.Context, msg domain.Message) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (domain.Message, error)
	ListByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]domain.Message, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByConversation(ctx context.Context, conversationID primitive.ObjectID) (int64, error)
	DeleteByConversations(ctx context.Context, conversationIDs []primitive.ObjectID) (int64, error)
}

// MongoMessageRepository implementa MessageRepository sobre la coleccion
// messages.
type MongoMessageRepository struct {
	coll *mongo.Collection
}

func NewMongoMessageRepository(database *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{coll: database.Collection("messages")}
}

func (r *MongoMessageRepository) Insert(ctx context.Context, msg domain.Message) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoMessageRepository) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Message, error) {
	var m domain.Message
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	return m, err
}

func (r *MongoMessageRepository) ListByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]domain.Message, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"conversation_id": conversationID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: 1}}).
			SetLimit(messageLimit),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []domain.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MongoMessageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoMessageRepository) DeleteByConversation(ctx context.Context, conversationID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"conversation_id": conversationID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoMessageRepository) DeleteByConversations(ctx context.Context, conversationIDs []primitive.ObjectID) (int64, error) {
	if len(conversationIDs) == 0 {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"conversation_id": bson.M{"$in": conversationIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
