package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"linux-assistant/internal/domain"
)

// Limite fijo del listado por usuario.
const listLimit = 100

// ConversationRepository define el contrato de persistencia para
// conversaciones. Toda lectura o borrado filtra por _id y user_id a la
// vez; la verificacion de pertenencia vive en este filtro, no en la base.
type ConversationRepository interface {
	Create(ctx context.Context, conv domain.Conversation) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (domain.Conversation, error)
	GetOwned(ctx context.Context, id, userID primitive.ObjectID) (domain.Conversation, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ConversationSummary, error)
	SetTitle(ctx context.Context, id, userID primitive.ObjectID, title string, now time.Time) (int64, error)
	Refresh(ctx context.Context, id primitive.ObjectID, title string, now time.Time) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) (int64, error)
	IDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// MongoConversationRepository implementa ConversationRepository sobre la
// coleccion conversations.
type MongoConversationRepository struct {
	coll *mongo.Collection
}

func NewMongoConversationRepository(database *mongo.Database) *MongoConversationRepository {
	return &MongoConversationRepository{coll: database.Collection("conversations")}
}

func (r *MongoConversationRepository) Create(ctx context.Context, conv domain.Conversation) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, conv)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoConversationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (domain.Conversation, error) {
	var c domain.Conversation
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	return c, err
}

func (r *MongoConversationRepository) GetOwned(ctx context.Context, id, userID primitive.ObjectID) (domain.Conversation, error) {
	var c domain.Conversation
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&c)
	return c, err
}

// ListByUser enriquece cada conversacion con el conteo derivado de
// mensajes via $lookup y ordena por updated_at descendente.
func (r *MongoConversationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "messages"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "conversation_id"},
			{Key: "as", Value: "messages"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "message_count", Value: bson.D{{Key: "$size", Value: "$messages"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "updated_at", Value: -1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "updated_at", Value: 1},
			{Key: "message_count", Value: 1},
		}}},
		{{Key: "$limit", Value: listLimit}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []domain.ConversationSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// SetTitle actualiza titulo y updated_at filtrando por propietario.
// Devuelve cuantos documentos matchearon para que el servicio distinga
// "no existe" de "existe bajo otro dueño".
func (r *MongoConversationRepository) SetTitle(ctx context.Context, id, userID primitive.ObjectID, title string, now time.Time) (int64, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"title": title, "updated_at": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Refresh refresca updated_at y, si title no es vacio, tambien el titulo.
// No filtra por propietario: el llamador ya verifico la pertenencia.
func (r *MongoConversationRepository) Refresh(ctx context.Context, id primitive.ObjectID, title string, now time.Time) error {
	set := bson.M{"updated_at": now}
	if title != "" {
		set["title"] = title
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (r *MongoConversationRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoConversationRepository) IDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (r *MongoConversationRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
