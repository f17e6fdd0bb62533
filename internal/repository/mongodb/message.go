package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// MessageStore stores chat messages keyed by conversation.
type MessageStore struct {
	coll *mongo.Collection
}

var _ repository.MessageRepository = (*MessageStore)(nil)

func (s *MessageStore) Append(ctx context.Context, msg *models.ChatMessage) error {
	_, err := s.coll.InsertOne(ctx, msg)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("mongodb: append message: %w", err)
	}
	return nil
}

func (s *MessageStore) ListByConversation(ctx context.Context, conversationID string, before time.Time, limit int) ([]models.ChatMessage, error) {
	query := bson.M{"conversationId": conversationID, "isDeleted": false}
	if !before.IsZero() {
		query["createdAt"] = bson.M{"$lt": before}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("mongodb: find messages: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.ChatMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, wrapCursorErr(err)
	}
	return out, nil
}

func (s *MessageStore) MarkRead(ctx context.Context, conversationID, userID string, at time.Time) error {
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"conversationId": conversationID, "recipientId": userID, "readAt": nil},
		bson.M{"$set": bson.M{"readAt": at, "updatedAt": at}},
	)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("mongodb: mark read: %w", err)
	}
	return nil
}

func (s *MessageStore) Conversations(ctx context.Context, userID string) ([]string, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"senderId": userID},
			bson.M{"recipientId": userID},
		}}}},
		{{Key: "$group", Value: bson.M{
			"_id":  "$conversationId",
			"last": bson.M{"$max": "$createdAt"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last", Value: -1}}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("mongodb: list conversations: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, wrapCursorErr(err)
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out, nil
}
