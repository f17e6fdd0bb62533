package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xenm/MapMe-sub002/internal/models"
	"github.com/xenm/MapMe-sub002/internal/repository"
)

// DateMarkStore stores Date Marks in one collection partitioned by userId.
type DateMarkStore struct {
	coll *mongo.Collection
}

var _ repository.DateMarkRepository = (*DateMarkStore)(nil)

func (s *DateMarkStore) Upsert(ctx context.Context, mark *models.DateMark) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": mark.ID},
		mark,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("mongodb: upsert datemark: %w", err)
	}
	return nil
}

func (s *DateMarkStore) GetByID(ctx context.Context, userID, id string) (*models.DateMark, error) {
	var m models.DateMark
	err := s.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID, "isDeleted": false}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("mongodb: get datemark: %w", err)
	}
	return &m, nil
}

// GetByUser builds the server-side equivalent of Filter.Matches and
// streams results straight off the cursor, newest creation first.
func (s *DateMarkStore) GetByUser(ctx context.Context, userID string, f repository.Filter) (repository.DateMarkSeq, error) {
	query := bson.M{
		"userId":    userID,
		"isDeleted": false,
	}
	if f.From != nil || f.To != nil {
		bounds := bson.M{}
		if f.From != nil {
			bounds["$gte"] = *f.From
		}
		if f.To != nil {
			bounds["$lte"] = *f.To
		}
		// Records without a visit date are excluded whenever a bound is
		// set; $gte/$lte never match a missing field, which matches the
		// shared predicate.
		query["visitDate"] = bounds
	}
	if len(f.Categories) > 0 {
		query["categoriesNorm"] = bson.M{"$in": f.Categories}
	}
	if len(f.Tags) > 0 {
		query["tagsNorm"] = bson.M{"$in": f.Tags}
	}
	if len(f.Qualities) > 0 {
		query["qualitiesNorm"] = bson.M{"$in": f.Qualities}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("mongodb: find datemarks: %w", err)
	}
	return &cursorSeq{cur: cur}, nil
}

// cursorSeq adapts a mongo cursor to the repository sequence contract.
type cursorSeq struct {
	cur *mongo.Cursor
	m   models.DateMark
	err error
}

func (s *cursorSeq) Next(ctx context.Context) bool {
	if s.err != nil {
		return false
	}
	if !s.cur.Next(ctx) {
		if err := s.cur.Err(); err != nil {
			s.err = wrapCursorErr(err)
		}
		return false
	}
	var m models.DateMark
	if err := s.cur.Decode(&m); err != nil {
		s.err = fmt.Errorf("mongodb: decode datemark: %w", err)
		return false
	}
	s.m = m
	return true
}

func (s *cursorSeq) Current() *models.DateMark { return &s.m }
func (s *cursorSeq) Err() error                { return s.err }

func (s *cursorSeq) Close(ctx context.Context) error {
	return s.cur.Close(ctx)
}

func wrapCursorErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("mongodb: cursor: %w", err)
}
