package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Submission is one attendee's answers to an event form. Responses is a
// snapshot keyed by field id and is never reconciled with later edits to
// the event.
type Submission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   primitive.ObjectID `bson:"event_id" json:"eventId"`
	Responses map[string]string  `bson:"responses" json:"responses"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

type SubmissionsRepo interface {
	CreateSubmission(ctx context.Context, sub *Submission) (*Submission, error)
	GetSubmission(ctx context.Context, id primitive.ObjectID) (*Submission, error)
	// ListSubmissions returns every submission in creation order, restricted
	// to one event when eventID is non-nil.
	ListSubmissions(ctx context.Context, eventID *primitive.ObjectID) ([]*Submission, error)
	DeleteSubmission(ctx context.Context, id primitive.ObjectID) error
}

func (s *Submission) BeforeCreate() {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if s.Responses == nil {
		s.Responses = map[string]string{}
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
}

func (mdb *MongodbRepo) CreateSubmission(ctx context.Context, sub *Submission) (*Submission, error) {
	sub.BeforeCreate()
	col, err := mdb.GetCollection(SubmissionsColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	if _, err := col.InsertOne(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to insert submission into database: %w", err)
	}
	return sub, nil
}

func (mdb *MongodbRepo) GetSubmission(ctx context.Context, id primitive.ObjectID) (*Submission, error) {
	col, err := mdb.GetCollection(SubmissionsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var sub Submission
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFound("submission")
	}
	if err != nil {
		return nil, fmt.Errorf("error finding submission: %w", err)
	}
	if sub.Responses == nil {
		sub.Responses = map[string]string{}
	}
	return &sub, nil
}

func (mdb *MongodbRepo) ListSubmissions(ctx context.Context, eventID *primitive.ObjectID) ([]*Submission, error) {
	col, err := mdb.GetCollection(SubmissionsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{}
	if eventID != nil {
		filter["event_id"] = *eventID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding submissions: %w", err)
	}
	defer cursor.Close(ctx)

	subs := []*Submission{}
	for cursor.Next(ctx) {
		var sub Submission
		if err := cursor.Decode(&sub); err != nil {
			return nil, fmt.Errorf("error decoding submission: %w", err)
		}
		if sub.Responses == nil {
			sub.Responses = map[string]string{}
		}
		subs = append(subs, &sub)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return subs, nil
}

func (mdb *MongodbRepo) DeleteSubmission(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(SubmissionsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting submission: %w", err)
	}
	if res.DeletedCount == 0 {
		return NotFound("submission")
	}
	return nil
}
