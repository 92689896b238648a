package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joshua-takyi/rsvp/internal/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event is an occasion an organizer collects RSVPs for. Fields lists the
// catalog ids its form asks for, in display order.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Date        time.Time          `bson:"date" json:"date" validate:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Fields      []catalog.FieldID  `bson:"fields" json:"fields"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type EventsRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEvent(ctx context.Context, id primitive.ObjectID) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, event *Event) (*Event, error)
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error
}

func (e *Event) BeforeCreate() {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Fields == nil {
		e.Fields = []catalog.FieldID{}
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	event.BeforeCreate()
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	if _, err := col.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert event into database: %w", err)
	}
	return event, nil
}

func (mdb *MongodbRepo) GetEvent(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var event Event
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFound("event")
	}
	if err != nil {
		return nil, fmt.Errorf("error finding event: %w", err)
	}
	event.normalize()
	return &event, nil
}

func (mdb *MongodbRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	for cursor.Next(ctx) {
		var event Event
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("error decoding event: %w", err)
		}
		event.normalize()
		events = append(events, &event)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return events, nil
}

func (mdb *MongodbRepo) UpdateEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	event.UpdatedAt = time.Now().UTC()
	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	var updated Event
	err = col.FindOneAndReplace(ctx, bson.M{"_id": event.ID}, event, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFound("event")
	}
	if err != nil {
		return nil, fmt.Errorf("error replacing event: %w", err)
	}
	updated.normalize()
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if res.DeletedCount == 0 {
		return NotFound("event")
	}
	return nil
}

func (e *Event) normalize() {
	if e.Fields == nil {
		e.Fields = []catalog.FieldID{}
	}
}
