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

type AttendanceStatus string

const (
	StatusConfirmed AttendanceStatus = "confirmed"
	StatusPending   AttendanceStatus = "pending"
	StatusCancelled AttendanceStatus = "cancelled"
)

// Statuses lists every attendance status in summary order.
var Statuses = []AttendanceStatus{StatusConfirmed, StatusPending, StatusCancelled}

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// Attendee is a fixed-schema RSVP, stored apart from dynamic submissions.
type Attendee struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EventID             *primitive.ObjectID `bson:"event,omitempty" json:"event,omitempty"`
	Name                string              `bson:"name" json:"name" validate:"required"`
	Email               string              `bson:"email" json:"email" validate:"required,email"`
	Phone               string              `bson:"phone,omitempty" json:"phone,omitempty"`
	NumberOfGuests      int                 `bson:"number_of_guests" json:"numberOfGuests" validate:"min=1,max=20"`
	DietaryRestrictions string              `bson:"dietary_restrictions,omitempty" json:"dietaryRestrictions,omitempty"`
	AdditionalNotes     string              `bson:"additional_notes,omitempty" json:"additionalNotes,omitempty"`
	Status              AttendanceStatus    `bson:"attendance_status" json:"attendanceStatus" validate:"oneof=confirmed pending cancelled"`
	CreatedAt           time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updated_at" json:"updatedAt"`
}

type AttendeeFilter struct {
	EventID *primitive.ObjectID
	// Limit caps the result when positive.
	Limit int
}

type AttendeesRepo interface {
	CreateAttendee(ctx context.Context, a *Attendee) (*Attendee, error)
	GetAttendee(ctx context.Context, id primitive.ObjectID) (*Attendee, error)
	// ListAttendees returns matching records newest first.
	ListAttendees(ctx context.Context, filter AttendeeFilter) ([]*Attendee, error)
	UpdateAttendee(ctx context.Context, a *Attendee) (*Attendee, error)
	UpdateAttendeeStatus(ctx context.Context, id primitive.ObjectID, status AttendanceStatus) (*Attendee, error)
	DeleteAttendee(ctx context.Context, id primitive.ObjectID) error
	SummarizeAttendees(ctx context.Context) (*Summary, error)
}

func (a *Attendee) BeforeCreate() {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.NumberOfGuests == 0 {
		a.NumberOfGuests = 1
	}
	if a.Status == "" {
		a.Status = StatusConfirmed
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}

func (mdb *MongodbRepo) CreateAttendee(ctx context.Context, a *Attendee) (*Attendee, error) {
	a.BeforeCreate()
	col, err := mdb.GetCollection(AttendeesColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create rsvp: %w", err)
	}
	if _, err := col.InsertOne(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to insert rsvp into database: %w", err)
	}
	return a, nil
}

func (mdb *MongodbRepo) GetAttendee(ctx context.Context, id primitive.ObjectID) (*Attendee, error) {
	col, err := mdb.GetCollection(AttendeesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var a Attendee
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFound("RSVP")
	}
	if err != nil {
		return nil, fmt.Errorf("error finding rsvp: %w", err)
	}
	return &a, nil
}

func (mdb *MongodbRepo) ListAttendees(ctx context.Context, filter AttendeeFilter) ([]*Attendee, error) {
	col, err := mdb.GetCollection(AttendeesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	query := bson.M{}
	if filter.EventID != nil {
		query["event"] = *filter.EventID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding rsvps: %w", err)
	}
	defer cursor.Close(ctx)

	attendees := []*Attendee{}
	for cursor.Next(ctx) {
		var a Attendee
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("error decoding rsvp: %w", err)
		}
		attendees = append(attendees, &a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return attendees, nil
}

func (mdb *MongodbRepo) UpdateAttendee(ctx context.Context, a *Attendee) (*Attendee, error) {
	col, err := mdb.GetCollection(AttendeesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	a.UpdatedAt = time.Now().UTC()
	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	var updated Attendee
	err = col.FindOneAndReplace(ctx, bson.M{"_id": a.ID}, a, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFound("RSVP")
	}
	if err != nil {
		return nil, fmt.Errorf("error replacing rsvp: %w", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) UpdateAttendeeStatus(ctx context.Context, id primitive.ObjectID, status AttendanceStatus) (*Attendee, error) {
	col, err := mdb.GetCollection(AttendeesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	update := bson.M{
		"$set": bson.M{
			"attendance_status": status,
			"updated_at":        time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Attendee
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFound("RSVP")
	}
	if err != nil {
		return nil, fmt.Errorf("error updating rsvp status: %w", err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteAttendee(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(AttendeesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting rsvp: %w", err)
	}
	if res.DeletedCount == 0 {
		return NotFound("RSVP")
	}
	return nil
}

// SummarizeAttendees groups the rsvps collection by attendance status in a
// single aggregation.
func (mdb *MongodbRepo) SummarizeAttendees(ctx context.Context) (*Summary, error) {
	col, err := mdb.GetCollection(AttendeesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$attendance_status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "guests", Value: bson.D{{Key: "$sum", Value: "$number_of_guests"}}},
		}}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating rsvps: %w", err)
	}
	defer cursor.Close(ctx)

	summary := NewSummary()
	for cursor.Next(ctx) {
		var group struct {
			Status AttendanceStatus `bson:"_id"`
			Count  int              `bson:"count"`
			Guests int              `bson:"guests"`
		}
		if err := cursor.Decode(&group); err != nil {
			return nil, fmt.Errorf("error decoding rsvp group: %w", err)
		}
		summary.Add(group.Status, group.Count, group.Guests)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return summary, nil
}
