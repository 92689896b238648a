package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionIndexes lists the indexes each collection's queries rely on.
var collectionIndexes = map[string][]mongo.IndexModel{
	EventsColName: {
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("created_at_idx"),
		},
	},
	SubmissionsColName: {
		// listByEvent, creation order
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("event_created_at_idx"),
		},
	},
	AttendeesColName: {
		// dashboard lists, newest first
		{
			Keys:    bson.D{{Key: "event", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("event_created_at_idx"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_idx"),
		},
		{
			Keys:    bson.D{{Key: "attendance_status", Value: 1}},
			Options: options.Index().SetName("attendance_status_idx"),
		},
	},
}

// EnsureIndexes creates the indexes for every collection. Existing indexes
// with the same definition are left as they are.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	for _, colName := range []string{EventsColName, SubmissionsColName, AttendeesColName} {
		col, err := mdb.GetCollection(colName)
		if err != nil {
			return fmt.Errorf("error getting collection: %w", err)
		}
		if _, err := col.Indexes().CreateMany(ctx, collectionIndexes[colName]); err != nil {
			return fmt.Errorf("error creating indexes on %s: %w", colName, err)
		}
	}
	return nil
}
