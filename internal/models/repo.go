package models

import (
	"context"
	"fmt"

	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	EventsColName      = "events"
	SubmissionsColName = "submissions"
	AttendeesColName   = "rsvps"
)

// Store is the full persistence surface the services need. Every driver
// (mongo, supabase, memory) implements it.
type Store interface {
	EventsRepo
	SubmissionsRepo
	AttendeesRepo
	Ping(ctx context.Context) error
}

type SupabaseRepo struct {
	supabaseClient *supabase.Client
}

func SupabaseNewRepo(supabaseClient *supabase.Client) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
	}
}

// Ping issues a one-row select against the events table.
func (su *SupabaseRepo) Ping(ctx context.Context) error {
	if su.supabaseClient == nil {
		return fmt.Errorf("supabase client is not initialized")
	}
	_, _, err := su.supabaseClient.
		From(EventsColName).
		Select("id", "", false).
		Limit(1, "").
		Execute()
	if err != nil {
		return fmt.Errorf("supabase ping: %w", err)
	}
	return nil
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

func (mdb *MongodbRepo) Ping(ctx context.Context) error {
	if mdb.mongodbClient == nil {
		return fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Ping(ctx, readpref.Primary())
}
