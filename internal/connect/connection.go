package connect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

var (
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
)

// InitSupabase builds the PostgREST-backed client. No request is made until
// the first query.
func InitSupabase(url, key string) (*supabase.Client, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	SupabaseClient = client
	return client, nil
}

func Disconnect() {
	SupabaseClient = nil
}

// MongoURI fills the <password> placeholder of an Atlas style URI.
func MongoURI(uri, password string) string {
	return strings.Replace(uri, "<password>", password, 1)
}

func MongoDBConnect(uri, password string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(MongoURI(uri, password))

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoDBClient = client
	return client, nil
}

func MongoDBDisconnect() error {
	if MongoDBClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := MongoDBClient.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	MongoDBClient = nil
	return nil
}
