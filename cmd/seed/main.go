package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/rsvp/internal/catalog"
	"github.com/joshua-takyi/rsvp/internal/config"
	"github.com/joshua-takyi/rsvp/internal/connect"
	"github.com/joshua-takyi/rsvp/internal/container"
	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/joshua-takyi/rsvp/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

var sampleEvent = services.EventInput{
	Name:        "React Fundamentals Workshop",
	Date:        "2026-07-15T14:00:00Z",
	Description: "A hands-on afternoon building a first React app.",
	Fields:      catalog.AllFieldIDs(),
}

var sampleRSVPs = []services.AttendeeInput{
	{Name: "John Doe", Email: "john@example.com", Phone: "555-0123", AdditionalNotes: "Looking forward to learning React!"},
	{Name: "Jane Smith", Email: "jane@example.com", Phone: "555-0456", NumberOfGuests: 2, DietaryRestrictions: "vegetarian"},
	{Name: "Mike Johnson", Email: "mike@example.com", Phone: "555-0789", Status: string(models.StatusCancelled), AdditionalNotes: "Sorry, have a conflict that day"},
	{Name: "Sarah Wilson", Email: "sarah@example.com", Phone: "555-0321", Status: string(models.StatusPending), AdditionalNotes: "Excited to learn about design principles"},
}

// clearRSVPs removes every fixed-schema RSVP and every form submission.
// Events are left alone.
func clearRSVPs(ctx context.Context, store models.Store) (int, error) {
	removed := 0

	attendees, err := store.ListAttendees(ctx, models.AttendeeFilter{})
	if err != nil {
		return removed, fmt.Errorf("list rsvps: %w", err)
	}
	for _, a := range attendees {
		if err := store.DeleteAttendee(ctx, a.ID); err != nil {
			return removed, fmt.Errorf("delete rsvp %s: %w", a.ID.Hex(), err)
		}
		removed++
	}

	subs, err := store.ListSubmissions(ctx, nil)
	if err != nil {
		return removed, fmt.Errorf("list submissions: %w", err)
	}
	for _, s := range subs {
		if err := store.DeleteSubmission(ctx, s.ID); err != nil {
			return removed, fmt.Errorf("delete submission %s: %w", s.ID.Hex(), err)
		}
		removed++
	}
	return removed, nil
}

func seed(ctx context.Context, store models.Store, logger *slog.Logger) error {
	removed, err := clearRSVPs(ctx, store)
	if err != nil {
		return err
	}
	logger.Info("Cleared existing data", "removed", removed)

	event, err := services.NewEventService(store).CreateEvent(ctx, sampleEvent)
	if err != nil {
		return fmt.Errorf("create sample event: %w", err)
	}
	logger.Info("Created sample event", "id", event.ID.Hex(), "name", event.Name)

	as := services.NewAttendeeService(store)
	for _, in := range sampleRSVPs {
		in.Event = event.ID.Hex()
		if _, err := as.CreateAttendee(ctx, in); err != nil {
			return fmt.Errorf("create rsvp for %s: %w", in.Email, err)
		}
	}
	logger.Info("Inserted sample RSVPs", "count", len(sampleRSVPs))
	return nil
}

func main() {
	_ = godotenv.Load(".env.local")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var (
		supaClient  *supabase.Client
		mongoClient *mongo.Client
	)
	switch cfg.StoreDriver {
	case config.StoreSupabase:
		supaClient, err = connect.InitSupabase(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	case config.StoreMongo:
		mongoClient, err = connect.MongoDBConnect(cfg.MongoDBURI, cfg.MongoDBPassword)
	}
	if err != nil {
		logger.Error("Failed to connect to store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := connect.MongoDBDisconnect(); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	store, err := container.NewStore(cfg, supaClient, mongoClient)
	if err != nil {
		logger.Error("Failed to open store", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seed(ctx, store, logger); err != nil {
		logger.Error("Error seeding database", "error", err)
		return
	}
	logger.Info("Database seeded successfully")
}
