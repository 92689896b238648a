package container

import (
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/rsvp/internal/config"
	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/joshua-takyi/rsvp/internal/notify"
	"github.com/joshua-takyi/rsvp/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config
	Store  models.Store
	// OrganizerKeyfunc is nil when organizer routes are open.
	OrganizerKeyfunc jwt.Keyfunc

	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client

	EventService      *services.EventService
	SubmissionService *services.SubmissionService
	AttendeeService   *services.AttendeeService
}

// NewStore returns the repository for the configured driver. Only the
// client the driver needs has to be non-nil.
func NewStore(cfg *config.Config, supabaseClient *supabase.Client, mongoDBClient *mongo.Client) (models.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		if mongoDBClient == nil {
			return nil, fmt.Errorf("mongo store selected without a MongoDB client")
		}
		return models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase), nil
	case config.StoreSupabase:
		if supabaseClient == nil {
			return nil, fmt.Errorf("supabase store selected without a Supabase client")
		}
		return models.SupabaseNewRepo(supabaseClient), nil
	case config.StoreMemory:
		return models.NewMemoryRepo(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	organizerKeyfunc jwt.Keyfunc,
) (*Container, error) {
	store, err := NewStore(cfg, supabaseClient, mongoDBClient)
	if err != nil {
		return nil, err
	}

	notifier, err := notify.NewNotifier(notify.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: notify.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up mailer: %w", err)
	}

	return &Container{
		Logger:            logger,
		Config:            cfg,
		Store:             store,
		OrganizerKeyfunc:  organizerKeyfunc,
		SupabaseClient:    supabaseClient,
		MongoDBClient:     mongoDBClient,
		EventService:      services.NewEventService(store),
		SubmissionService: services.NewSubmissionService(store, store, notifier, logger),
		AttendeeService:   services.NewAttendeeService(store),
	}, nil
}
