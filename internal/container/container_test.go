package container

import (
	"io"
	"log/slog"
	"testing"

	"github.com/joshua-takyi/rsvp/internal/config"
	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/supabase-go"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(&config.Config{StoreDriver: config.StoreMemory}, nil, nil)
	require.NoError(t, err)
	require.IsType(t, &models.MemoryRepo{}, store)

	_, err = NewStore(&config.Config{StoreDriver: config.StoreMongo}, nil, nil)
	require.Error(t, err)

	_, err = NewStore(&config.Config{StoreDriver: config.StoreSupabase}, nil, nil)
	require.Error(t, err)

	client, err := supabase.NewClient("https://project.supabase.co", "anon", nil)
	require.NoError(t, err)
	store, err = NewStore(&config.Config{StoreDriver: config.StoreSupabase}, client, nil)
	require.NoError(t, err)
	require.IsType(t, &models.SupabaseRepo{}, store)

	_, err = NewStore(&config.Config{StoreDriver: "sqlite"}, nil, nil)
	require.EqualError(t, err, `unknown store driver "sqlite"`)
}

func TestNewContainer(t *testing.T) {
	c, err := NewContainer(discardLogger(), &config.Config{StoreDriver: config.StoreMemory, MailProvider: "noop"}, nil, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, c.EventService)
	require.NotNil(t, c.SubmissionService)
	require.NotNil(t, c.AttendeeService)
	require.Nil(t, c.OrganizerKeyfunc)

	_, err = NewContainer(discardLogger(), &config.Config{StoreDriver: config.StoreMemory, MailProvider: "pigeon"}, nil, nil, nil)
	require.ErrorContains(t, err, "failed to set up mailer")
}
