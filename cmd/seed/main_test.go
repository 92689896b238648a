package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/stretchr/testify/require"
)

func TestSeedReplacesRSVPs(t *testing.T) {
	ctx := context.Background()
	store := models.NewMemoryRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := store.CreateAttendee(ctx, &models.Attendee{Name: "Old", Email: "old@example.com"})
	require.NoError(t, err)
	_, err = store.CreateSubmission(ctx, &models.Submission{Responses: map[string]string{}})
	require.NoError(t, err)

	require.NoError(t, seed(ctx, store, logger))
	require.NoError(t, seed(ctx, store, logger))

	attendees, err := store.ListAttendees(ctx, models.AttendeeFilter{})
	require.NoError(t, err)
	require.Len(t, attendees, len(sampleRSVPs))

	subs, err := store.ListSubmissions(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, subs)

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, a := range attendees {
		require.Equal(t, events[1].ID, *a.EventID)
	}

	summary, err := store.SummarizeAttendees(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, summary.Total)
	require.Equal(t, 5, summary.TotalGuests)
	require.Equal(t, 2, summary.ByStatus[models.StatusConfirmed])
	require.Equal(t, 1, summary.ByStatus[models.StatusPending])
	require.Equal(t, 1, summary.ByStatus[models.StatusCancelled])
}
