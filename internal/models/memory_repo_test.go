package models

import (
	"context"
	"testing"

	"github.com/joshua-takyi/rsvp/internal/catalog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryEventsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	created, err := repo.CreateEvent(ctx, &Event{Name: "A", Fields: []catalog.FieldID{catalog.FieldName}})
	require.NoError(t, err)
	_, err = repo.CreateEvent(ctx, &Event{Name: "B"})
	require.NoError(t, err)

	created.Fields[0] = "mutated"
	got, err := repo.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, []catalog.FieldID{catalog.FieldName}, got.Fields)

	events, err := repo.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "A", events[0].Name)
	require.Equal(t, "B", events[1].Name)

	require.NoError(t, repo.DeleteEvent(ctx, created.ID))
	require.ErrorIs(t, repo.DeleteEvent(ctx, created.ID), ErrNotFound)
	_, err = repo.GetEvent(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySubmissionsAreSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	eventID := primitive.NewObjectID()
	other := primitive.NewObjectID()

	responses := map[string]string{"name": "Ada"}
	sub, err := repo.CreateSubmission(ctx, &Submission{EventID: eventID, Responses: responses})
	require.NoError(t, err)
	_, err = repo.CreateSubmission(ctx, &Submission{EventID: other, Responses: map[string]string{}})
	require.NoError(t, err)

	responses["name"] = "Grace"
	got, err := repo.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada", got.Responses["name"])

	subs, err := repo.ListSubmissions(ctx, &eventID)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	all, err := repo.ListSubmissions(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestMemoryAttendeesNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	eventID := primitive.NewObjectID()

	for _, name := range []string{"first", "second", "third"} {
		_, err := repo.CreateAttendee(ctx, &Attendee{Name: name, Email: name + "@example.com", EventID: &eventID})
		require.NoError(t, err)
	}
	_, err := repo.CreateAttendee(ctx, &Attendee{Name: "loose", Email: "loose@example.com"})
	require.NoError(t, err)

	limited, err := repo.ListAttendees(ctx, AttendeeFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	require.Equal(t, "loose", limited[0].Name)
	require.Equal(t, "third", limited[1].Name)

	byEvent, err := repo.ListAttendees(ctx, AttendeeFilter{EventID: &eventID})
	require.NoError(t, err)
	require.Len(t, byEvent, 3)
	require.Equal(t, "third", byEvent[0].Name)
}

func TestMemoryAttendeeStatusAndSummary(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	a, err := repo.CreateAttendee(ctx, &Attendee{Name: "Ada", Email: "ada@example.com", NumberOfGuests: 3})
	require.NoError(t, err)
	_, err = repo.CreateAttendee(ctx, &Attendee{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	updated, err := repo.UpdateAttendeeStatus(ctx, a.ID, StatusPending)
	require.NoError(t, err)
	require.Equal(t, StatusPending, updated.Status)

	s, err := repo.SummarizeAttendees(ctx)
	require.NoError(t, err)
	require.Equal(t, SummaryResponse{
		TotalRSVPs:     2,
		ConfirmedRSVPs: 1,
		PendingRSVPs:   1,
		TotalGuests:    4,
	}, s.Response())

	_, err = repo.UpdateAttendeeStatus(ctx, primitive.NewObjectID(), StatusPending)
	require.ErrorIs(t, err, ErrNotFound)
}
