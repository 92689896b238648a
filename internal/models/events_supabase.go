package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/joshua-takyi/rsvp/internal/catalog"
	"github.com/supabase-community/postgrest-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// eventRow is the snake_case shape of the events table.
type eventRow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Fields      []string  `json:"fields"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newEventRow(e *Event) eventRow {
	fields := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, string(f))
	}
	return eventRow{
		ID:          e.ID.Hex(),
		Name:        e.Name,
		Date:        e.Date,
		Description: e.Description,
		Fields:      fields,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r eventRow) toEvent() (*Event, error) {
	id, err := primitive.ObjectIDFromHex(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id %q in row: %w", r.ID, err)
	}
	fields := make([]catalog.FieldID, 0, len(r.Fields))
	for _, f := range r.Fields {
		fields = append(fields, catalog.FieldID(f))
	}
	return &Event{
		ID:          id,
		Name:        r.Name,
		Date:        r.Date,
		Description: r.Description,
		Fields:      fields,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

func decodeEventRows(data []byte) ([]*Event, error) {
	var rows []eventRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("error decoding event rows: %w", err)
	}
	events := make([]*Event, 0, len(rows))
	for _, r := range rows {
		e, err := r.toEvent()
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (su *SupabaseRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	event.BeforeCreate()

	data, _, err := su.supabaseClient.
		From(EventsColName).
		Insert(newEventRow(event), false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	events, err := decodeEventRows(data)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("insert returned no event row")
	}
	return events[0], nil
}

func (su *SupabaseRepo) GetEvent(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	data, _, err := su.supabaseClient.
		From(EventsColName).
		Select("*", "", false).
		Eq("id", id.Hex()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("error finding event: %w", err)
	}

	events, err := decodeEventRows(data)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, NotFound("event")
	}
	return events[0], nil
}

func (su *SupabaseRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	data, _, err := su.supabaseClient.
		From(EventsColName).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Order("id", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return decodeEventRows(data)
}

func (su *SupabaseRepo) UpdateEvent(ctx context.Context, event *Event) (*Event, error) {
	event.UpdatedAt = time.Now().UTC()
	row := newEventRow(event)

	data, _, err := su.supabaseClient.
		From(EventsColName).
		Update(map[string]interface{}{
			"name":        row.Name,
			"date":        row.Date,
			"description": row.Description,
			"fields":      row.Fields,
			"updated_at":  row.UpdatedAt,
		}, "representation", "").
		Eq("id", row.ID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}

	events, err := decodeEventRows(data)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, NotFound("event")
	}
	return events[0], nil
}

func (su *SupabaseRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	data, _, err := su.supabaseClient.
		From(EventsColName).
		Delete("representation", "").
		Eq("id", id.Hex()).
		Execute()
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}

	events, err := decodeEventRows(data)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return NotFound("event")
	}
	return nil
}
