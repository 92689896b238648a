package services

import (
	"context"
	"strings"
	"time"

	"github.com/joshua-takyi/rsvp/internal/catalog"
	"github.com/joshua-takyi/rsvp/internal/models"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

type EventService struct {
	eventsRepo models.EventsRepo
}

func NewEventService(eventsRepo models.EventsRepo) *EventService {
	return &EventService{
		eventsRepo: eventsRepo,
	}
}

// EventInput is what an organizer sends to create or replace an event.
type EventInput struct {
	Name        string            `json:"name"`
	Date        string            `json:"date"`
	Description string            `json:"description"`
	Fields      []catalog.FieldID `json:"fields"`
}

// ParseEventDate accepts RFC 3339, an HTML datetime-local value or a bare
// date.
func ParseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, models.NewValidationError("date", "date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, models.NewValidationError("date", "date must be a valid date")
}

func validateFields(fields []catalog.FieldID) ([]catalog.FieldID, error) {
	seen := make(map[catalog.FieldID]bool, len(fields))
	out := make([]catalog.FieldID, 0, len(fields))
	for _, id := range fields {
		id = catalog.FieldID(strings.TrimSpace(string(id)))
		if !catalog.Known(id) {
			return nil, models.NewValidationError("fields", "unknown field %q", id)
		}
		if seen[id] {
			return nil, models.NewValidationError("fields", "duplicate field %q", id)
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

func (in EventInput) apply(e *models.Event) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.NewValidationError("name", "name is required")
	}
	date, err := ParseEventDate(in.Date)
	if err != nil {
		return err
	}
	fields, err := validateFields(in.Fields)
	if err != nil {
		return err
	}

	e.Name = name
	e.Date = date
	e.Description = strings.TrimSpace(in.Description)
	e.Fields = fields
	return models.ValidateStruct(e)
}

func (es *EventService) CreateEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	event := &models.Event{}
	if err := in.apply(event); err != nil {
		return nil, err
	}
	return es.eventsRepo.CreateEvent(ctx, event)
}

func (es *EventService) GetEvent(ctx context.Context, rawID string) (*models.Event, error) {
	id, err := models.ParseObjectID("id", rawID)
	if err != nil {
		return nil, err
	}
	return es.eventsRepo.GetEvent(ctx, id)
}

func (es *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return es.eventsRepo.ListEvents(ctx)
}

// UpdateEvent replaces the editable fields of an event. Stored submissions
// keep the answers they were given.
func (es *EventService) UpdateEvent(ctx context.Context, rawID string, in EventInput) (*models.Event, error) {
	existing, err := es.GetEvent(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if err := in.apply(existing); err != nil {
		return nil, err
	}
	return es.eventsRepo.UpdateEvent(ctx, existing)
}

// DeleteEvent removes the event only. Its submissions and rsvps stay and
// keep the now dangling reference.
func (es *EventService) DeleteEvent(ctx context.Context, rawID string) error {
	id, err := models.ParseObjectID("id", rawID)
	if err != nil {
		return err
	}
	return es.eventsRepo.DeleteEvent(ctx, id)
}
