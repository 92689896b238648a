package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type attendeeRow struct {
	ID                  string           `json:"id"`
	EventID             *string          `json:"event_id"`
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	Phone               string           `json:"phone"`
	NumberOfGuests      int              `json:"number_of_guests"`
	DietaryRestrictions string           `json:"dietary_restrictions"`
	AdditionalNotes     string           `json:"additional_notes"`
	AttendanceStatus    AttendanceStatus `json:"attendance_status"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func newAttendeeRow(a *Attendee) attendeeRow {
	row := attendeeRow{
		ID:                  a.ID.Hex(),
		Name:                a.Name,
		Email:               a.Email,
		Phone:               a.Phone,
		NumberOfGuests:      a.NumberOfGuests,
		DietaryRestrictions: a.DietaryRestrictions,
		AdditionalNotes:     a.AdditionalNotes,
		AttendanceStatus:    a.Status,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
	if a.EventID != nil {
		hex := a.EventID.Hex()
		row.EventID = &hex
	}
	return row
}

func decodeAttendeeRows(data []byte) ([]*Attendee, error) {
	var rows []attendeeRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("error decoding rsvp rows: %w", err)
	}

	attendees := make([]*Attendee, 0, len(rows))
	for _, r := range rows {
		id, err := primitive.ObjectIDFromHex(r.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid rsvp id %q in row: %w", r.ID, err)
		}
		a := &Attendee{
			ID:                  id,
			Name:                r.Name,
			Email:               r.Email,
			Phone:               r.Phone,
			NumberOfGuests:      r.NumberOfGuests,
			DietaryRestrictions: r.DietaryRestrictions,
			AdditionalNotes:     r.AdditionalNotes,
			Status:              r.AttendanceStatus,
			CreatedAt:           r.CreatedAt,
			UpdatedAt:           r.UpdatedAt,
		}
		if r.EventID != nil {
			eventID, err := primitive.ObjectIDFromHex(*r.EventID)
			if err != nil {
				return nil, fmt.Errorf("invalid event id %q in row: %w", *r.EventID, err)
			}
			a.EventID = &eventID
		}
		attendees = append(attendees, a)
	}
	return attendees, nil
}

func firstAttendee(data []byte) (*Attendee, error) {
	attendees, err := decodeAttendeeRows(data)
	if err != nil {
		return nil, err
	}
	if len(attendees) == 0 {
		return nil, NotFound("RSVP")
	}
	return attendees[0], nil
}

func (su *SupabaseRepo) CreateAttendee(ctx context.Context, a *Attendee) (*Attendee, error) {
	a.BeforeCreate()

	data, _, err := su.supabaseClient.
		From(AttendeesColName).
		Insert(newAttendeeRow(a), false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert rsvp: %w", err)
	}

	attendees, err := decodeAttendeeRows(data)
	if err != nil {
		return nil, err
	}
	if len(attendees) == 0 {
		return nil, fmt.Errorf("insert returned no rsvp row")
	}
	return attendees[0], nil
}

func (su *SupabaseRepo) GetAttendee(ctx context.Context, id primitive.ObjectID) (*Attendee, error) {
	data, _, err := su.supabaseClient.
		From(AttendeesColName).
		Select("*", "", false).
		Eq("id", id.Hex()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("error finding rsvp: %w", err)
	}
	return firstAttendee(data)
}

func (su *SupabaseRepo) ListAttendees(ctx context.Context, filter AttendeeFilter) ([]*Attendee, error) {
	query := su.supabaseClient.
		From(AttendeesColName).
		Select("*", "", false)
	if filter.EventID != nil {
		query = query.Eq("event_id", filter.EventID.Hex())
	}
	query = query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Order("id", &postgrest.OrderOpts{Ascending: false})
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("error listing rsvps: %w", err)
	}
	return decodeAttendeeRows(data)
}

func (su *SupabaseRepo) UpdateAttendee(ctx context.Context, a *Attendee) (*Attendee, error) {
	a.UpdatedAt = time.Now().UTC()
	row := newAttendeeRow(a)

	data, _, err := su.supabaseClient.
		From(AttendeesColName).
		Update(map[string]interface{}{
			"event_id":             row.EventID,
			"name":                 row.Name,
			"email":                row.Email,
			"phone":                row.Phone,
			"number_of_guests":     row.NumberOfGuests,
			"dietary_restrictions": row.DietaryRestrictions,
			"additional_notes":     row.AdditionalNotes,
			"attendance_status":    row.AttendanceStatus,
			"updated_at":           row.UpdatedAt,
		}, "representation", "").
		Eq("id", row.ID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("error updating rsvp: %w", err)
	}
	return firstAttendee(data)
}

func (su *SupabaseRepo) UpdateAttendeeStatus(ctx context.Context, id primitive.ObjectID, status AttendanceStatus) (*Attendee, error) {
	data, _, err := su.supabaseClient.
		From(AttendeesColName).
		Update(map[string]interface{}{
			"attendance_status": status,
			"updated_at":        time.Now().UTC(),
		}, "representation", "").
		Eq("id", id.Hex()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("error updating rsvp status: %w", err)
	}
	return firstAttendee(data)
}

func (su *SupabaseRepo) DeleteAttendee(ctx context.Context, id primitive.ObjectID) error {
	data, _, err := su.supabaseClient.
		From(AttendeesColName).
		Delete("representation", "").
		Eq("id", id.Hex()).
		Execute()
	if err != nil {
		return fmt.Errorf("error deleting rsvp: %w", err)
	}
	_, err = firstAttendee(data)
	return err
}

// SummarizeAttendees scans the status and guest columns; PostgREST has no
// group-by without a view or RPC.
func (su *SupabaseRepo) SummarizeAttendees(ctx context.Context) (*Summary, error) {
	data, _, err := su.supabaseClient.
		From(AttendeesColName).
		Select("attendance_status,number_of_guests", "", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("error scanning rsvps: %w", err)
	}

	var rows []struct {
		AttendanceStatus AttendanceStatus `json:"attendance_status"`
		NumberOfGuests   int              `json:"number_of_guests"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("error decoding rsvp rows: %w", err)
	}

	summary := NewSummary()
	for _, r := range rows {
		summary.Add(r.AttendanceStatus, 1, r.NumberOfGuests)
	}
	return summary, nil
}
