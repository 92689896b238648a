package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type submissionRow struct {
	ID        string            `json:"id"`
	EventID   string            `json:"event_id"`
	Responses map[string]string `json:"responses"`
	CreatedAt time.Time         `json:"created_at"`
}

func decodeSubmissionRows(data []byte) ([]*Submission, error) {
	var rows []submissionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("error decoding submission rows: %w", err)
	}

	subs := make([]*Submission, 0, len(rows))
	for _, r := range rows {
		id, err := primitive.ObjectIDFromHex(r.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid submission id %q in row: %w", r.ID, err)
		}
		eventID, err := primitive.ObjectIDFromHex(r.EventID)
		if err != nil {
			return nil, fmt.Errorf("invalid event id %q in row: %w", r.EventID, err)
		}
		if r.Responses == nil {
			r.Responses = map[string]string{}
		}
		subs = append(subs, &Submission{
			ID:        id,
			EventID:   eventID,
			Responses: r.Responses,
			CreatedAt: r.CreatedAt,
		})
	}
	return subs, nil
}

func (su *SupabaseRepo) CreateSubmission(ctx context.Context, sub *Submission) (*Submission, error) {
	sub.BeforeCreate()
	row := submissionRow{
		ID:        sub.ID.Hex(),
		EventID:   sub.EventID.Hex(),
		Responses: sub.Responses,
		CreatedAt: sub.CreatedAt,
	}

	data, _, err := su.supabaseClient.
		From(SubmissionsColName).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert submission: %w", err)
	}

	subs, err := decodeSubmissionRows(data)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("insert returned no submission row")
	}
	return subs[0], nil
}

func (su *SupabaseRepo) GetSubmission(ctx context.Context, id primitive.ObjectID) (*Submission, error) {
	data, _, err := su.supabaseClient.
		From(SubmissionsColName).
		Select("*", "", false).
		Eq("id", id.Hex()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("error finding submission: %w", err)
	}

	subs, err := decodeSubmissionRows(data)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, NotFound("submission")
	}
	return subs[0], nil
}

func (su *SupabaseRepo) ListSubmissions(ctx context.Context, eventID *primitive.ObjectID) ([]*Submission, error) {
	query := su.supabaseClient.
		From(SubmissionsColName).
		Select("*", "", false)
	if eventID != nil {
		query = query.Eq("event_id", eventID.Hex())
	}

	data, _, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Order("id", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	return decodeSubmissionRows(data)
}

func (su *SupabaseRepo) DeleteSubmission(ctx context.Context, id primitive.ObjectID) error {
	data, _, err := su.supabaseClient.
		From(SubmissionsColName).
		Delete("representation", "").
		Eq("id", id.Hex()).
		Execute()
	if err != nil {
		return fmt.Errorf("error deleting submission: %w", err)
	}

	subs, err := decodeSubmissionRows(data)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return NotFound("submission")
	}
	return nil
}
