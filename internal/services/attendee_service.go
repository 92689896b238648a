package services

import (
	"context"
	"strings"

	"github.com/joshua-takyi/rsvp/internal/models"
)

type AttendeeService struct {
	attendeesRepo models.AttendeesRepo
}

func NewAttendeeService(attendeesRepo models.AttendeesRepo) *AttendeeService {
	return &AttendeeService{
		attendeesRepo: attendeesRepo,
	}
}

// AttendeeInput is the fixed-schema RSVP body. Status may be sent as
// attendanceStatus or status.
type AttendeeInput struct {
	Event               string `json:"event"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	NumberOfGuests      int    `json:"numberOfGuests"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	AdditionalNotes     string `json:"additionalNotes"`
	AttendanceStatus    string `json:"attendanceStatus"`
	Status              string `json:"status"`
}

// StatusInput is the body of a status-only update.
type StatusInput struct {
	AttendanceStatus string `json:"attendanceStatus"`
	Status           string `json:"status"`
}

func resolveStatus(attendanceStatus, status string) (models.AttendanceStatus, error) {
	a := strings.TrimSpace(attendanceStatus)
	s := strings.TrimSpace(status)
	if a != "" && s != "" && a != s {
		return "", models.NewValidationError("attendanceStatus", "attendanceStatus and status disagree")
	}
	if a == "" {
		a = s
	}
	return models.AttendanceStatus(a), nil
}

func (in AttendeeInput) apply(a *models.Attendee) error {
	status, err := resolveStatus(in.AttendanceStatus, in.Status)
	if err != nil {
		return err
	}
	if status == "" {
		status = models.StatusConfirmed
	}

	a.EventID = nil
	if ev := strings.TrimSpace(in.Event); ev != "" {
		id, err := models.ParseObjectID("event", ev)
		if err != nil {
			return err
		}
		a.EventID = &id
	}

	a.Name = strings.TrimSpace(in.Name)
	a.Email = strings.TrimSpace(in.Email)
	a.Phone = strings.TrimSpace(in.Phone)
	a.NumberOfGuests = in.NumberOfGuests
	if a.NumberOfGuests == 0 {
		a.NumberOfGuests = 1
	}
	a.DietaryRestrictions = strings.TrimSpace(in.DietaryRestrictions)
	a.AdditionalNotes = strings.TrimSpace(in.AdditionalNotes)
	a.Status = status

	return models.ValidateStruct(a)
}

func (as *AttendeeService) CreateAttendee(ctx context.Context, in AttendeeInput) (*models.Attendee, error) {
	a := &models.Attendee{}
	if err := in.apply(a); err != nil {
		return nil, err
	}
	return as.attendeesRepo.CreateAttendee(ctx, a)
}

func (as *AttendeeService) GetAttendee(ctx context.Context, rawID string) (*models.Attendee, error) {
	id, err := models.ParseObjectID("id", rawID)
	if err != nil {
		return nil, err
	}
	return as.attendeesRepo.GetAttendee(ctx, id)
}

// ListAttendees returns rsvps newest first, optionally for one event and
// capped at limit when limit is positive.
func (as *AttendeeService) ListAttendees(ctx context.Context, rawEventID string, limit int) ([]*models.Attendee, error) {
	if limit < 0 {
		return nil, models.NewValidationError("limit", "limit must not be negative")
	}
	filter := models.AttendeeFilter{Limit: limit}
	if strings.TrimSpace(rawEventID) != "" {
		id, err := models.ParseObjectID("event", rawEventID)
		if err != nil {
			return nil, err
		}
		filter.EventID = &id
	}
	return as.attendeesRepo.ListAttendees(ctx, filter)
}

func (as *AttendeeService) UpdateAttendee(ctx context.Context, rawID string, in AttendeeInput) (*models.Attendee, error) {
	existing, err := as.GetAttendee(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if err := in.apply(existing); err != nil {
		return nil, err
	}
	return as.attendeesRepo.UpdateAttendee(ctx, existing)
}

// UpdateStatus sets the attendance status. Concurrent updates resolve as
// last write wins.
func (as *AttendeeService) UpdateStatus(ctx context.Context, rawID string, in StatusInput) (*models.Attendee, error) {
	id, err := models.ParseObjectID("id", rawID)
	if err != nil {
		return nil, err
	}
	status, err := resolveStatus(in.AttendanceStatus, in.Status)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return nil, models.NewValidationError("attendanceStatus", "attendanceStatus is required")
	}
	if !status.Valid() {
		return nil, models.NewValidationError("attendanceStatus", "attendanceStatus must be one of: confirmed, pending, cancelled")
	}
	return as.attendeesRepo.UpdateAttendeeStatus(ctx, id, status)
}

func (as *AttendeeService) DeleteAttendee(ctx context.Context, rawID string) error {
	id, err := models.ParseObjectID("id", rawID)
	if err != nil {
		return err
	}
	return as.attendeesRepo.DeleteAttendee(ctx, id)
}

// Summary is recomputed from the store on every call.
func (as *AttendeeService) Summary(ctx context.Context) (*models.Summary, error) {
	return as.attendeesRepo.SummarizeAttendees(ctx)
}
