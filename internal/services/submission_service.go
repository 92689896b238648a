package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/joshua-takyi/rsvp/internal/catalog"
	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/joshua-takyi/rsvp/internal/notify"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const confirmationTimeout = 10 * time.Second

type SubmissionService struct {
	submissionsRepo models.SubmissionsRepo
	eventsRepo      models.EventsRepo
	notifier        notify.Notifier
	logger          *slog.Logger

	// mail tracks confirmation sends still in flight.
	mail sync.WaitGroup
}

func NewSubmissionService(
	submissionsRepo models.SubmissionsRepo,
	eventsRepo models.EventsRepo,
	notifier notify.Notifier,
	logger *slog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionsRepo: submissionsRepo,
		eventsRepo:      eventsRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

type SubmissionInput struct {
	EventID   string            `json:"eventId"`
	Responses map[string]string `json:"responses"`
}

// Submit stores the answers as given. They are not checked against the
// event's current field list.
func (ss *SubmissionService) Submit(ctx context.Context, in SubmissionInput) (*models.Submission, error) {
	eventID, err := models.ParseObjectID("eventId", in.EventID)
	if err != nil {
		return nil, err
	}
	if in.Responses == nil {
		return nil, models.NewValidationError("responses", "responses is required")
	}

	responses := make(map[string]string, len(in.Responses))
	for k, v := range in.Responses {
		responses[k] = v
	}

	sub, err := ss.submissionsRepo.CreateSubmission(ctx, &models.Submission{
		EventID:   eventID,
		Responses: responses,
	})
	if err != nil {
		return nil, err
	}

	ss.queueConfirmation(ctx, sub.ID, sub.EventID, responses)
	return sub, nil
}

// queueConfirmation mails the attendee in the background when an email
// answer is present. Submit never waits for it.
func (ss *SubmissionService) queueConfirmation(ctx context.Context, id, eventID primitive.ObjectID, responses map[string]string) {
	to := strings.TrimSpace(responses[string(catalog.FieldEmail)])
	if to == "" || ss.notifier == nil {
		return
	}

	answers := make(map[string]string, len(responses))
	for k, v := range responses {
		answers[k] = v
	}
	c := notify.Confirmation{
		To:        to,
		Name:      strings.TrimSpace(answers[string(catalog.FieldName)]),
		EventName: "your event",
		Responses: answers,
	}
	detached := context.WithoutCancel(ctx)

	ss.mail.Add(1)
	go func() {
		defer ss.mail.Done()
		ss.sendConfirmation(detached, id, eventID, c)
	}()
}

// sendConfirmation failures are logged and never reach the caller.
func (ss *SubmissionService) sendConfirmation(ctx context.Context, id, eventID primitive.ObjectID, c notify.Confirmation) {
	ctx, cancel := context.WithTimeout(ctx, confirmationTimeout)
	defer cancel()

	if event, err := ss.eventsRepo.GetEvent(ctx, eventID); err == nil {
		c.EventName = event.Name
		c.EventDate = event.Date
	}

	if err := ss.notifier.SendConfirmation(ctx, c); err != nil {
		ss.logger.Warn("Confirmation email failed",
			"submission_id", id.Hex(),
			"error", err,
		)
	}
}

// Wait blocks until queued confirmation emails are done or ctx ends.
func (ss *SubmissionService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		ss.mail.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ss *SubmissionService) GetSubmission(ctx context.Context, rawID string) (*models.Submission, error) {
	id, err := models.ParseObjectID("id", rawID)
	if err != nil {
		return nil, err
	}
	return ss.submissionsRepo.GetSubmission(ctx, id)
}

// ListByEvent returns the event's submissions in creation order. The event
// itself need not exist.
func (ss *SubmissionService) ListByEvent(ctx context.Context, rawEventID string) ([]*models.Submission, error) {
	eventID, err := models.ParseObjectID("eventId", rawEventID)
	if err != nil {
		return nil, err
	}
	return ss.submissionsRepo.ListSubmissions(ctx, &eventID)
}

func (ss *SubmissionService) ListAll(ctx context.Context) ([]*models.Submission, error) {
	return ss.submissionsRepo.ListSubmissions(ctx, nil)
}

func (ss *SubmissionService) DeleteSubmission(ctx context.Context, rawID string) error {
	id, err := models.ParseObjectID("id", rawID)
	if err != nil {
		return err
	}
	return ss.submissionsRepo.DeleteSubmission(ctx, id)
}
