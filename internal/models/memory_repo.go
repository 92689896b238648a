package models

import (
	"context"
	"sync"
	"time"

	"github.com/joshua-takyi/rsvp/internal/catalog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps every collection in process. Records are copied on the
// way in and out so callers never share state with the store.
type MemoryRepo struct {
	mu          sync.RWMutex
	events      []*Event
	submissions []*Submission
	attendees   []*Attendee
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

func copyEvent(e *Event) *Event {
	c := *e
	c.Fields = append([]catalog.FieldID{}, e.Fields...)
	return &c
}

func copySubmission(s *Submission) *Submission {
	c := *s
	c.Responses = make(map[string]string, len(s.Responses))
	for k, v := range s.Responses {
		c.Responses[k] = v
	}
	return &c
}

func copyAttendee(a *Attendee) *Attendee {
	c := *a
	if a.EventID != nil {
		id := *a.EventID
		c.EventID = &id
	}
	return &c
}

func (m *MemoryRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	event.BeforeCreate()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, copyEvent(event))
	return copyEvent(event), nil
}

func (m *MemoryRepo) GetEvent(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.events {
		if e.ID == id {
			return copyEvent(e), nil
		}
	}
	return nil, NotFound("event")
}

func (m *MemoryRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]*Event, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, copyEvent(e))
	}
	return events, nil
}

func (m *MemoryRepo) UpdateEvent(ctx context.Context, event *Event) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.events {
		if e.ID == event.ID {
			event.CreatedAt = e.CreatedAt
			event.UpdatedAt = time.Now().UTC()
			m.events[i] = copyEvent(event)
			return copyEvent(event), nil
		}
	}
	return nil, NotFound("event")
}

func (m *MemoryRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.events {
		if e.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return NotFound("event")
}

func (m *MemoryRepo) CreateSubmission(ctx context.Context, sub *Submission) (*Submission, error) {
	sub.BeforeCreate()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, copySubmission(sub))
	return copySubmission(sub), nil
}

func (m *MemoryRepo) GetSubmission(ctx context.Context, id primitive.ObjectID) (*Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.submissions {
		if s.ID == id {
			return copySubmission(s), nil
		}
	}
	return nil, NotFound("submission")
}

func (m *MemoryRepo) ListSubmissions(ctx context.Context, eventID *primitive.ObjectID) ([]*Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	subs := []*Submission{}
	for _, s := range m.submissions {
		if eventID != nil && s.EventID != *eventID {
			continue
		}
		subs = append(subs, copySubmission(s))
	}
	return subs, nil
}

func (m *MemoryRepo) DeleteSubmission(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.submissions {
		if s.ID == id {
			m.submissions = append(m.submissions[:i], m.submissions[i+1:]...)
			return nil
		}
	}
	return NotFound("submission")
}

func (m *MemoryRepo) CreateAttendee(ctx context.Context, a *Attendee) (*Attendee, error) {
	a.BeforeCreate()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendees = append(m.attendees, copyAttendee(a))
	return copyAttendee(a), nil
}

func (m *MemoryRepo) GetAttendee(ctx context.Context, id primitive.ObjectID) (*Attendee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.attendees {
		if a.ID == id {
			return copyAttendee(a), nil
		}
	}
	return nil, NotFound("RSVP")
}

func (m *MemoryRepo) ListAttendees(ctx context.Context, filter AttendeeFilter) ([]*Attendee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	attendees := []*Attendee{}
	for i := len(m.attendees) - 1; i >= 0; i-- {
		a := m.attendees[i]
		if filter.EventID != nil && (a.EventID == nil || *a.EventID != *filter.EventID) {
			continue
		}
		attendees = append(attendees, copyAttendee(a))
		if filter.Limit > 0 && len(attendees) == filter.Limit {
			break
		}
	}
	return attendees, nil
}

func (m *MemoryRepo) UpdateAttendee(ctx context.Context, a *Attendee) (*Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.attendees {
		if existing.ID == a.ID {
			a.CreatedAt = existing.CreatedAt
			a.UpdatedAt = time.Now().UTC()
			m.attendees[i] = copyAttendee(a)
			return copyAttendee(a), nil
		}
	}
	return nil, NotFound("RSVP")
}

func (m *MemoryRepo) UpdateAttendeeStatus(ctx context.Context, id primitive.ObjectID, status AttendanceStatus) (*Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.attendees {
		if a.ID == id {
			a.Status = status
			a.UpdatedAt = time.Now().UTC()
			return copyAttendee(a), nil
		}
	}
	return nil, NotFound("RSVP")
}

func (m *MemoryRepo) DeleteAttendee(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.attendees {
		if a.ID == id {
			m.attendees = append(m.attendees[:i], m.attendees[i+1:]...)
			return nil
		}
	}
	return NotFound("RSVP")
}

func (m *MemoryRepo) SummarizeAttendees(ctx context.Context) (*Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Summarize(m.attendees), nil
}
