// Package form builds the attendee-facing form for an event and checks the
// answers before anything is submitted.
package form

import (
	"sort"
	"strings"
	"time"

	"github.com/joshua-takyi/rsvp/internal/catalog"
	"github.com/joshua-takyi/rsvp/internal/models"
)

// RedirectDelay is how long the success message stays up before the
// browser returns to the event list.
const RedirectDelay = 1500 * time.Millisecond

// Control is one rendered input. Value and Error carry the current state.
type Control struct {
	catalog.Definition
	Value string
	Error string
}

func (c *Control) Name() string {
	return string(c.ID)
}

func (c *Control) Selected(value string) bool {
	return c.Value == value
}

type Form struct {
	EventID  string
	Controls []*Control
}

// Payload is the body posted to the submissions endpoint.
type Payload struct {
	EventID   string            `json:"eventId"`
	Responses map[string]string `json:"responses"`
}

// Errors maps field ids to a readable message. It is returned by Validate
// and by the client when a form is rejected locally.
type Errors map[catalog.FieldID]string

func (e Errors) Error() string {
	ids := make([]string, 0, len(e))
	for id := range e {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	msgs := make([]string, 0, len(ids))
	for _, id := range ids {
		msgs = append(msgs, e[catalog.FieldID(id)])
	}
	return strings.Join(msgs, "; ")
}

// New builds one empty control per field, in order.
func New(eventID string, fields []catalog.FieldID) *Form {
	f := &Form{EventID: eventID, Controls: make([]*Control, 0, len(fields))}
	for _, id := range fields {
		f.Controls = append(f.Controls, &Control{Definition: catalog.Resolve(id)})
	}
	return f
}

func FromEvent(e *models.Event) *Form {
	return New(e.ID.Hex(), e.Fields)
}

func (f *Form) Control(id catalog.FieldID) *Control {
	for _, c := range f.Controls {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Set records value for the field with the given id. It reports false when
// the form has no such field.
func (f *Form) Set(id catalog.FieldID, value string) bool {
	c := f.Control(id)
	if c == nil {
		return false
	}
	c.Value = value
	return true
}

// Bind fills every control from lookup, typically a posted form reader.
func (f *Form) Bind(lookup func(name string) string) {
	for _, c := range f.Controls {
		c.Value = lookup(c.Name())
	}
}

// Validate checks every control and records per-field messages on the
// controls. It returns Errors when at least one field fails.
func (f *Form) Validate() error {
	errs := Errors{}
	for _, c := range f.Controls {
		c.Error = ""
		if err := c.Check(c.Value); err != nil {
			c.Error = err.Error()
			errs[c.ID] = c.Error
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f *Form) Responses() map[string]string {
	responses := make(map[string]string, len(f.Controls))
	for _, c := range f.Controls {
		responses[c.Name()] = strings.TrimSpace(c.Value)
	}
	return responses
}

func (f *Form) Payload() Payload {
	return Payload{EventID: f.EventID, Responses: f.Responses()}
}
