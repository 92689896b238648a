package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldID identifies an attendee field an event can collect.
type FieldID string

const (
	FieldName                FieldID = "name"
	FieldEmail               FieldID = "email"
	FieldPhone               FieldID = "phone"
	FieldNumberOfGuests      FieldID = "numberOfGuests"
	FieldDietaryRestrictions FieldID = "dietaryRestrictions"
	FieldAdditionalNotes     FieldID = "additionalNotes"
	FieldWillJoin            FieldID = "willJoin"
)

const (
	MinGuests = 1
	MaxGuests = 20
)

var validate = validator.New()

// Option is one selectable value of a choice field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Definition is the static description of a collectible field.
type Definition struct {
	ID      FieldID  `json:"id"`
	Label   string   `json:"label"`
	Kind    Kind     `json:"kind"`
	Options []Option `json:"options,omitempty"`
	// Fallback is set when the id is not in the registry and the field is
	// rendered as plain text under its raw id.
	Fallback bool `json:"fallback,omitempty"`
}

var registry = []Definition{
	{ID: FieldName, Label: "Full Name", Kind: KindText},
	{ID: FieldEmail, Label: "Email Address", Kind: KindEmail},
	{ID: FieldPhone, Label: "Phone Number", Kind: KindText},
	{ID: FieldNumberOfGuests, Label: "Number of Guests", Kind: KindGuestCount},
	{ID: FieldDietaryRestrictions, Label: "Dietary Restrictions", Kind: KindChoice, Options: []Option{
		{Value: "None", Label: "None"},
		{Value: "Vegetarian", Label: "Vegetarian"},
		{Value: "Vegan", Label: "Vegan"},
		{Value: "Gluten-Free", Label: "Gluten-Free"},
		{Value: "Dairy-Free", Label: "Dairy-Free"},
		{Value: "Other", Label: "Other"},
	}},
	{ID: FieldAdditionalNotes, Label: "Additional Notes", Kind: KindMultiline},
	{ID: FieldWillJoin, Label: "Will you join?", Kind: KindChoice, Options: []Option{
		{Value: "yes", Label: "Yes"},
		{Value: "no", Label: "No"},
	}},
}

var byID = func() map[FieldID]Definition {
	m := make(map[FieldID]Definition, len(registry))
	for _, d := range registry {
		m[d.ID] = d
	}
	return m
}()

// Resolve returns the definition for id. Ids missing from the registry are
// resolved through the Fallback policy instead of failing.
func Resolve(id FieldID) Definition {
	if d, ok := byID[id]; ok {
		return d.clone()
	}
	return Fallback(id)
}

// Fallback renders an unknown field as free text labelled with its raw id.
func Fallback(id FieldID) Definition {
	return Definition{
		ID:       id,
		Label:    string(id),
		Kind:     KindText,
		Fallback: true,
	}
}

// Known reports whether id is part of the registry.
func Known(id FieldID) bool {
	_, ok := byID[id]
	return ok
}

// AllFieldIDs returns every registered id in authoring order.
func AllFieldIDs() []FieldID {
	ids := make([]FieldID, 0, len(registry))
	for _, d := range registry {
		ids = append(ids, d.ID)
	}
	return ids
}

// All returns every registered definition in authoring order.
func All() []Definition {
	defs := make([]Definition, 0, len(registry))
	for _, d := range registry {
		defs = append(defs, d.clone())
	}
	return defs
}

func (d Definition) clone() Definition {
	if d.Options != nil {
		d.Options = append([]Option(nil), d.Options...)
	}
	return d
}

// Choices lists the closed set of values the control offers: the catalog
// options for a choice field and 1..20 for a guest count.
func (d Definition) Choices() []Option {
	switch d.Kind {
	case KindChoice:
		return d.Options
	case KindGuestCount:
		opts := make([]Option, 0, MaxGuests-MinGuests+1)
		for i := MinGuests; i <= MaxGuests; i++ {
			v := strconv.Itoa(i)
			opts = append(opts, Option{Value: v, Label: v})
		}
		return opts
	default:
		return nil
	}
}

// Control names the input widget used to present the field.
func (d Definition) Control() string {
	switch d.Kind {
	case KindEmail:
		return "email"
	case KindGuestCount:
		return "select"
	case KindChoice:
		if len(d.Options) <= 2 {
			return "radio"
		}
		return "select"
	case KindMultiline:
		return "textarea"
	default:
		return "text"
	}
}

// Check validates a single submitted value against the field's kind.
func (d Definition) Check(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s is required", d.Label)
	}

	switch d.Kind {
	case KindEmail:
		if err := validate.Var(value, "email"); err != nil {
			return fmt.Errorf("%s must be a valid email address", d.Label)
		}
	case KindGuestCount:
		n, err := strconv.Atoi(value)
		if err != nil || n < MinGuests || n > MaxGuests {
			return fmt.Errorf("%s must be between %d and %d", d.Label, MinGuests, MaxGuests)
		}
	case KindChoice:
		for _, o := range d.Options {
			if o.Value == value {
				return nil
			}
		}
		return fmt.Errorf("%s must be one of the listed options", d.Label)
	}
	return nil
}
