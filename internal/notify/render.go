package notify

import (
	"bytes"
	"embed"
	"html/template"
	"sort"
	"strings"
	texttemplate "text/template"

	"github.com/joshua-takyi/rsvp/internal/catalog"
)

//go:embed templates/*
var templateFS embed.FS

type answer struct {
	Label string
	Value string
}

type confirmationData struct {
	Confirmation
	Answers []answer
	When    string
}

func newConfirmationData(c Confirmation) confirmationData {
	keys := make([]string, 0, len(c.Responses))
	for k := range c.Responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	answers := make([]answer, 0, len(keys))
	for _, k := range keys {
		answers = append(answers, answer{
			Label: catalog.Resolve(catalog.FieldID(k)).Label,
			Value: c.Responses[k],
		})
	}

	data := confirmationData{Confirmation: c, Answers: answers}
	if !c.EventDate.IsZero() {
		data.When = c.EventDate.Format("Monday, 2 January 2006 15:04 MST")
	}
	return data
}

func render(c Confirmation) (subject, htmlBody, textBody string, err error) {
	data := newConfirmationData(c)

	subject, err = renderFile("confirmation_subject.txt", data, false)
	if err != nil {
		return "", "", "", err
	}
	htmlBody, err = renderFile("confirmation.html", data, true)
	if err != nil {
		return "", "", "", err
	}
	textBody, err = renderFile("confirmation.txt", data, false)
	if err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func renderFile(name string, data interface{}, html bool) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if html {
		t, err := template.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	} else {
		t, err := texttemplate.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		if err := t.Execute(&buf, data); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
