package handlers

import (
	"embed"
	"errors"
	"html/template"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rsvp/internal/form"
	"github.com/joshua-takyi/rsvp/internal/helpers"
	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/joshua-takyi/rsvp/internal/services"
)

// SubmitFallbackMessage is shown when a rejection carries no usable text.
const SubmitFallbackMessage = "Error submitting RSVP"

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the pages served by the form handlers. The router
// installs them with SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"formatDate": formatDate,
	}).ParseFS(templateFS, "templates/*.html"))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon 2 Jan 2006, 15:04 MST")
}

type formPage struct {
	Event       *models.Event
	Form        *form.Form
	ServerError string
}

type successPage struct {
	Event          *models.Event
	RedirectMillis int64
	RefreshSeconds int
}

type messagePage struct {
	Title   string
	Message string
}

func EventIndex(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.ListEvents(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.HTML(http.StatusInternalServerError, "message.html", messagePage{
				Title:   "Something went wrong",
				Message: "Events could not be loaded. Please try again.",
			})
			return
		}
		c.HTML(http.StatusOK, "index.html", gin.H{"Events": events})
	}
}

// loadEvent renders an error page and returns nil when the event cannot be
// shown.
func loadEvent(c *gin.Context, es *services.EventService) *models.Event {
	event, err := es.GetEvent(c.Request.Context(), helpers.StringTrim(c.Param("id")))
	if err == nil {
		return event
	}

	status := helpers.StatusFor(err)
	switch status {
	case http.StatusNotFound, http.StatusBadRequest:
		c.HTML(http.StatusNotFound, "message.html", messagePage{
			Title:   "Event not found",
			Message: "This event does not exist or has been removed.",
		})
	default:
		_ = c.Error(err)
		c.HTML(status, "message.html", messagePage{
			Title:   "Something went wrong",
			Message: "The event could not be loaded. Please try again.",
		})
	}
	return nil
}

func ShowForm(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event := loadEvent(c, es)
		if event == nil {
			return
		}
		c.HTML(http.StatusOK, "form.html", formPage{Event: event, Form: form.FromEvent(event)})
	}
}

// SubmitForm validates the posted answers with the same rules the form
// shows. Nothing is stored unless every field passes.
func SubmitForm(es *services.EventService, ss *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event := loadEvent(c, es)
		if event == nil {
			return
		}

		f := form.FromEvent(event)
		f.Bind(c.PostForm)

		if err := f.Validate(); err != nil {
			c.HTML(http.StatusUnprocessableEntity, "form.html", formPage{Event: event, Form: f})
			return
		}

		payload := f.Payload()
		_, err := ss.Submit(c.Request.Context(), services.SubmissionInput{
			EventID:   payload.EventID,
			Responses: payload.Responses,
		})
		if err != nil {
			status := helpers.StatusFor(err)
			msg := SubmitFallbackMessage
			var vErr *models.ValidationError
			if errors.As(err, &vErr) && vErr.Message != "" {
				msg = vErr.Message
			}
			if status == http.StatusInternalServerError {
				_ = c.Error(err)
			}
			c.HTML(status, "form.html", formPage{Event: event, Form: f, ServerError: msg})
			return
		}

		c.HTML(http.StatusOK, "success.html", successPage{
			Event:          event,
			RedirectMillis: form.RedirectDelay.Milliseconds(),
			RefreshSeconds: int(math.Ceil(form.RedirectDelay.Seconds())),
		})
	}
}
