package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rsvp/internal/catalog"
	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/joshua-takyi/rsvp/internal/services"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Total   int             `json:"total"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *models.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := models.NewMemoryRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	es := services.NewEventService(store)
	ss := services.NewSubmissionService(store, store, nil, logger)
	as := services.NewAttendeeService(store)

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.GET("/", EventIndex(es))
	r.GET("/events/:id/rsvp", ShowForm(es))
	r.POST("/events/:id/rsvp", SubmitForm(es, ss))

	api := r.Group("/api/v1")
	api.GET("/health", Health())
	api.GET("/readyz", Ready(store))
	api.GET("/fields", ListFields())
	api.GET("/events", ListEvents(es))
	api.POST("/events", CreateEvent(es))
	api.GET("/events/:id", GetEvent(es))
	api.PUT("/events/:id", UpdateEvent(es))
	api.DELETE("/events/:id", DeleteEvent(es))
	api.GET("/events/:id/submissions", ListSubmissions(ss))
	api.POST("/submissions", SubmitRSVP(ss))
	api.GET("/submissions", ListSubmissions(ss))
	api.GET("/submissions/:id", GetSubmission(ss))
	api.DELETE("/submissions/:id", DeleteSubmission(ss))
	api.POST("/rsvp", CreateAttendee(as))
	api.GET("/rsvp", ListAttendees(as))
	api.GET("/rsvp/stats/summary", AttendeeSummary(as))
	api.GET("/rsvp/:id", GetAttendee(as))
	api.PUT("/rsvp/:id", UpdateAttendee(as))
	api.PATCH("/rsvp/:id", UpdateAttendeeStatus(as))
	api.DELETE("/rsvp/:id", DeleteAttendee(as))

	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func seedEvent(t *testing.T, store *models.MemoryRepo, fields ...catalog.FieldID) *models.Event {
	t.Helper()
	e, err := store.CreateEvent(context.Background(), &models.Event{
		Name:   "Garden Party",
		Date:   time.Date(2026, 11, 7, 17, 0, 0, 0, time.UTC),
		Fields: fields,
	})
	require.NoError(t, err)
	return e
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/readyz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ready"}`, w.Body.String())
}

func TestListFields(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/fields", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, len(catalog.AllFieldIDs()), env.Total)

	var defs []catalog.Definition
	require.NoError(t, json.Unmarshal(env.Data, &defs))
	require.Equal(t, catalog.FieldName, defs[0].ID)
	require.Equal(t, "Full Name", defs[0].Label)
}

func TestEventLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/events", map[string]interface{}{
		"name":   "Launch Night",
		"date":   "2026-11-01T18:00",
		"fields": []string{"name", "email", "willJoin"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.True(t, env.Success)

	var created models.Event
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, []catalog.FieldID{catalog.FieldName, catalog.FieldEmail, catalog.FieldWillJoin}, created.Fields)
	require.Equal(t, time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC), created.Date)
	path := "/api/v1/events/" + created.ID.Hex()

	w, env = doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, r, http.MethodPut, path, map[string]interface{}{
		"name":   "Launch Night (moved)",
		"date":   "2026-11-02",
		"fields": []string{"name"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Event
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.Equal(t, "Launch Night (moved)", updated.Name)
	require.Equal(t, []catalog.FieldID{catalog.FieldName}, updated.Fields)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, env.Total)

	w, _ = doJSON(t, r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "event not found", env.Error)
}

func TestCreateEventValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		body interface{}
		want string
	}{
		{"missing name", map[string]interface{}{"date": "2026-11-01"}, "name is required"},
		{"missing date", map[string]interface{}{"name": "x"}, "date is required"},
		{"unknown field", map[string]interface{}{"name": "x", "date": "2026-11-01", "fields": []string{"shoeSize"}}, `unknown field "shoeSize"`},
		{"malformed", `{"name":`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/api/v1/events", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.False(t, env.Success)
			require.Equal(t, tt.want, env.Error)
		})
	}
}

func TestGetEventErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/v1/events/not-an-id", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid id", env.Error)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/events/"+primitive.NewObjectID().Hex(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "event not found", env.Error)
}

func TestSubmissionEndpoints(t *testing.T) {
	r, store := newTestRouter(t)
	event := seedEvent(t, store, catalog.FieldName, catalog.FieldWillJoin)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/submissions", map[string]interface{}{
		"eventId":   event.ID.Hex(),
		"responses": map[string]string{"name": "Ada", "willJoin": "yes"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, "RSVP submitted!", env.Message)

	var sub models.Submission
	require.NoError(t, json.Unmarshal(env.Data, &sub))
	require.Equal(t, "Ada", sub.Responses["name"])

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/events/"+event.ID.Hex()+"/submissions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, env.Total)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/submissions?eventId="+event.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, env.Total)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/submissions?eventId=bogus", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid eventId", env.Error)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/submissions/"+sub.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/submissions/"+sub.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, r, http.MethodDelete, "/api/v1/submissions/"+sub.ID.Hex(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "submission not found", env.Error)
}

func TestSubmitRSVPValidation(t *testing.T) {
	r, store := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/submissions", map[string]interface{}{
		"eventId": primitive.NewObjectID().Hex(),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "responses is required", env.Error)

	w, env = doJSON(t, r, http.MethodPost, "/api/v1/submissions", map[string]interface{}{
		"eventId":   "123",
		"responses": map[string]string{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid eventId", env.Error)

	subs, err := store.ListSubmissions(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestAttendeeEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/rsvp", map[string]interface{}{
		"name":  "Grace",
		"email": "grace@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var a models.Attendee
	require.NoError(t, json.Unmarshal(env.Data, &a))
	require.Equal(t, models.StatusConfirmed, a.Status)
	require.Equal(t, 1, a.NumberOfGuests)
	path := "/api/v1/rsvp/" + a.ID.Hex()

	w, env = doJSON(t, r, http.MethodPost, "/api/v1/rsvp", map[string]interface{}{
		"name":  "Bad",
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, env.Success)

	w, env = doJSON(t, r, http.MethodPatch, path, map[string]string{"status": "pending"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &a))
	require.Equal(t, models.StatusPending, a.Status)

	w, env = doJSON(t, r, http.MethodPatch, path, map[string]string{"status": "maybe"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, r, http.MethodPut, path, map[string]interface{}{
		"name":           "Grace Hopper",
		"email":          "grace@example.com",
		"numberOfGuests": 3,
		"status":         "confirmed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/rsvp/stats/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true,"data":{"totalRSVPs":1,"confirmedRSVPs":1,"pendingRSVPs":0,"cancelledRSVPs":0,"totalGuests":3}}`, w.Body.String())

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/rsvp?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, env.Total)

	w, env = doJSON(t, r, http.MethodGet, "/api/v1/rsvp?limit=lots", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid limit parameter", env.Error)

	w, _ = doJSON(t, r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "RSVP not found", env.Error)
}

func postForm(r http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFormPages(t *testing.T) {
	r, store := newTestRouter(t)
	event := seedEvent(t, store,
		catalog.FieldName, catalog.FieldEmail, catalog.FieldNumberOfGuests, catalog.FieldWillJoin)
	path := "/events/" + event.ID.Hex() + "/rsvp"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Garden Party")
	require.Contains(t, w.Body.String(), `href="`+path+`"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `name="email" type="email"`)
	require.Contains(t, body, `<select id="numberOfGuests" name="numberOfGuests">`)
	require.Contains(t, body, `<option value="20"`)
	require.Contains(t, body, `type="radio" name="willJoin" value="yes"`)
}

func TestSubmitFormRejectsMissingAnswer(t *testing.T) {
	r, store := newTestRouter(t)
	event := seedEvent(t, store, catalog.FieldName, catalog.FieldEmail, catalog.FieldWillJoin)

	w := postForm(r, "/events/"+event.ID.Hex()+"/rsvp", url.Values{
		"name":  {"Ada"},
		"email": {"ada@example.com"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "Will you join? is required")
	require.Contains(t, w.Body.String(), `value="ada@example.com"`)

	subs, err := store.ListSubmissions(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestSubmitFormSuccess(t *testing.T) {
	r, store := newTestRouter(t)
	event := seedEvent(t, store, catalog.FieldName, catalog.FieldNumberOfGuests, catalog.FieldWillJoin)

	w := postForm(r, "/events/"+event.ID.Hex()+"/rsvp", url.Values{
		"name":           {"  Ada  "},
		"numberOfGuests": {"2"},
		"willJoin":       {"yes"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), "RSVP submitted!")
	require.Contains(t, w.Body.String(), "1500")

	subs, err := store.ListSubmissions(context.Background(), &event.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, map[string]string{"name": "Ada", "numberOfGuests": "2", "willJoin": "yes"}, subs[0].Responses)
}

func TestFormUnknownEvent(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, id := range []string{primitive.NewObjectID().Hex(), "nope"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/"+id+"/rsvp", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Body.String(), "Event not found")
	}
}
