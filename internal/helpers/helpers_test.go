package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("get: %w", models.NotFound("RSVP"))))
	require.Equal(t, http.StatusBadRequest, StatusFor(models.NewValidationError("name", "name is required")))
	require.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("connection reset")))
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		status   int
		body     string
		attached int
	}{
		{"not found", models.NotFound("RSVP"), http.StatusNotFound, `{"success":false,"error":"RSVP not found"}`, 0},
		{"validation", models.NewValidationError("eventId", "invalid eventId"), http.StatusBadRequest, `{"success":false,"error":"invalid eventId"}`, 0},
		{"store", errors.New("socket closed"), http.StatusInternalServerError, `{"success":false,"error":"failed to submit RSVP"}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.err, "submit RSVP")

			require.Equal(t, tt.status, w.Code)
			require.JSONEq(t, tt.body, w.Body.String())
			require.Len(t, c.Errors, tt.attached)
		})
	}
}

func TestValidateTokenRejectsEmpty(t *testing.T) {
	_, err := ValidateToken("", nil)
	require.Error(t, err)
}
