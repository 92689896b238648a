package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rsvp/internal/helpers"
	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/joshua-takyi/rsvp/internal/services"
)

func SubmitRSVP(ss *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.SubmissionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		sub, err := ss.Submit(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err, "submit RSVP")
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(sub, "RSVP submitted!"))
	}
}

// ListSubmissions serves both /submissions?eventId= and
// /events/:id/submissions.
func ListSubmissions(ss *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID := helpers.StringTrim(c.Param("id"))
		if eventID == "" {
			eventID = helpers.StringTrim(c.Query("eventId"))
		}

		var (
			subs []*models.Submission
			err  error
		)
		if eventID == "" {
			subs, err = ss.ListAll(c.Request.Context())
		} else {
			subs, err = ss.ListByEvent(c.Request.Context(), eventID)
		}
		if err != nil {
			helpers.RespondError(c, err, "list RSVPs")
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(subs, 0, len(subs)))
	}
}

func GetSubmission(ss *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		sub, err := ss.GetSubmission(c.Request.Context(), id)
		if err != nil {
			helpers.RespondError(c, err, "get RSVP")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(sub, ""))
	}
}

func DeleteSubmission(ss *services.SubmissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		if err := ss.DeleteSubmission(c.Request.Context(), id); err != nil {
			helpers.RespondError(c, err, "delete RSVP")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "RSVP deleted successfully"))
	}
}
