package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rsvp/internal/helpers"
	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/joshua-takyi/rsvp/internal/services"
)

func CreateAttendee(as *services.AttendeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.AttendeeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		a, err := as.CreateAttendee(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err, "create RSVP")
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(a, "RSVP created successfully"))
	}
}

func ListAttendees(as *services.AttendeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
				return
			}
			limit = n
		}

		attendees, err := as.ListAttendees(c.Request.Context(), c.Query("event"), limit)
		if err != nil {
			helpers.RespondError(c, err, "list RSVPs")
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(attendees, limit, len(attendees)))
	}
}

func GetAttendee(as *services.AttendeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		a, err := as.GetAttendee(c.Request.Context(), id)
		if err != nil {
			helpers.RespondError(c, err, "get RSVP")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(a, ""))
	}
}

func UpdateAttendee(as *services.AttendeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		var in services.AttendeeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		a, err := as.UpdateAttendee(c.Request.Context(), id, in)
		if err != nil {
			helpers.RespondError(c, err, "update RSVP")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(a, "RSVP updated successfully"))
	}
}

func UpdateAttendeeStatus(as *services.AttendeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		var in services.StatusInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		a, err := as.UpdateStatus(c.Request.Context(), id, in)
		if err != nil {
			helpers.RespondError(c, err, "update RSVP status")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(a, "RSVP status updated"))
	}
}

func DeleteAttendee(as *services.AttendeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		if err := as.DeleteAttendee(c.Request.Context(), id); err != nil {
			helpers.RespondError(c, err, "delete RSVP")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "RSVP deleted successfully"))
	}
}

func AttendeeSummary(as *services.AttendeeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := as.Summary(c.Request.Context())
		if err != nil {
			helpers.RespondError(c, err, "get RSVP stats")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(s.Response(), ""))
	}
}
