package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rsvp/internal/catalog"
	"github.com/joshua-takyi/rsvp/internal/helpers"
	"github.com/joshua-takyi/rsvp/internal/models"
	"github.com/joshua-takyi/rsvp/internal/services"
)

func ListFields() gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := catalog.All()
		c.JSON(http.StatusOK, models.ListResponse(fields, 0, len(fields)))
	}
}

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.EventInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		event, err := es.CreateEvent(c.Request.Context(), in)
		if err != nil {
			helpers.RespondError(c, err, "create event")
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(event, "Event created successfully"))
	}
}

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.ListEvents(c.Request.Context())
		if err != nil {
			helpers.RespondError(c, err, "list events")
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(events, 0, len(events)))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		event, err := es.GetEvent(c.Request.Context(), id)
		if err != nil {
			helpers.RespondError(c, err, "get event")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func UpdateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		var in services.EventInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		event, err := es.UpdateEvent(c.Request.Context(), id, in)
		if err != nil {
			helpers.RespondError(c, err, "update event")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(event, "Event updated successfully"))
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))

		if err := es.DeleteEvent(c.Request.Context(), id); err != nil {
			helpers.RespondError(c, err, "delete event")
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted successfully"))
	}
}
