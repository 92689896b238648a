package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rsvp/internal/models"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "rsvp-api",
		})
	}
}

// Ready reports whether the store answers a ping within two seconds.
func Ready(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse("store unavailable"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
