package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/rsvp/internal/container"
	"github.com/joshua-takyi/rsvp/internal/handlers"
	"github.com/joshua-takyi/rsvp/internal/helpers"
	"github.com/joshua-takyi/rsvp/internal/middleware"
	"github.com/joshua-takyi/rsvp/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.SetHTMLTemplate(handlers.Templates())

	limit := middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerMinute: container.Config.RateLimitPerMinute,
		Burst:             container.Config.RateLimitBurst,
	}, container.Logger)
	organizer := middleware.OrganizerAuth(container.OrganizerKeyfunc, container.Logger)

	// attendee pages
	r.GET("/", handlers.EventIndex(container.EventService))
	r.GET("/events/:id/rsvp", handlers.ShowForm(container.EventService))
	r.POST("/events/:id/rsvp", limit, handlers.SubmitForm(container.EventService, container.SubmissionService))

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", handlers.Health())
		v1.GET("/readyz", handlers.Ready(container.Store))
		v1.GET("/fields", handlers.ListFields())

		// public routes
		v1.GET("/events", handlers.ListEvents(container.EventService))
		v1.GET("/events/:id", handlers.GetEvent(container.EventService))
		v1.POST("/submissions", limit, handlers.SubmitRSVP(container.SubmissionService))
		v1.POST("/rsvp", limit, handlers.CreateAttendee(container.AttendeeService))
	}

	protected := v1.Group("/")
	protected.Use(organizer)
	{
		protected.GET("/organizer/me", func(c *gin.Context) {
			value, exists := c.Get(middleware.OrganizerKey)
			if !exists {
				c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"authenticated": false}, "organizer routes are open"))
				return
			}
			claims, ok := value.(*helpers.OrganizerClaims)
			if !ok {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid organizer claims"))
				return
			}
			c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
				"authenticated": true,
				"subject":       claims.Subject,
				"email":         claims.Email,
				"role":          claims.GetSafeRole(),
				"is_admin":      claims.IsAdmin(),
			}, ""))
		})
	}

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("", handlers.CreateEvent(container.EventService))
		eventRoutes.PUT("/:id", handlers.UpdateEvent(container.EventService))
		eventRoutes.DELETE("/:id", handlers.DeleteEvent(container.EventService))
		eventRoutes.GET("/:id/submissions", handlers.ListSubmissions(container.SubmissionService))
	}

	submissionRoutes := protected.Group("/submissions")
	{
		submissionRoutes.GET("", handlers.ListSubmissions(container.SubmissionService))
		submissionRoutes.GET("/:id", handlers.GetSubmission(container.SubmissionService))
		submissionRoutes.DELETE("/:id", handlers.DeleteSubmission(container.SubmissionService))
	}

	rsvpRoutes := protected.Group("/rsvp")
	{
		rsvpRoutes.GET("", handlers.ListAttendees(container.AttendeeService))
		rsvpRoutes.GET("/stats/summary", handlers.AttendeeSummary(container.AttendeeService))
		rsvpRoutes.GET("/:id", handlers.GetAttendee(container.AttendeeService))
		rsvpRoutes.PUT("/:id", handlers.UpdateAttendee(container.AttendeeService))
		rsvpRoutes.PATCH("/:id", handlers.UpdateAttendeeStatus(container.AttendeeService))
		rsvpRoutes.DELETE("/:id", handlers.DeleteAttendee(container.AttendeeService))
	}

	return r
}
