package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joshua-takyi/rsvp/internal/helpers"
	"github.com/joshua-takyi/rsvp/internal/models"
)

const (
	RequestIDKey = "request_id"
	OrganizerKey = "organizer"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get(RequestIDKey)

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler logs errors handlers attached with c.Error. It only writes a
// response when the handler did not.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		requestID, _ := c.Get(RequestIDKey)

		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success":    false,
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	token, _ := c.Cookie("access_token")
	return token
}

// OrganizerAuth guards organizer routes. The token is read from the
// Authorization header or the access_token cookie. A nil keyfunc leaves the
// routes open.
func OrganizerAuth(kf jwt.Keyfunc, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if kf == nil {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		claims, err := helpers.ValidateToken(token, kf)
		if err != nil {
			requestID, _ := c.Get(RequestIDKey)
			logger.Warn("Organizer token rejected", "request_id", requestID, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		c.Set(OrganizerKey, claims)
		c.Next()
	}
}
