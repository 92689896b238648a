package helpers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/rsvp/internal/models"
)

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

// NewJWKSKeyfunc fetches the organizer JWKS and keeps it refreshed until
// ctx is done.
func NewJWKSKeyfunc(ctx context.Context, jwksURL string, logger *slog.Logger) (jwt.Keyfunc, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:             ctx,
		RefreshInterval: time.Hour,
		RefreshTimeout:  10 * time.Second,
		RefreshErrorHandler: func(err error) {
			logger.Error("JWKS refresh failed", "url", jwksURL, "error", err)
		},
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}
	return jwks.Keyfunc, nil
}

func ValidateToken(tokenStr string, kf jwt.Keyfunc) (*OrganizerClaims, error) {
	if tokenStr == "" {
		return nil, errors.New("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &OrganizerClaims{}, kf, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*OrganizerClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case models.IsValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text a client may see for err. Store failures are
// flattened to "failed to <action>".
func PublicMessage(err error, action string) string {
	if StatusFor(err) == http.StatusInternalServerError {
		return "failed to " + action
	}
	return err.Error()
}

// RespondError writes the error envelope for err. Unexpected errors are
// attached to the context so ErrorHandler logs them with the request id.
func RespondError(c *gin.Context, err error, action string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, models.ErrorResponse(PublicMessage(err, action)))
}
