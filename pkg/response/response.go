package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/userhub/userhub/pkg/apperr"
)

// ErrorBody is the wire shape of every error response. Errors is present only
// for field-validation failures.
type ErrorBody struct {
	Message   string              `json:"message"`
	Code      string              `json:"code"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// JSON writes a success payload as-is.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// FromError is the single translator from application errors to HTTP
// responses. Anything that is not an *apperr.Error becomes a generic 500.
func FromError(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal()
	}
	c.JSON(ae.Status, ErrorBody{
		Message:   ae.Message,
		Code:      ae.Code,
		Errors:    ae.Fields,
		Timestamp: time.Now().UTC(),
	})
}

// AbortUnauthorized ends the request from middleware with a uniform 401.
func AbortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{
		Message:   message,
		Code:      apperr.CodeUnauthorized,
		Timestamp: time.Now().UTC(),
	})
}
