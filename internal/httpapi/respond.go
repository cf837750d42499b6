package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usmm07/foodcourt/internal/schema"
	"github.com/usmm07/foodcourt/internal/storage"
)

// respondError maps the error taxonomy onto HTTP statuses. Unknown errors
// become opaque 500s; the detail goes to the log, not the client.
func (s *Server) respondError(c *gin.Context, err error) {
	var ve *schema.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, storage.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	case errors.Is(err, storage.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
	default:
		s.log.WithField("request_id", c.GetString(requestIDKey)).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
