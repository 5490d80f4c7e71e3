package controllers

import (
	"strconv"

	"blogapi/apperrors"

	"github.com/gin-gonic/gin"
)

// EventPublisher receives post lifecycle events for the live feed.
type EventPublisher interface {
	Publish(messageType string, data interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

// fail hands err to middleware.ErrorHandler and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a record, so it is reported as not found.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.ErrNotFound
	}
	return uint(id), nil
}

// requireFields adds a "required" message for every named field that the
// payload left out. Used for PUT, where the update struct is otherwise
// optional field by field.
func requireFields(v *apperrors.ValidationError, fields map[string]bool) {
	for name, present := range fields {
		if !present {
			if _, reported := v.Fields[name]; !reported {
				v.Add(name, apperrors.MsgRequired)
			}
		}
	}
}

// bindError turns a bind result into a *ValidationError to keep collecting
// into, or returns the non-validation error to fail with.
func bindError(err error) (*apperrors.ValidationError, error) {
	if err == nil {
		return apperrors.NewValidationError(), nil
	}
	if v, ok := apperrors.AsValidation(err); ok {
		return v, nil
	}
	return nil, err
}
