package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
)

// respondInternalError logs the underlying failure and hides it from the client.
func respondInternalError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	apierrors.InternalError(c)
}

// respondBindError rejects a body that failed to bind. Validation failures
// are reported per field as the rule that failed; anything else, such as
// malformed JSON, as the decoder's message.
func respondBindError(c *gin.Context, err error) {
	apierrors.BadRequestWithDetails(c, "Invalid request body", bindingDetails(err))
}

func bindingDetails(err error) interface{} {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return fields
	}
	return err.Error()
}
