package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/constants"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/services"
)

var ErrMissingToken = errors.New("token not provided")

// TokenVerifier checks a bearer token and returns the identity it proves.
type TokenVerifier interface {
	Verify(token string) (*services.Identity, error)
}

// Authenticate resolves an Authorization header value to an identity. Both
// "Bearer <token>" and a bare "<token>" are accepted.
func Authenticate(header string, verifier TokenVerifier) (*services.Identity, error) {
	parts := strings.Fields(header)
	switch {
	case len(parts) == 0:
		return nil, ErrMissingToken
	case len(parts) == 1:
		return verifier.Verify(parts[0])
	case len(parts) == 2 && strings.EqualFold(parts[0], "Bearer"):
		return verifier.Verify(parts[1])
	default:
		return nil, services.ErrInvalidToken
	}
}

// RequireAuth rejects requests without a valid token and stores the caller's
// identity in the context for the handlers behind it.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := Authenticate(c.GetHeader("Authorization"), verifier)
		if err != nil {
			if errors.Is(err, ErrMissingToken) {
				apierrors.MissingToken(c)
			} else {
				apierrors.InvalidToken(c)
			}
			return
		}

		c.Set(constants.ContextKeyUserID, identity.UserID)
		c.Set(constants.ContextKeyUserRole, identity.Role)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
