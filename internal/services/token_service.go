package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/yukikurage/taskboard-api/internal/constants"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrFailedToIssueToken = errors.New("failed to issue token")
)

// SecretProvider supplies the symmetric key tokens are signed with. The key
// stays server-side; nothing in a token reveals it.
type SecretProvider interface {
	SigningKey() ([]byte, error)
}

// Identity is the caller proven by a verified token.
type Identity struct {
	UserID string
	Role   string
}

// Claims is the token payload.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secrets SecretProvider
	ttl     time.Duration
	now     func() time.Time
}

// NewTokenService creates a TokenService whose tokens are valid for ttl.
func NewTokenService(secrets SecretProvider, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = constants.DefaultTokenTTL
	}
	return &TokenService{
		secrets: secrets,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue signs a token for userID carrying the user role.
func (s *TokenService) Issue(userID string) (string, error) {
	key, err := s.secrets.SigningKey()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToIssueToken, err)
	}

	now := s.now()
	claims := Claims{
		UserID: userID,
		Role:   constants.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToIssueToken, err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns its identity.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	key, err := s.secrets.SigningKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID: claims.UserID,
		Role:   claims.Role,
	}, nil
}
