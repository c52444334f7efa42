package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/services"
	"github.com/yukikurage/taskboard-api/internal/testutil"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	tokens      *services.TokenService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db := testutil.NewDB(t)
	tokens := services.NewTokenService(testutil.Secret("test-secret"), time.Hour)
	authService := services.NewAuthService(repository.NewUserRepository(db), tokens)

	return authTestEnv{
		db:          db,
		handler:     NewAuthHandler(authService),
		authService: authService,
		tokens:      tokens,
	}
}

func (env authTestEnv) router() *gin.Engine {
	r := gin.New()
	r.POST("/auth/signup", env.handler.Signup)
	r.POST("/auth/login", env.handler.Login)
	return r
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	w := performRequest(r, http.MethodPost, "/auth/signup", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response tokenResponse
	decode(t, w, &response)
	assert.Equal(t, "User registered successfully", response.Message)

	identity, err := env.tokens.Verify(response.Token)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, env.db.First(&user, "email = ?", "alice@example.com").Error)
	assert.Equal(t, user.ID, identity.UserID)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestAuthHandler_SignupDuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	body := map[string]string{"name": "Alice", "email": "alice@example.com", "password": "supersecret"}
	require.Equal(t, http.StatusCreated, performRequest(r, http.MethodPost, "/auth/signup", body).Code)

	w := performRequest(r, http.MethodPost, "/auth/signup", body)
	requireAPIError(t, w, http.StatusConflict, apierrors.ErrCodeDuplicateIdentity)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAuthHandler_SignupInvalidBody(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	tests := []struct {
		name    string
		body    interface{}
		details interface{}
	}{
		{
			name:    "missing name",
			body:    map[string]string{"email": "a@example.com", "password": "p"},
			details: map[string]interface{}{"Name": "required"},
		},
		{
			name:    "bad email and missing password",
			body:    map[string]string{"name": "A", "email": "nope"},
			details: map[string]interface{}{"Email": "email", "Password": "required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, http.MethodPost, "/auth/signup", tt.body)
			apiErr := requireAPIError(t, w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
			assert.Equal(t, tt.details, apiErr.Details)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/auth/signup", "{not json")
		apiErr := requireAPIError(t, w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
		details, ok := apiErr.Details.(string)
		require.True(t, ok)
		assert.NotEmpty(t, details)
	})

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	_, err := env.authService.Signup(services.SignupInput{
		Name:     "Existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/auth/login", map[string]string{
			"email":    "existing@example.com",
			"password": "supersecret",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var response tokenResponse
		decode(t, w, &response)
		assert.Equal(t, "User login successful.", response.Message)
		_, err := env.tokens.Verify(response.Token)
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/auth/login", map[string]string{
			"email":    "existing@example.com",
			"password": "wrong",
		})
		requireAPIError(t, w, http.StatusUnauthorized, apierrors.ErrCodeInvalidCredentials)
		assert.NotContains(t, w.Body.String(), "token")
	})

	t.Run("unknown email", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "supersecret",
		})
		requireAPIError(t, w, http.StatusNotFound, apierrors.ErrCodeNotFound)
	})
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	session, err := env.authService.Signup(services.SignupInput{
		Name:     "Current",
		Email:    "current@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/auth/me", asUser(session.User.ID), env.handler.GetCurrentUser)

	w := performRequest(r, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User map[string]interface{} `json:"user"`
	}
	decode(t, w, &response)
	assert.Equal(t, "Current", response.User["name"])
	assert.Equal(t, "current@example.com", response.User["email"])
	assert.NotContains(t, response.User, "password")
	assert.NotContains(t, response.User, "passwordHash")

	r = gin.New()
	r.GET("/auth/me", asUser("deleted-user"), env.handler.GetCurrentUser)
	w = performRequest(r, http.MethodGet, "/auth/me", nil)
	requireAPIError(t, w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func TestAuthHandler_ListUsers(t *testing.T) {
	env := setupAuthTestEnv(t)
	alice := testutil.CreateUser(t, env.db, "Alice", "alice@example.com")
	testutil.CreateUser(t, env.db, "Bob", "bob@example.com")

	r := gin.New()
	r.GET("/users", asUser(alice.ID), env.handler.ListUsers)

	w := performRequest(r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	var response struct {
		Users []map[string]interface{} `json:"users"`
	}
	decode(t, w, &response)
	require.Len(t, response.Users, 2)
	assert.Equal(t, "Alice", response.Users[0]["name"])
}
