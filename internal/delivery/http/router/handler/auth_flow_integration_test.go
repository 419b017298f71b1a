package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"healthvault/config"
	appmiddleware "healthvault/internal/delivery/http/middleware"
	"healthvault/internal/delivery/http/router"
	"healthvault/internal/delivery/http/router/handler"
	"healthvault/internal/delivery/http/validator"
	"healthvault/internal/domain/entity"
	domainerrors "healthvault/internal/domain/errors"
	"healthvault/internal/domain/repository"
	"healthvault/internal/infra/auth"
	"healthvault/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryUserRepository is an in-memory UserRepository backing the handler
// flow tests, keyed by email with the same uniqueness rule as the database.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*entity.User)}
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.Email] = &copied

	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	r.users[user.Email] = &copied

	return nil
}

// passthroughTxManager runs the function without a real transaction.
type passthroughTxManager struct {
	repo repository.UserRepository
}

func (m *passthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *passthroughTxManager) UserRepo() repository.UserRepository {
	return m.repo
}

// newTestApp assembles a full echo application over in-memory storage.
func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "integration-test-secret"
	cfg.Auth = &config.AuthConfig{AccessTokenTTLMinutes: 30}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := newMemoryUserRepository()
	txManager := &passthroughTxManager{repo: userRepo}
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	authUsecase := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenSvc,
		Logger:       logger,
	})
	identityUsecase := impl.NewIdentityService(userRepo, tokenSvc, logger)
	profileUsecase := impl.NewProfileService(userRepo, logger)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = appmiddleware.NewErrorMiddleware(logger).HandleHTTPError

	routes := router.NewRouter(router.RouterParams{
		AuthHandler:    handler.NewAuthHandler(authUsecase, logger),
		ProfileHandler: handler.NewProfileHandler(profileUsecase, logger),
		AuthMiddleware: appmiddleware.NewAuthMiddleware(identityUsecase),
	})
	routes.RegisterRoutes(e)

	return e
}

func doJSON(e *echo.Echo, method, target, body, bearer string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func doForm(e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthFlow_RegisterLoginMe(t *testing.T) {
	e := newTestApp(t)

	// Register via query parameters.
	rec := doJSON(e, http.MethodPost, "/register?email=alice@example.com&password=pw123&full_name=Alice+Example", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var registered struct {
		Message string `json:"message"`
		UserID  string `json:"user_id"`
		Email   string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.Equal(t, "User registered successfully", registered.Message)
	assert.Equal(t, "alice@example.com", registered.Email)
	assert.NotEmpty(t, registered.UserID)

	// Login with the correct password.
	rec = doForm(e, "/token", url.Values{
		"username": {"alice@example.com"},
		"password": {"pw123"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
		User        struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			FullName string `json:"full_name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, 1800, token.ExpiresIn)
	assert.Equal(t, "alice@example.com", token.User.Email)
	assert.Equal(t, "Alice Example", token.User.FullName)

	// The full profile projection for a fresh account.
	rec = doJSON(e, http.MethodGet, "/me", "", token.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var me map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "alice@example.com", me["email"])
	assert.Equal(t, false, me["is_verified"])
	assert.NotNil(t, me["last_login"])
}

func TestAuthFlow_DuplicateRegistration(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/register", `{"email":"alice@example.com","password":"pw123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/register", `{"email":"alice@example.com","password":"other"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/register", `{"email":"alice@example.com","password":"pw123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doForm(e, "/token", url.Values{
		"username": {"alice@example.com"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	assert.Contains(t, rec.Body.String(), "Incorrect email or password")

	// Unknown email reads exactly like a wrong password.
	rec = doForm(e, "/token", url.Values{
		"username": {"ghost@example.com"},
		"password": {"pw123"},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect email or password")
}

func TestAuthFlow_MeRejectsBadTokens(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodGet, "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

	rec = doJSON(e, http.MethodGet, "/me", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not validate credentials")
}

func TestAuthFlow_UpdateProfile(t *testing.T) {
	e := newTestApp(t)

	rec := doJSON(e, http.MethodPost, "/register", `{"email":"alice@example.com","password":"pw123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doForm(e, "/token", url.Values{
		"username": {"alice@example.com"},
		"password": {"pw123"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))

	patch := `{"full_name":"Alice A. Example","allergies":["peanuts","penicillin"],"blood_type":"O+"}`
	rec = doJSON(e, http.MethodPut, "/profile", patch, token.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated struct {
		Message string `json:"message"`
		User    struct {
			FullName  string   `json:"full_name"`
			Allergies []string `json:"allergies"`
			BloodType string   `json:"blood_type"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Profile updated successfully", updated.Message)
	assert.Equal(t, "Alice A. Example", updated.User.FullName)
	assert.Equal(t, []string{"peanuts", "penicillin"}, updated.User.Allergies)
	assert.Equal(t, "O+", updated.User.BloodType)

	// The patch survives a fresh read.
	rec = doJSON(e, http.MethodGet, "/me", "", token.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice A. Example")
}
