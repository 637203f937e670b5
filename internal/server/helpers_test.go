package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a server on an in-memory SQLite database with the full
// route table mounted. Redis is absent; the cache layer degrades to no-ops.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "server-test-secret",
		TokenTTL:  time.Hour,
		Port:      "0",
		Env:       "test",
	}

	s := New(cfg, db, nil)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody decodes the response body into dest and closes it.
func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// rawBody reads the full response body.
func rawBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// errorMsg extracts the "msg" field of a single-cause error body.
func errorMsg(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	return body.Msg
}

// validationMsgs extracts the messages of a validation error body.
func validationMsgs(t *testing.T, resp *http.Response) []string {
	t.Helper()
	var body models.ValidationResponse
	decodeBody(t, resp, &body)
	msgs := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		msgs = append(msgs, e.Msg)
	}
	return msgs
}

// registerUser registers an account and returns its token.
func registerUser(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/accounts", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "registration of %s failed", email)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body["token"])
	return body["token"]
}

// createProfile creates a minimal profile for the token's account.
func createProfile(t *testing.T, app *fiber.App, token, status string) models.Profile {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/profiles", token, fiber.Map{
		"status": status,
		"skills": []string{"Go", "SQL"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.Profile
	decodeBody(t, resp, &profile)
	return profile
}

// createPost creates a post and returns it.
func createPost(t *testing.T, app *fiber.App, token, text string) models.Post {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, fiber.Map{"text": text})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)
	require.NotZero(t, post.ID)
	return post
}

func postPath(id uint, rest string) string {
	return fmt.Sprintf("/api/posts/%d%s", id, rest)
}
