package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chronicle/internal/cache"
	"chronicle/internal/config"
	"chronicle/internal/database"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

// setupTestServer builds a fully wired server on an in-memory sqlite
// database and a miniredis instance.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	// route the cache-aside layer through the same miniredis so tests run
	// with a live cache, like production
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		Port:              "0",
		AllowedOrigins:    "http://localhost:5173",
		SessionTTLMinutes: 60,
		Env:               "test",
	}
	return NewServerWithDeps(cfg, db, rdb)
}

// doJSON performs a request with an optional JSON body against the test app.
func doJSON(t *testing.T, s *Server, method, target string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// registerUser creates an account through the HTTP surface.
func registerUser(t *testing.T, s *Server, username string) {
	t.Helper()
	resp := doJSON(t, s, http.MethodPost, "/api/user/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// createJournal creates a journal entry and returns its id.
func createJournal(t *testing.T, s *Server, username, title, content string) uint {
	t.Helper()
	resp := doJSON(t, s, http.MethodPost, "/api/journal/new", map[string]string{
		"title":    title,
		"content":  content,
		"username": username,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &body)
	require.NotZero(t, body.ID)
	return body.ID
}
