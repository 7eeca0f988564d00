package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fitness-journal/internal/repository/sqlstore"
	"fitness-journal/internal/services"
)

type testServer struct {
	handler http.Handler
	db      *sqlstore.DB
}

func testConfig() ServerConfig {
	return ServerConfig{
		Version:        "test",
		CORSOrigin:     "*",
		RequestTimeout: 5 * time.Second,
		MetricsEnabled: true,
		MetricsPath:    "/metrics",
	}
}

func newTestServer(t *testing.T, cfg ServerConfig) *testServer {
	t.Helper()

	db, err := sqlstore.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	entryRepo := sqlstore.NewEntryRepository(db)
	tokens := services.NewTokenService("test-secret-key-min-32-characters-long", "fitness-journal", time.Hour)
	container := &services.ServiceContainer{
		EntryService: services.NewEntryService(entryRepo, nil),
		StatsService: services.NewStatsService(entryRepo, nil, time.UTC),
		AuthService:  services.NewAuthService(sqlstore.NewUserRepository(db), tokens, bcrypt.MinCost),
	}
	health := NewHealthHandler(map[string]HealthChecker{"database": db}, "test")

	return &testServer{handler: NewRouter(cfg, container, health), db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its token and user id.
func (s *testServer) register(t *testing.T, email string) (string, string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result.Token, result.User.ID
}

func (s *testServer) createEntry(t *testing.T, token string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/entries", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeMap(t, rec)
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func newRequest(method, path string, body []byte) *http.Request {
	return httptest.NewRequest(method, path, bytes.NewReader(body))
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
