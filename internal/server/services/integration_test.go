package services

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/cadastr/internal/logging"
	"github.com/dmitrijs2005/cadastr/internal/server/config"
	"github.com/dmitrijs2005/cadastr/internal/server/external"
	"github.com/dmitrijs2005/cadastr/internal/server/httpapi"
	"github.com/dmitrijs2005/cadastr/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endToEnd wires the real services, token handling, and HTTP layer together,
// with in-memory repositories and a stubbed provider behind them.
func endToEnd(t *testing.T) (*httpapi.Server, *fakeLogsRepo) {
	t.Helper()

	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)
	// every successful query opens one transaction; allow a few
	for i := 0; i < 4; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	usersRepo := newFakeUsersRepo()
	logsRepo := &fakeLogsRepo{}
	manager := &fakeManager{users: usersRepo, logs: logsRepo}

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CadastralNumber string `json:"cadastral_number"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.CadastralNumber != "123456789012" {
			http.Error(w, `{"detail":"Cadastral number not found in mock data"}`, http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"cadastral_number":"123456789012","status":"Success","address":"Some Street, 123","value":1500000.50}`))
	}))
	t.Cleanup(provider.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	us := NewUserService(db, manager, cfg)
	qs := NewQueryService(db, manager, external.NewHTTPClient(provider.URL, time.Second))

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return httpapi.NewServer(":0", logger, us, qs), logsRepo
}

func TestEndToEnd_RegisterLoginQueryHistory(t *testing.T) {
	srv, logsRepo := endToEnd(t)

	// register
	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"email":"a@x.com","password":"pw123456"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// login
	form := url.Values{"username": {"a@x.com"}, "password": {"pw123456"}}
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	require.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)

	authHeader := "Bearer " + tok.AccessToken

	// current user resolves back to the registered email
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", authHeader)
	resp, err = srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "a@x.com", me.Email)
	assert.True(t, me.IsActive)

	// query a known number
	req = httptest.NewRequest(http.MethodPost, "/query",
		strings.NewReader(`{"cadastral_number":"123456789012","latitude":55.7558,"longitude":37.6173}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader)
	resp, err = srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var log models.QueryLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&log))
	assert.NotEmpty(t, log.ID)
	assert.Equal(t, "123456789012", log.CadastralNumber)
	assert.Contains(t, log.ExternalServerResponse, "Success")

	// history now holds exactly that record
	logsRepo.list = toValues(logsRepo.created)
	req = httptest.NewRequest(http.MethodGet, "/history", nil)
	req.Header.Set("Authorization", authHeader)
	resp, err = srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history []models.QueryLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history, 1)
	assert.Equal(t, log.ID, history[0].ID)
	assert.Equal(t, 55.7558, history[0].Latitude)
	assert.Equal(t, 37.6173, history[0].Longitude)

	// filtering by an unused number is a 404
	req = httptest.NewRequest(http.MethodGet, "/history?cadastral_number=987654321098", nil)
	req.Header.Set("Authorization", authHeader)
	resp, err = srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// unauthenticated access stays rejected
	req = httptest.NewRequest(http.MethodGet, "/history", nil)
	resp, err = srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEndToEnd_NotFoundNumberIsLogged(t *testing.T) {
	srv, logsRepo := endToEnd(t)

	// register + login
	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"email":"b@x.com","password":"pw123456"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	form := url.Values{"username": {"b@x.com"}, "password": {"pw123456"}}
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = srv.App().Test(req, -1)
	require.NoError(t, err)

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))

	// unknown number: provider says 404, we still log the attempt
	req = httptest.NewRequest(http.MethodPost, "/query",
		strings.NewReader(`{"cadastral_number":"000000000000","latitude":1,"longitude":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	resp, err = srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var log models.QueryLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&log))
	assert.Contains(t, log.ExternalServerResponse, "NotFound")
	assert.Contains(t, log.ExternalServerResponse, "External API could not find data")
	require.Len(t, logsRepo.created, 1)
}

func toValues(logs []*models.QueryLog) []models.QueryLog {
	out := make([]models.QueryLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, *l)
	}
	return out
}
