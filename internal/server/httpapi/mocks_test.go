package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrijs2005/cadastr/internal/common"
	"github.com/dmitrijs2005/cadastr/internal/logging"
	"github.com/dmitrijs2005/cadastr/internal/server/models"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// stubUsers resolves a fixed token to a fixed user and returns canned
// results for register/login.
type stubUsers struct {
	registerUser *models.User
	registerErr  error
	loginToken   string
	loginErr     error
	token        string
	user         *models.User
}

func (s *stubUsers) Register(ctx context.Context, email, password string) (*models.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerUser, nil
}

func (s *stubUsers) Login(ctx context.Context, email, password string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.loginToken, nil
}

func (s *stubUsers) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if s.token != "" && token == s.token && s.user != nil {
		return s.user, nil
	}
	return nil, common.ErrorUnauthorized
}

// stubQueries returns canned pipeline results.
type stubQueries struct {
	processLog *models.QueryLog
	processErr error
	history    []models.QueryLog
	historyErr error
}

func (s *stubQueries) Process(ctx context.Context, cadastralNumber string, latitude, longitude float64) (*models.QueryLog, error) {
	if s.processErr != nil {
		return nil, s.processErr
	}
	return s.processLog, nil
}

func (s *stubQueries) History(ctx context.Context, cadastralNumber string) ([]models.QueryLog, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	return s.history, nil
}

func activeUser() *models.User {
	return &models.User{
		ID:        "u-1",
		Email:     "a@x.com",
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}

func unavailableErr() error {
	return fmt.Errorf("%w: connection refused", common.ErrExternalUnavailable)
}
