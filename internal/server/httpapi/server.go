// Package httpapi exposes the service over HTTP: registration, login,
// current-user, query, history, and liveness routes. It owns the mapping
// from the service error taxonomy to HTTP statuses; no internal detail
// beyond the classified reason crosses this boundary.
package httpapi

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cadastr/internal/common"
	"github.com/dmitrijs2005/cadastr/internal/logging"
	"github.com/dmitrijs2005/cadastr/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

// UserProvider is the slice of the user service the transport needs.
type UserProvider interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// QueryProvider is the slice of the query service the transport needs.
type QueryProvider interface {
	Process(ctx context.Context, cadastralNumber string, latitude, longitude float64) (*models.QueryLog, error)
	History(ctx context.Context, cadastralNumber string) ([]models.QueryLog, error)
}

type Server struct {
	address string
	app     *fiber.App
	logger  logging.Logger
	users   UserProvider
	queries QueryProvider
}

func NewServer(address string, logger logging.Logger, users UserProvider, queries QueryProvider) *Server {
	s := &Server{
		address: address,
		logger:  logger.With("module", "httpapi"),
		users:   users,
		queries: queries,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(s.accessLog)

	app.Get("/ping", s.handlePing)
	app.Post("/register", s.handleRegister)
	app.Post("/login", s.handleLogin)

	app.Get("/users/me", s.requireActiveUser, s.handleUsersMe)
	app.Post("/query", s.requireActiveUser, s.handleQuery)
	app.Get("/history", s.requireActiveUser, s.handleHistory)

	s.app = app
	return s
}

// App exposes the underlying fiber app, mainly for tests via app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithContext(context.Background()); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}

// respondError translates the service error taxonomy into an HTTP status
// and a {"detail": ...} body.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrEmailExists):
		return detail(c, fiber.StatusBadRequest, "Email already registered")
	case errors.Is(err, common.ErrInvalidCredentials):
		c.Set(fiber.HeaderWWWAuthenticate, common.BearerScheme)
		return detail(c, fiber.StatusUnauthorized, "Incorrect username or password")
	case errors.Is(err, common.ErrUserInactive):
		return detail(c, fiber.StatusBadRequest, "Inactive user")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		c.Set(fiber.HeaderWWWAuthenticate, common.BearerScheme)
		return detail(c, fiber.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, common.ErrorNotFound):
		return detail(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrExternalUnavailable):
		return detail(c, fiber.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error(c.UserContext(), "unclassified error", "error", err.Error())
		return detail(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}
