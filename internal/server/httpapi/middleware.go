package httpapi

import (
	"strings"

	"github.com/dmitrijs2005/cadastr/internal/common"
	"github.com/dmitrijs2005/cadastr/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "currentUser"

// accessLog records every request outcome at debug level.
func (s *Server) accessLog(c *fiber.Ctx) error {
	err := c.Next()
	s.logger.Debug(c.UserContext(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
	)
	return err
}

// requireActiveUser resolves the bearer token to a user and rejects the
// request unless the user exists and is active. The resolved user is stored
// in the request locals for handlers.
func (s *Server) requireActiveUser(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(common.AuthorizationHeaderName))
	if !ok {
		return s.respondError(c, common.ErrorUnauthorized)
	}

	user, err := s.users.Authenticate(c.UserContext(), token)
	if err != nil {
		return s.respondError(c, err)
	}

	if !user.IsActive {
		return s.respondError(c, common.ErrUserInactive)
	}

	c.Locals(currentUserKey, user)
	return c.Next()
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
