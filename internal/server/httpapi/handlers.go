package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "pong"})
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	if _, err := s.users.Register(c.UserContext(), req.Email, req.Password); err != nil {
		return s.respondError(c, err)
	}

	s.logger.Info(c.UserContext(), "Registered", "email", req.Email)
	return c.JSON(fiber.Map{"message": "User registered successfully. Please log in."})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	token, err := s.users.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleUsersMe(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

func (s *Server) handleQuery(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}

	log, err := s.queries.Process(c.UserContext(), req.CadastralNumber, req.Latitude, req.Longitude)
	if err != nil {
		s.logger.Error(c.UserContext(), "query failed", "cadastral_number", req.CadastralNumber, "error", err.Error())
		return s.respondError(c, err)
	}

	return c.JSON(log)
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	logs, err := s.queries.History(c.UserContext(), c.Query("cadastral_number"))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(logs)
}
