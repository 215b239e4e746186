// Package mockext is a stand-in for the external cadastral data provider,
// used for local runs and end-to-end testing. It serves a fixed dataset:
// two known cadastral numbers resolve, everything else is a 404.
package mockext

import (
	"github.com/gofiber/fiber/v2"
)

type queryRequest struct {
	CadastralNumber string  `json:"cadastral_number"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

type queryResponse struct {
	CadastralNumber string  `json:"cadastral_number"`
	Status          string  `json:"status"`
	Message         string  `json:"message,omitempty"`
	Address         string  `json:"address,omitempty"`
	Value           float64 `json:"value,omitempty"`
}

var knownNumbers = map[string]queryResponse{
	"123456789012": {
		Status:  "Success",
		Address: "Some Street, 123",
		Value:   1500000.50,
	},
	"987654321098": {
		Status:  "Success",
		Address: "Another Ave, 45",
		Value:   2000000.00,
	},
}

// NewApp builds the provider mock as a fiber application.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Post("/mock_query/", handleQuery)

	return app
}

func handleQuery(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid request body"})
	}

	resp, ok := knownNumbers[req.CadastralNumber]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Cadastral number not found in mock data"})
	}

	resp.CadastralNumber = req.CadastralNumber
	return c.JSON(resp)
}
